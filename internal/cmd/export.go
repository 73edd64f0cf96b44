package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/swimlog/internal/export"
)

func newExportCommand(opts *options) *cobra.Command {
	var format, out, from, to string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export practices to CSV or JSON",
		Long: `Export every practice in the date range, most recent first. JSON output
also carries the statistics of the exported set.

Examples:
  swimlog export --format csv --out practices.csv
  swimlog export --format json --from 2024-01-01 --to 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			rng, err := parseRangeFlags(from, to)
			if err != nil {
				return err
			}

			env, err := openEnv(cmd, opts, false)
			if err != nil {
				return err
			}
			defer env.Close()

			records, err := env.svc.PracticesInRange(cmd.Context(), rng)
			if err != nil {
				return err
			}
			unit := env.distanceUnit()

			if out == "-" {
				if format == "csv" {
					return export.WriteCSV(cmd.OutOrStdout(), records, unit)
				}
				return export.WriteJSON(cmd.OutOrStdout(), records, unit)
			}

			if format == "csv" {
				err = export.ToCSV(records, unit, out)
			} else {
				err = export.ToJSON(records, unit, out)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d practices to %s\n", len(records), out)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD (inclusive)")

	return cmd
}
