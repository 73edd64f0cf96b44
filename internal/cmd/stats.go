package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sadopc/swimlog/internal/practice"
)

func newStatsCommand(opts *options) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice statistics for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := parseRangeFlags(from, to)
			if err != nil {
				return err
			}
			env, err := openEnv(cmd, opts, false)
			if err != nil {
				return err
			}
			defer env.Close()

			st, err := env.svc.Statistics(cmd.Context(), rng)
			if err != nil {
				return err
			}
			printStatistics(cmd.OutOrStdout(), st, env.distanceUnit(), rangeLabel(from, to))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD (inclusive)")

	return cmd
}

func rangeLabel(from, to string) string {
	switch {
	case from == "" && to == "":
		return "all time"
	case to == "":
		return "since " + from
	case from == "":
		return "until " + to
	}
	return from + " to " + to
}

// printStatistics formats and prints the statistics
func printStatistics(w io.Writer, st practice.Statistics, unit, label string) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Fprintf(w, "\n=== Practice Statistics (%s) ===\n\n", label)

	if st.TotalPractices == 0 {
		fmt.Fprintln(w, "  No practices in this range.")
		return
	}

	fmt.Fprintf(w, "  Practices:        %d\n", st.TotalPractices)
	fmt.Fprintf(w, "  Total distance:   %s %s\n", formatFloat(st.TotalDistance), unit)
	fmt.Fprintf(w, "  Total time:       %d min\n", st.TotalTimeMinutes)
	fmt.Fprintf(w, "  Avg distance:     %.2f %s\n", st.AverageDistancePerPractice, unit)
	fmt.Fprintf(w, "  Avg time:         %.2f min\n", st.AverageTimePerPractice)
	fmt.Fprintf(w, "  Most common:      ")
	if st.MostCommonStroke != nil {
		green.Fprintf(w, "%s\n", *st.MostCommonStroke)
	} else {
		fmt.Fprintln(w, "-")
	}

	fmt.Fprintln(w)
	cyan.Fprintf(w, "Stroke distribution:\n")
	maxCount := 0
	for _, s := range practice.Strokes {
		maxCount = max(maxCount, st.StrokeDistribution[s])
	}
	for _, s := range practice.Strokes {
		n := st.StrokeDistribution[s]
		bar := ""
		if maxCount > 0 {
			bar = strings.Repeat("█", n*20/maxCount)
		}
		fmt.Fprintf(w, "  %-13s %3d ", s, n)
		yellow.Fprintln(w, bar)
	}
}
