package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sadopc/swimlog/internal/practice"
)

const recentLimit = 5

type addFlags struct {
	date     string
	duration int
	distance float64
	stroke   string
	notes    string
}

// newAddCommand creates the add subcommand
func newAddCommand(opts *options) *cobra.Command {
	var f addFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a practice",
		Long: `Log a practice. The date defaults to today and the stroke to the
default_stroke setting.

Example:
  swimlog add --duration 45 --distance 1500 --stroke Butterfly --notes "10x150"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts, f)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&f.date, "date", "", "practice date, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&f.duration, "duration", 0, "duration in minutes")
	cmd.Flags().Float64Var(&f.distance, "distance", 0, "total distance")
	cmd.Flags().StringVar(&f.stroke, "stroke", "", "main stroke: "+strokeList())
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.MarkFlagRequired("duration")
	cmd.MarkFlagRequired("distance")

	return cmd
}

func strokeList() string {
	return strings.Join(practice.StrokeNames(), ", ")
}

func runAdd(cmd *cobra.Command, opts *options, f addFlags) error {
	env, err := openEnv(cmd, opts, false)
	if err != nil {
		return err
	}
	defer env.Close()

	in := practice.CreateInput{
		Date:            practice.Day(time.Now()),
		DurationMinutes: f.duration,
		TotalDistance:   f.distance,
		MainStroke:      practice.Freestyle,
	}
	if f.date != "" {
		d, err := parseDateFlag("date", f.date)
		if err != nil {
			return err
		}
		in.Date = *d
	}
	switch {
	case f.stroke != "":
		if in.MainStroke, err = practice.ParseStroke(f.stroke); err != nil {
			return err
		}
	case env.store != nil:
		in.MainStroke = env.store.DefaultStroke()
	}
	if cmd.Flags().Changed("notes") {
		in.Notes = &f.notes
	}

	rec, err := env.svc.CreatePractice(cmd.Context(), in)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	green.Fprintf(w, "Logged practice #%d", rec.ID)
	fmt.Fprintf(w, ": %s, %s, %d min, %s %s\n",
		practice.FormatDate(rec.Date), rec.MainStroke, rec.DurationMinutes,
		formatFloat(rec.TotalDistance), env.distanceUnit())
	return nil
}

type listFlags struct {
	stroke string
	from   string
	to     string
	limit  int
	offset int
}

func newListCommand(opts *options) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List practices, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, f)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&f.stroke, "stroke", "", "only this main stroke")
	cmd.Flags().StringVar(&f.from, "from", "", "first date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "last date, YYYY-MM-DD (inclusive)")
	cmd.Flags().IntVar(&f.limit, "limit", practice.DefaultLimit, "maximum number of practices")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "practices to skip")

	return cmd
}

func (f listFlags) filter() (practice.ListFilter, error) {
	rng, err := parseRangeFlags(f.from, f.to)
	if err != nil {
		return practice.ListFilter{}, err
	}
	lf := practice.ListFilter{DateFrom: rng.DateFrom, DateTo: rng.DateTo}
	if f.stroke != "" {
		s, err := practice.ParseStroke(f.stroke)
		if err != nil {
			return lf, err
		}
		lf.StrokeType = &s
	}
	limit, offset := f.limit, f.offset
	lf.Limit, lf.Offset = &limit, &offset
	return lf, nil
}

func runList(cmd *cobra.Command, opts *options, f listFlags) error {
	filter, err := f.filter()
	if err != nil {
		return err
	}

	env, err := openEnv(cmd, opts, false)
	if err != nil {
		return err
	}
	defer env.Close()

	records, err := env.svc.ListPractices(cmd.Context(), filter)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(w, "No practices found.")
		return nil
	}
	printPractices(w, records, env.distanceUnit())
	return nil
}

func printPractices(w io.Writer, records []practice.Record, unit string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSTROKE\tMINUTES\tDISTANCE\tNOTES")
	for _, r := range records {
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s %s\t%s\n",
			r.ID, practice.FormatDate(r.Date), r.MainStroke, r.DurationMinutes,
			formatFloat(r.TotalDistance), unit, notes)
	}
	tw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
