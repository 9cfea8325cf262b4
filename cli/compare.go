package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewCompareCommand creates the compare-data command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	var startDate, endDate string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compare-data",
		Short: "Compare per-order line counts between the two databases",
		Long: `Counts order lines per do_number in both databases for a faktur_date
range and reports every do_number whose counts differ.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			svc, cleanup, err := newService(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			discrepancies, err := svc.Compare(cmd.Context(), start, end)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(discrepancies)
			}

			if len(discrepancies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no discrepancies found")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d discrepancies:\n", len(discrepancies))
			for _, d := range discrepancies {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  source=%d target=%d delta=%+d\n",
					d.DoNumber, d.SourceCount, d.TargetCount, d.Delta)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "range start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "range end, YYYY-MM-DD (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	_ = cmd.MarkFlagRequired("start-date")
	_ = cmd.MarkFlagRequired("end-date")

	return cmd
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start-date %q: want YYYY-MM-DD", startDate)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end-date %q: want YYYY-MM-DD", endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end-date %s is before start-date %s", endDate, startDate)
	}
	return start, end, nil
}
