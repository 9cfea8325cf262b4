package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nugie07/armos-cleaning/cleaning"
)

// NewCreatePayloadCommand creates the create-payload command.
func NewCreatePayloadCommand(rootOpts *RootOptions) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:          "create-payload <do_number>",
		Short:        "Build and persist the payload document for one do_number",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doNumber := args[0]

			svc, cleanup, err := newService(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			payload, rec, err := svc.CreatePayload(cmd.Context(), doNumber)
			if err != nil {
				if errors.Is(err, cleaning.ErrOrderNotFound) {
					return fmt.Errorf("no cleansed order found for %s", doNumber)
				}
				return err
			}

			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return err
			}

			path := outFile
			if path == "" {
				path = fmt.Sprintf("payload_%s_%s.json", doNumber, time.Now().Format("20060102_150405"))
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "payload for %s written to %s (source=%d target=%d discrepancy=%d)\n",
				doNumber, path, rec.DbACount, rec.DbBCount, rec.DiscrepancyCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default payload_<do>_<ts>.json)")

	return cmd
}

// NewListPayloadsCommand creates the list-payloads command.
func NewListPayloadsCommand(rootOpts *RootOptions) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:          "list-payloads",
		Short:        "List stored payload results, newest first",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newService(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			recs, err := svc.ListPayloads(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no payloads stored")
				return nil
			}
			for _, rec := range recs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  status=%s source=%d target=%d discrepancy=%d created=%s\n",
					rec.DoNumber, rec.Status, rec.DbACount, rec.DbBCount, rec.DiscrepancyCount,
					rec.CreatedDate.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum rows to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")

	return cmd
}

// NewGetPayloadCommand creates the get-payload command.
func NewGetPayloadCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "get-payload <do_number>",
		Short:        "Print the stored payload document for one do_number",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newService(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			rec, err := svc.GetPayload(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, cleaning.ErrPayloadNotFound) {
					return fmt.Errorf("no payload found for %s", args[0])
				}
				return err
			}

			var pretty json.RawMessage = []byte(rec.PayloadData)
			out, err := json.MarshalIndent(pretty, "", "  ")
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), rec.PayloadData)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	return cmd
}
