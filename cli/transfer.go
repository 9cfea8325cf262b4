package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nugie07/armos-cleaning/cleaning"
)

// NewCopyProductsCommand creates the copy-products command.
func NewCopyProductsCommand(rootOpts *RootOptions) *cobra.Command {
	var upsert, validate bool
	var startOffset int

	cmd := &cobra.Command{
		Use:   "copy-products",
		Short: "Copy the product master into the warehouse",
		Long: `Copies mst_product into mst_product_main in pages. Existing rows are
left alone unless --upsert is given, in which case they are refreshed.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := newService(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			mode := cleaning.InsertIfAbsent
			if upsert {
				mode = cleaning.Merge
			}

			report, err := svc.CopyProducts(cmd.Context(), mode, cleaning.Options{StartOffset: startOffset})
			if err != nil {
				if report != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "stopped at offset %d after copying %d rows; rerun with --start-offset %d\n",
						report.LastOffset, report.Copied, report.LastOffset)
				}
				return err
			}
			printReport(cmd, report)

			if validate {
				res, err := svc.ValidateProducts(cmd.Context())
				if err != nil {
					return err
				}
				printValidation(cmd, res)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&upsert, "upsert", false, "refresh rows that already exist")
	cmd.Flags().BoolVar(&validate, "validate", false, "compare row counts after the copy")
	cmd.Flags().IntVar(&startOffset, "start-offset", 0, "resume from this row offset")

	return cmd
}

// NewCopyOrdersCommand creates the copy-orders command.
func NewCopyOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	var startDate, endDate, warehouseID string
	var upsert, validate bool

	cmd := &cobra.Command{
		Use:   "copy-orders",
		Short: "Copy orders and their lines for a faktur_date range",
		Long: `Copies order headers into order_main and then their lines into
order_detail_main, re-parenting each line onto the warehouse's own
order id. Lines whose header has not landed yet are skipped and
picked up by fill-order-details.`,
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

			mode := cleaning.InsertIfAbsent
			if upsert {
				mode = cleaning.Merge
			}
			filter := cleaning.OrderFilter{StartDate: start, EndDate: end, WarehouseID: warehouseID}

			report, err := svc.CopyOrders(cmd.Context(), filter, mode, cleaning.Options{})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "headers:")
			printReport(cmd, report.Orders)
			if report.Details != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "lines:")
				printReport(cmd, report.Details)
			}

			if validate {
				res, err := svc.ValidateOrders(cmd.Context(), filter)
				if err != nil {
					return err
				}
				printValidation(cmd, res)
				res, err = svc.ValidateOrderDetails(cmd.Context(), filter)
				if err != nil {
					return err
				}
				printValidation(cmd, res)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "range start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "range end, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&warehouseID, "warehouse-id", "", "restrict to one warehouse")
	cmd.Flags().BoolVar(&upsert, "upsert", false, "refresh rows that already exist")
	cmd.Flags().BoolVar(&validate, "validate", false, "compare row counts after the copy")
	_ = cmd.MarkFlagRequired("start-date")
	_ = cmd.MarkFlagRequired("end-date")

	return cmd
}

// NewFillOrderDetailsCommand creates the fill-order-details command.
func NewFillOrderDetailsCommand(rootOpts *RootOptions) *cobra.Command {
	var startDate, endDate, warehouseID string

	cmd := &cobra.Command{
		Use:   "fill-order-details",
		Short: "Backfill lines for orders that landed without any",
		Long: `Finds order_main rows with no order_detail_main lines and rebuilds
them from the cleansed outbound data, applying the unit-of-measure
conversion rules.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter cleaning.OrderFilter
			if startDate != "" || endDate != "" {
				start, end, err := parseDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				filter.StartDate = start
				filter.EndDate = end
			}
			filter.WarehouseID = warehouseID

			svc, cleanup, err := newService(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := svc.FillOrderDetails(cmd.Context(), filter, cleaning.Options{})
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&endDate, "end-date", "", "range end, YYYY-MM-DD")
	cmd.Flags().StringVar(&warehouseID, "warehouse-id", "", "restrict to one warehouse")

	return cmd
}

func printReport(cmd *cobra.Command, r *cleaning.TransferReport) {
	fmt.Fprintf(cmd.OutOrStdout(), "  table=%s mode=%s total=%d copied=%d skipped=%d pages=%d\n",
		r.Table, r.Mode, r.Total, r.Copied, r.Skipped, r.Pages)
}

func printValidation(cmd *cobra.Command, res *cleaning.ValidationResult) {
	status := "OK"
	if !res.Match {
		status = "MISMATCH"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  validate %s: source=%d target=%d %s\n",
		res.Table, res.SourceCount, res.TargetCount, status)
}
