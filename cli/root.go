package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nugie07/armos-cleaning/cleaning"
	"github.com/nugie07/armos-cleaning/config"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	BatchSize  int
	BatchDelay int
	Verbose    bool
}

// NewRootCommand creates the root command for the armos CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "armos-cli",
		Short: "Warehouse cleaning data tools",
		Long:  "Compares, transfers, and reconciles outbound order data between the TMS database and the cleaning warehouse.",
	}

	cmd.PersistentFlags().IntVar(&opts.BatchSize, "batch-size", 0, "rows per page (default from BATCH_SIZE)")
	cmd.PersistentFlags().IntVar(&opts.BatchDelay, "batch-delay", -1, "seconds to pause between pages (default from BATCH_DELAY_SECONDS)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewCreatePayloadCommand(opts))
	cmd.AddCommand(NewListPayloadsCommand(opts))
	cmd.AddCommand(NewGetPayloadCommand(opts))
	cmd.AddCommand(NewCopyProductsCommand(opts))
	cmd.AddCommand(NewCopyOrdersCommand(opts))
	cmd.AddCommand(NewFillOrderDetailsCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

// newService loads configuration, opens both databases, and builds the
// service. The returned cleanup closes the connections.
func newService(opts *RootOptions) (*cleaning.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger := config.NewLogger(level)

	sourceDB, targetDB, err := config.OpenDatabases(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := sourceDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
		if sqlDB, err := targetDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	defaults := cleaning.Options{
		BatchSize:  cfg.BatchSize,
		BatchDelay: cfg.BatchDelay,
		Retry: cleaning.Policy{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   cfg.RetryDelay,
			MaxDelay:    2 * time.Minute,
			Exponential: true,
		},
	}
	if opts.BatchSize > 0 {
		defaults.BatchSize = opts.BatchSize
	}
	if opts.BatchDelay >= 0 {
		defaults.BatchDelay = time.Duration(opts.BatchDelay) * time.Second
	}

	return cleaning.NewService(sourceDB, targetDB, logger, defaults), cleanup, nil
}
