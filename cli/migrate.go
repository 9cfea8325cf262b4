package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/nugie07/armos-cleaning/config"
	"github.com/nugie07/armos-cleaning/models"
)

// Only the target connection is opened here; migrate-target must work
// while the TMS database is unreachable.
var openTargetDB = func(cfg *config.Config) (*gorm.DB, error) {
	return config.OpenTarget(cfg)
}

// NewMigrateCommand creates the migrate-target command. The source
// database is never migrated; it belongs to the TMS.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate-target",
		Short:        "Run schema migrations on the warehouse database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			targetDB, err := openTargetDB(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if sqlDB, err := targetDB.DB(); err == nil {
					_ = sqlDB.Close()
				}
			}()

			if err := models.MigrateTarget(targetDB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "target schema is up to date")
			return nil
		},
	}

	return cmd
}
