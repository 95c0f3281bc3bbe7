package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStores(cmd.Context(), cfg.Database, true, logger)
		if err != nil {
			return err
		}
		defer st.close()
		logger.Info("migration complete", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
