package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var forceConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the effective configuration to the config file",
	Long: `Writes the configuration in effect (defaults, the config file and environment
overrides merged) to the path given by --config. An existing file is kept unless
--force is set.

Example:
  inventory config --config deploy/inventory.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := writeConfig(configPath, forceConfig)
		if err != nil {
			return err
		}
		if !written {
			logger.Info("config file exists, use --force to overwrite", zap.String("path", configPath))
			return nil
		}
		logger.Info("config written", zap.String("path", configPath))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&forceConfig, "force", false, "Overwrite an existing config file")
}

func writeConfig(path string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if err := cfg.Save(path); err != nil {
		return false, err
	}
	return true, nil
}
