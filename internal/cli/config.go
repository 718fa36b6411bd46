package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mail-sync/mail-tray/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		path := configPath
		if path == "" {
			path, _ = config.DefaultConfigFile()
		}
		source := "not found"
		if config.FileExists(config.ExpandHome(path)) {
			source = "loaded"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s (%s)\n%s", path, source, data)
		return nil
	},
}
