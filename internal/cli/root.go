// Package cli implements the mail-tray commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mail-sync/mail-tray/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mail-tray",
	Short: "Tray icon for the mail sync service",
	Long: `mail-tray shows the health of the mail sync service and the unread
count of every inbox as a tray icon, with actions to fetch mail, restart
the service and read its logs.

Run without a subcommand to start the tray agent.`,
	SilenceUsage: true,
	RunE:         runAgent,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/mail-tray/config.yaml)")
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().Bool("once", false, "Refresh once without a tray, print the status and exit")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
}

// resolveConfig resolves the configuration for cmd, honouring flags set on
// it or inherited from the root.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Resolve(cmd.Flags(), configPath)
}
