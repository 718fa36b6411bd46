package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mail-sync/mail-tray/internal/actions"
	"github.com/mail-sync/mail-tray/internal/command"
	"github.com/mail-sync/mail-tray/internal/notify"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Start a mail sync run now",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		restart, _ := cmd.Flags().GetBool("restart")

		runner := command.NewExecRunner(cfg.CommandTimeout)
		d := actions.NewDispatcher(cfg, runner, notify.NewWriter(cmd.OutOrStdout()), nil)

		var res actions.Result
		if restart {
			res = d.RestartService(cmd.Context())
		} else {
			res = d.FetchNow(cmd.Context())
		}
		if !res.OK {
			return errors.New(res.Title)
		}
		return nil
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the recent log of the sync service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		runner := command.NewExecRunner(cfg.CommandTimeout)
		actions.NewDispatcher(cfg, runner, notify.NewWriter(cmd.OutOrStdout()), nil).ShowLogs(cmd.Context())
		return nil
	},
}

func init() {
	fetchCmd.Flags().Bool("restart", false, "Restart the service instead of starting one run")
}
