package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mail-sync/mail-tray/internal/command"
	"github.com/mail-sync/mail-tray/internal/config"
	"github.com/mail-sync/mail-tray/internal/daemon/tray"
	"github.com/mail-sync/mail-tray/internal/notify"
	"github.com/mail-sync/mail-tray/internal/tui"
)

const watchLogFile = "watch.log"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the tray menu in the terminal",
	Long: `Run the tray agent with the terminal as its host. The menu, icon state
and actions are the same as in the system tray. Logs go to
~/.cache/mail-tray/watch.log while the view is open.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("watch needs an interactive terminal")
		}

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		restore := redirectLog()
		defer restore()

		runner := command.NewExecRunner(cfg.CommandTimeout)
		host := tui.NewHost()
		ctrl := tray.NewController(cfg, host, newCollector(cfg, runner), runner, notify.New(runner))
		serve(cfg, host, ctrl)
		return nil
	},
}

// redirectLog sends the standard logger to a file so it does not draw over
// the terminal view. The returned func restores stderr.
func redirectLog() func() {
	restore := func() { log.SetOutput(os.Stderr) }

	dir, err := config.StateDir()
	if err == nil {
		err = config.EnsureStateDir()
	}
	if err != nil {
		log.SetOutput(io.Discard)
		return restore
	}

	f, err := os.OpenFile(filepath.Join(dir, watchLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return restore
	}
	log.SetOutput(f)
	return func() {
		restore()
		_ = f.Close()
	}
}
