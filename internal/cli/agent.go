package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mail-sync/mail-tray/internal/command"
	"github.com/mail-sync/mail-tray/internal/config"
	"github.com/mail-sync/mail-tray/internal/daemon/tray"
	"github.com/mail-sync/mail-tray/internal/daemon/watcher"
	"github.com/mail-sync/mail-tray/internal/inbox"
	"github.com/mail-sync/mail-tray/internal/models"
	"github.com/mail-sync/mail-tray/internal/notify"
	"github.com/mail-sync/mail-tray/internal/summary"
)

// runAgent starts the tray agent on the best available host.
func runAgent(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	once, _ := cmd.Flags().GetBool("once")

	host, err := tray.Probe(cfg.Headless || once, cfg.AllowHeadless)
	if errors.Is(err, tray.ErrNoHost) {
		log.Println(tray.Remediation)
		return nil
	}
	if err != nil {
		return err
	}

	runner := command.NewExecRunner(cfg.CommandTimeout)
	collector := newCollector(cfg, runner)

	if once {
		ctrl := tray.NewController(cfg, host, collector, runner, notify.NewWriter(cmd.OutOrStdout()))
		snap := ctrl.Refresh(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), summary.FormatStatus(snap.Status, snap.Counts))
		return nil
	}

	// Check if an agent is already running
	running, info, err := config.IsAgentRunning()
	if err != nil {
		return fmt.Errorf("failed to check agent status: %w", err)
	}
	if running {
		return fmt.Errorf("mail-tray already running (PID %d)", info.PID)
	}

	if err := config.SaveAgentInfo(models.NewAgentInfo(hostname(), os.Getpid())); err != nil {
		log.Printf("Failed to write agent info: %v", err)
	}
	defer func() {
		if err := config.RemoveAgentInfo(); err != nil {
			log.Printf("Failed to remove agent info: %v", err)
		}
	}()

	log.Printf("Agent started on %s host (PID %d)", host.Name(), os.Getpid())
	ctrl := tray.NewController(cfg, host, collector, runner, notify.New(runner))
	serve(cfg, host, ctrl)
	log.Println("Agent stopped")
	return nil
}

// serve runs host on the calling goroutine and the controller beside it.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func serve(cfg *config.Config, host tray.Host, ctrl *tray.Controller) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Watch {
		if w, err := watcher.New(cfg.StatusFile, cfg.StampFile, cfg.Maildir); err != nil {
			log.Printf("[watcher] Disabled: %v", err)
		} else if err := w.Start(); err != nil {
			log.Printf("[watcher] Disabled: %v", err)
			w.Stop()
		} else {
			defer w.Stop()
			ctrl.Watch(w.Events())
		}
	}

	var wg sync.WaitGroup
	onReady := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctrl.Run(ctx)
			// Signal or host exit; make sure the host follows.
			host.Quit()
		}()
	}

	// This blocks until the host exits.
	host.Run(onReady, cancel)
	cancel()
	wg.Wait()
}

func newCollector(cfg *config.Config, runner command.Runner) *inbox.Collector {
	return inbox.NewCollector(inbox.NewIndexer(runner, cfg.IndexCommand))
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return name
}
