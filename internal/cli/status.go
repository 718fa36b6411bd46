package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mail-sync/mail-tray/internal/command"
	"github.com/mail-sync/mail-tray/internal/icon"
	"github.com/mail-sync/mail-tray/internal/models"
	"github.com/mail-sync/mail-tray/internal/status"
	"github.com/mail-sync/mail-tray/internal/summary"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print sync health and inbox counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")

		runner := command.NewExecRunner(cfg.CommandTimeout)
		st := status.Load(cfg.StatusFile, cfg.StampFile)
		counts := newCollector(cfg, runner).Collect(cmd.Context(), cfg.Maildir)

		if plain {
			fmt.Fprintln(cmd.OutOrStdout(), summary.FormatStatus(st, counts))
			return nil
		}
		now := time.Now()
		fmt.Fprint(cmd.OutOrStdout(), renderStatus(st, counts, icon.Choose(st, counts, cfg.RecentThreshold, now), now))
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("plain", false, "Print the notification text without styling")
}

func renderStatus(st models.RunStatus, counts models.InboxCounts, spec icon.Spec, now time.Time) string {
	var b strings.Builder

	badge, ok := kindStyles[spec.Kind]
	if !ok {
		badge = styleValue
	}
	fmt.Fprintf(&b, "  %s %s\n", styleBrand.Render("Mail sync"), badge.Render("● "+string(spec.Kind)))

	row := func(label, value string) {
		fmt.Fprintf(&b, "    %s %s\n", styleLabel.Render(fmt.Sprintf("%-13s", label)), value)
	}
	row("Status", styleValue.Render(st.DisplayStatus()))
	row("Last success", styleValue.Render(summary.FormatAbsolute(st.LastSuccess))+" "+styleHint.Render("("+summary.FormatAge(st.LastSuccess, now)+")"))
	row("Last attempt", styleValue.Render(summary.FormatAbsolute(st.LastAttempt)))
	if st.Message != "" && st.Status != models.StatusOK {
		row("Message", styleWarning.Render(st.Message))
	}

	b.WriteString("\n")
	if len(counts) == 0 {
		fmt.Fprintf(&b, "    %s\n", styleHint.Render(summary.NoInboxes))
		return b.String()
	}
	for _, key := range counts.SortedKeys() {
		c := counts[key]
		unread := styleHint.Render("0 unread")
		if c.Unread > 0 {
			unread = styleUnread.Render(fmt.Sprintf("%d unread", c.Unread))
		}
		row(key.Label(), fmt.Sprintf("%s %s", unread, styleHint.Render(fmt.Sprintf("/ %d total", c.Total))))
	}
	return b.String()
}
