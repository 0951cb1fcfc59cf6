package system

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/utils"
)

// RemindCmd delivers the reminders due this minute. It is meant to run from
// cron or a systemd timer once per minute.
type RemindCmd struct {
	DryRun bool `help:"Print due reminders without delivering them."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	if !ctx.NotificationsEnabled() {
		logger.Debug("Notifications disabled, skipping reminders")
		return nil
	}

	t, err := ctx.Open()
	if err != nil {
		return err
	}

	now := t.Today()
	today := utils.DateKey(now)
	due := notifier.DueReminders(t.Active(), now)

	deliverer := ctx.Deliverer
	if deliverer == nil {
		deliverer = notifier.NewTrayNotifier()
	}

	sent := 0
	var failed error
	for _, r := range due {
		if t.IsCompleted(r.HabitID, today) {
			continue
		}
		if c.DryRun {
			fmt.Printf("%s  %s\n", r.Title, r.Body)
			continue
		}
		if err := deliverer.Notify(r); err != nil {
			logger.Error("Failed to deliver reminder", "habit", r.HabitID, "error", err)
			failed = err
			continue
		}
		sent++
	}

	if failed != nil {
		return fmt.Errorf("failed to deliver some reminders: %w", failed)
	}
	logger.Debug("Reminders delivered", "due", len(due), "sent", sent)
	return nil
}
