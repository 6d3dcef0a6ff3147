package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/notify"
	"github.com/calmstack/taskdeck/internal/redact"
	"github.com/calmstack/taskdeck/internal/store"
)

// ChannelResult records one channel attempt for a dispatched occurrence.
type ChannelResult struct {
	Channel string
	Err     error
}

// Outcome aggregates everything that happened while dispatching one
// occurrence: the per-channel attempt results and the ledger commit error,
// if any. Channel failures are deliberately not folded into a single error;
// a partially failed dispatch is still a completed dispatch.
type Outcome struct {
	Occurrence domain.ReminderOccurrence
	Channels   []ChannelResult
	LedgerErr  error
}

// Delivered reports whether at least one channel accepted the notification.
func (o Outcome) Delivered() bool {
	for _, result := range o.Channels {
		if result.Err == nil {
			return true
		}
	}
	return false
}

// Dispatcher sends one occurrence through every configured channel, then
// commits the occurrence to the delivery ledger.
type Dispatcher struct {
	ledger  store.DeliveryLedger
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewDispatcher creates a Dispatcher committing to the given ledger. Each
// channel attempt is bounded by timeout.
func NewDispatcher(ledger store.DeliveryLedger, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = notify.DefaultWebhookTimeout
	}
	return &Dispatcher{
		ledger:  ledger,
		timeout: timeout,
		logger:  logger.With("component", "dispatcher"),
		now:     time.Now,
	}
}

// Dispatch attempts every channel for the occurrence, then upserts a
// delivery record keyed by (task_id, reminder_time).
//
// Channel attempts run concurrently, being independent I/O with no shared
// state, but the ledger commit strictly awaits all of them. The
// record is written regardless of per-channel outcomes: marking is
// "attempted", not "confirmed", so an unreachable webhook cannot cause an
// endless re-notification storm. A failed ledger write is reported in the
// outcome; the occurrence may legitimately redeliver on the next tick.
func (d *Dispatcher) Dispatch(ctx context.Context, occ domain.ReminderOccurrence, channels []notify.Channel) Outcome {
	outcome := Outcome{
		Occurrence: occ,
		Channels:   make([]ChannelResult, len(channels)),
	}

	title := "Task Reminder"
	body := fmt.Sprintf("Task: %s", occ.TaskTitle)

	var wg sync.WaitGroup
	for i, channel := range channels {
		wg.Add(1)
		go func(i int, channel notify.Channel) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			err := channel.Send(sendCtx, title, body)
			outcome.Channels[i] = ChannelResult{Channel: channel.Name(), Err: err}

			if err != nil {
				d.logger.Warn("notification channel failed",
					"channel", channel.Name(),
					"task_id", occ.TaskID,
					"reminder_time", occ.ReminderTime,
					"error", redact.Error(err))
			}
		}(i, channel)
	}
	wg.Wait()

	rec, err := domain.NewDeliveryRecord(occ, d.now())
	if err != nil {
		outcome.LedgerErr = fmt.Errorf("failed to build delivery record: %w", err)
		return outcome
	}

	if err := d.ledger.Record(ctx, rec); err != nil {
		outcome.LedgerErr = err
		return outcome
	}

	d.logger.Info("reminder dispatched",
		"task_id", occ.TaskID,
		"reminder_time", occ.ReminderTime,
		"delivered", outcome.Delivered())

	return outcome
}
