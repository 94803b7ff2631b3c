// Package reminder fans due-soon medications out to the enabled channels.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/caresync-api/internal/model"
	"github.com/jwalitptl/caresync-api/internal/notifier"
	"github.com/jwalitptl/caresync-api/pkg/logger"
	"github.com/jwalitptl/caresync-api/pkg/metrics"
)

const Title = "💊 Medication Reminder"

// Message is the body sent for one medication.
func Message(med model.Medication) string {
	return fmt.Sprintf("Time to take %s (%s) at %s", med.Name, med.Dose, med.Time)
}

type Dispatcher struct {
	notifiers  notifier.Set
	suppressor Suppressor
	metrics    *metrics.Metrics
	log        *logger.Logger
}

// NewDispatcher builds a dispatcher. suppressor and m may be nil; without a
// suppressor every call sends again.
func NewDispatcher(notifiers notifier.Set, suppressor Suppressor, m *metrics.Metrics, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		notifiers:  notifiers,
		suppressor: suppressor,
		metrics:    m,
		log:        log,
	}
}

// Dispatch attempts every selected, enabled channel for each due-soon entry.
// A medication counts as sent when at least one channel succeeded. Channel
// failures are recorded in the result and never abort the pass.
func (d *Dispatcher) Dispatch(ctx context.Context, dueSoon []model.ScheduleEntry, settings model.ChannelSettings) model.DispatchResult {
	start := time.Now()
	result := model.DispatchResult{
		Fired:    []model.FiredReminder{},
		Attempts: []model.ReminderAttempt{},
	}

	channels := settings.Channels()
	if len(channels) == 0 {
		return result
	}

	for _, entry := range dueSoon {
		med := entry.Medication
		if entry.Logged() || !med.ReminderEnabled {
			continue
		}

		day := model.DateOf(entry.DueAt)
		if d.suppressor != nil && d.suppressor.Seen(med.ID, day) {
			result.Suppressed++
			continue
		}

		attempt := d.attempt(ctx, med, channels)
		if len(attempt.Channels) == 0 {
			continue
		}
		result.Attempts = append(result.Attempts, attempt)
		if attempt.Success {
			result.Sent++
			result.Fired = append(result.Fired, model.FiredReminder{Name: med.Name, Time: med.Time})
			if d.suppressor != nil {
				d.suppressor.Mark(med.ID, day)
			}
		}
	}

	d.metrics.ObserveDispatch(time.Since(start).Seconds(), result.Sent, result.Suppressed)
	return result
}

func (d *Dispatcher) attempt(ctx context.Context, med model.Medication, channels []model.Channel) model.ReminderAttempt {
	attempt := model.ReminderAttempt{
		MedicationID: med.ID,
		Name:         med.Name,
		Time:         med.Time,
		Channels:     []model.ChannelResult{},
	}
	message := Message(med)

	for _, ch := range channels {
		if !med.ReminderChannel.Selects(ch) {
			continue
		}
		err := d.send(ctx, ch, message)
		d.metrics.ObserveDelivery(string(ch), err)

		res := model.ChannelResult{Channel: ch, Success: err == nil}
		if err != nil {
			res.Error = err.Error()
			d.log.Warn(err, "reminder channel failed", "channel", ch, "medication", med.Name)
		} else {
			attempt.Success = true
		}
		attempt.Channels = append(attempt.Channels, res)
	}

	return attempt
}

func (d *Dispatcher) send(ctx context.Context, ch model.Channel, message string) (err error) {
	n, ok := d.notifiers[ch]
	if !ok {
		return fmt.Errorf("no notifier registered for %s", ch)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s notifier panicked: %v", ch, r)
		}
	}()
	return n.Notify(ctx, Title, message)
}

// Test sends a single test message on ch regardless of channel settings.
func (d *Dispatcher) Test(ctx context.Context, ch model.Channel) model.ChannelResult {
	err := d.send(ctx, ch, "This is a test notification from CareSync.")
	d.metrics.ObserveDelivery(string(ch), err)
	res := model.ChannelResult{Channel: ch, Success: err == nil}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
