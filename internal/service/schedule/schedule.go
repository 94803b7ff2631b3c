// Package schedule classifies a day's medications against a given instant.
// It holds no state and never reads the clock.
package schedule

import (
	"fmt"
	"time"

	"github.com/jwalitptl/caresync-api/internal/model"
)

const (
	// DueSoonBefore and DueSoonAfter bound the reminder window in minutes
	// relative to the scheduled time. Both ends are inclusive.
	DueSoonBefore = -30.0
	DueSoonAfter  = 15.0

	// StatusBefore and StatusAfter bound the reminder status panel.
	StatusBefore = -30.0
	StatusAfter  = 30.0
)

// Evaluate partitions meds at now. logs holds the statuses recorded on now's
// calendar date. Medications whose time does not parse are skipped.
func Evaluate(now time.Time, meds []*model.Medication, logs map[int64]model.AdherenceStatus) model.Evaluation {
	ev := model.Evaluation{
		Now:      now,
		Date:     model.DateOf(now),
		Overdue:  []model.ScheduleEntry{},
		Upcoming: []model.ScheduleEntry{},
		Taken:    []model.ScheduleEntry{},
		Missed:   []model.ScheduleEntry{},
		DueSoon:  []model.ScheduleEntry{},
		Entries:  []model.ScheduleEntry{},
	}

	for _, med := range meds {
		if med == nil {
			continue
		}
		at, err := med.ReminderTime()
		if err != nil {
			ev.Skipped = append(ev.Skipped, *med)
			continue
		}

		dueAt := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), at.Second(), 0, now.Location())
		entry := model.ScheduleEntry{
			Medication:   *med,
			DueAt:        dueAt,
			DeltaMinutes: dueAt.Sub(now).Minutes(),
		}

		switch logs[med.ID] {
		case model.AdherenceTaken:
			entry.Classification = model.ClassificationTaken
			ev.Taken = append(ev.Taken, entry)
		case model.AdherenceMissed:
			entry.Classification = model.ClassificationMissed
			ev.Missed = append(ev.Missed, entry)
		default:
			if entry.DeltaMinutes <= 0 {
				entry.Classification = model.ClassificationOverdue
			} else {
				entry.Classification = model.ClassificationUpcoming
			}
			entry.DueSoon = inWindow(entry.DeltaMinutes, DueSoonBefore, DueSoonAfter)
			if entry.Classification == model.ClassificationOverdue {
				ev.Overdue = append(ev.Overdue, entry)
			} else {
				ev.Upcoming = append(ev.Upcoming, entry)
			}
			if entry.DueSoon {
				ev.DueSoon = append(ev.DueSoon, entry)
			}
		}
		ev.Entries = append(ev.Entries, entry)
	}

	return ev
}

// Within returns the unlogged entries of ev whose delta lies in [before, after].
func Within(ev model.Evaluation, before, after float64) []model.ScheduleEntry {
	out := []model.ScheduleEntry{}
	for _, entry := range ev.Entries {
		if entry.Logged() {
			continue
		}
		if inWindow(entry.DeltaMinutes, before, after) {
			out = append(out, entry)
		}
	}
	return out
}

// Status lists the unlogged medications within the status window with a
// human-readable label.
func Status(ev model.Evaluation) []model.ReminderStatus {
	entries := Within(ev, StatusBefore, StatusAfter)
	out := make([]model.ReminderStatus, 0, len(entries))
	for _, entry := range entries {
		out = append(out, model.ReminderStatus{
			Medication:   entry.Medication,
			DeltaMinutes: entry.DeltaMinutes,
			Label:        StatusLabel(entry.DeltaMinutes),
		})
	}
	return out
}

func StatusLabel(delta float64) string {
	if delta < 0 {
		return "Overdue"
	}
	return fmt.Sprintf("Due in %d minutes", int(delta))
}

func inWindow(delta, before, after float64) bool {
	return delta >= before && delta <= after
}
