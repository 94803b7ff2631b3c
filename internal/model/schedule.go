package model

import "time"

type Classification string

const (
	ClassificationTaken    Classification = "taken"
	ClassificationMissed   Classification = "missed"
	ClassificationOverdue  Classification = "overdue"
	ClassificationUpcoming Classification = "upcoming"
)

// ScheduleEntry is the derived state of one medication at one instant. Never persisted.
type ScheduleEntry struct {
	Medication     Medication     `json:"medication"`
	Classification Classification `json:"classification"`
	// DueAt is the reminder time on the evaluation date.
	DueAt time.Time `json:"due_at"`
	// DeltaMinutes is DueAt minus now; negative once the time has passed.
	DeltaMinutes float64 `json:"delta_minutes"`
	DueSoon      bool    `json:"due_soon"`
}

// Logged reports whether the entry already has a status for the day.
func (e ScheduleEntry) Logged() bool {
	return e.Classification == ClassificationTaken || e.Classification == ClassificationMissed
}

// Evaluation partitions a day's medications at one instant.
type Evaluation struct {
	Now      time.Time       `json:"now"`
	Date     string          `json:"date"`
	Overdue  []ScheduleEntry `json:"overdue"`
	Upcoming []ScheduleEntry `json:"upcoming"`
	Taken    []ScheduleEntry `json:"taken"`
	Missed   []ScheduleEntry `json:"missed"`
	DueSoon  []ScheduleEntry `json:"due_soon"`
	// Entries keeps every classified medication in input order.
	Entries []ScheduleEntry `json:"entries"`
	// Skipped holds medications whose stored time could not be parsed.
	Skipped []Medication `json:"skipped,omitempty"`
}

// ReminderStatus is one line of the "due soon" status panel.
type ReminderStatus struct {
	Medication   Medication `json:"medication"`
	DeltaMinutes float64    `json:"delta_minutes"`
	Label        string     `json:"label"`
}

// TodayView is one evaluation pass together with the reminders it triggered.
type TodayView struct {
	Evaluation
	Reminders DispatchResult `json:"reminders"`
}
