package model

import "time"

const (
	// DateLayout is the ISO-8601 calendar date stored for logs, moods and journals.
	DateLayout = "2006-01-02"
	// TimeLayout is the local wall-clock reminder time stored for medications.
	TimeLayout = "15:04:05"
)

type Frequency string

const (
	FrequencyOnceDaily       Frequency = "Once daily"
	FrequencyTwiceDaily      Frequency = "Twice daily"
	FrequencyThreeTimesDaily Frequency = "Three times daily"
	FrequencyAsNeeded        Frequency = "As needed"
)

// Frequencies lists the frequencies offered by the add form.
var Frequencies = []Frequency{
	FrequencyOnceDaily,
	FrequencyTwiceDaily,
	FrequencyThreeTimesDaily,
	FrequencyAsNeeded,
}

type ReminderChannel string

const (
	ReminderChannelAll     ReminderChannel = "all"
	ReminderChannelEmail   ReminderChannel = "email"
	ReminderChannelDesktop ReminderChannel = "desktop"
	ReminderChannelMobile  ReminderChannel = "mobile"
)

// Selects reports whether a medication reminder routed to rc should go out on ch.
func (rc ReminderChannel) Selects(ch Channel) bool {
	switch rc {
	case ReminderChannelAll, "":
		return true
	default:
		return string(rc) == string(ch)
	}
}

type AdherenceStatus string

const (
	AdherenceTaken  AdherenceStatus = "taken"
	AdherenceMissed AdherenceStatus = "missed"
)

func (s AdherenceStatus) Valid() bool {
	return s == AdherenceTaken || s == AdherenceMissed
}

// Medication is append-only: there is no edit or delete.
type Medication struct {
	ID              int64           `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Dose            string          `db:"dose" json:"dose"`
	Frequency       string          `db:"frequency" json:"frequency"`
	Time            string          `db:"time" json:"time"`
	ReminderEnabled bool            `db:"reminder_enabled" json:"reminder_enabled"`
	ReminderChannel ReminderChannel `db:"reminder_channel" json:"reminder_channel"`
}

// ReminderTime parses the stored HH:MM:SS value.
func (m *Medication) ReminderTime() (time.Time, error) {
	return time.Parse(TimeLayout, m.Time)
}

// MedicationLog is unique on (MedicationID, LogDate).
type MedicationLog struct {
	ID           int64           `db:"id" json:"id"`
	MedicationID int64           `db:"medication_id" json:"medication_id"`
	LogDate      string          `db:"log_date" json:"log_date"`
	Status       AdherenceStatus `db:"status" json:"status"`
}

type CreateMedicationRequest struct {
	Name            string          `json:"name" validate:"required"`
	Dose            string          `json:"dose" validate:"required"`
	Frequency       string          `json:"frequency"`
	Time            string          `json:"time"`
	ReminderEnabled *bool           `json:"reminder_enabled"`
	ReminderChannel ReminderChannel `json:"reminder_channel" validate:"omitempty,oneof=all email desktop mobile"`
}

// AdherenceDay aggregates the logs of one calendar date.
type AdherenceDay struct {
	Date   string  `json:"date"`
	Taken  int     `json:"taken"`
	Missed int     `json:"missed"`
	Rate   float64 `json:"rate"`
}

// DateOf formats t as a calendar date in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
