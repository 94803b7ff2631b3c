package model

type Channel string

const (
	ChannelEmail   Channel = "email"
	ChannelDesktop Channel = "desktop"
	ChannelMobile  Channel = "mobile"
)

// AllChannels is the fixed dispatch order.
var AllChannels = []Channel{ChannelEmail, ChannelDesktop, ChannelMobile}

func ParseChannel(s string) (Channel, bool) {
	for _, ch := range AllChannels {
		if string(ch) == s {
			return ch, true
		}
	}
	return "", false
}

// ChannelSettings holds the per-channel toggles. It is a value owned by the caller.
type ChannelSettings struct {
	Email   bool `json:"email_enabled" mapstructure:"email_enabled"`
	Desktop bool `json:"desktop_enabled" mapstructure:"desktop_enabled"`
	Mobile  bool `json:"mobile_enabled" mapstructure:"mobile_enabled"`
}

func (s ChannelSettings) Enabled(ch Channel) bool {
	switch ch {
	case ChannelEmail:
		return s.Email
	case ChannelDesktop:
		return s.Desktop
	case ChannelMobile:
		return s.Mobile
	default:
		return false
	}
}

// Channels returns the enabled channels in dispatch order.
func (s ChannelSettings) Channels() []Channel {
	var out []Channel
	for _, ch := range AllChannels {
		if s.Enabled(ch) {
			out = append(out, ch)
		}
	}
	return out
}

type UpdateChannelSettingsRequest struct {
	Email   *bool `json:"email_enabled"`
	Desktop *bool `json:"desktop_enabled"`
	Mobile  *bool `json:"mobile_enabled"`
}

// Apply returns s with the non-nil toggles of r applied.
func (r UpdateChannelSettingsRequest) Apply(s ChannelSettings) ChannelSettings {
	if r.Email != nil {
		s.Email = *r.Email
	}
	if r.Desktop != nil {
		s.Desktop = *r.Desktop
	}
	if r.Mobile != nil {
		s.Mobile = *r.Mobile
	}
	return s
}

// ChannelResult is the outcome of one channel for one reminder.
type ChannelResult struct {
	Channel Channel `json:"channel"`
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
}

// ReminderAttempt is the outcome of one medication in one dispatch pass. Never persisted.
type ReminderAttempt struct {
	MedicationID int64           `json:"medication_id"`
	Name         string          `json:"name"`
	Time         string          `json:"time"`
	Channels     []ChannelResult `json:"channels"`
	Success      bool            `json:"success"`
}

type FiredReminder struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

type DispatchResult struct {
	// Sent counts medications for which at least one channel succeeded.
	Sent       int               `json:"sent"`
	Fired      []FiredReminder   `json:"fired"`
	Attempts   []ReminderAttempt `json:"attempts"`
	Suppressed int               `json:"suppressed,omitempty"`
}
