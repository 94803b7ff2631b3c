package model

type MoodOption struct {
	Emoji string `json:"emoji"`
	Score int    `json:"score"`
	Label string `json:"label"`
}

// MoodScale is the fixed five point scale, best first.
var MoodScale = []MoodOption{
	{Emoji: "😃", Score: 5, Label: "Great"},
	{Emoji: "🙂", Score: 4, Label: "Good"},
	{Emoji: "😐", Score: 3, Label: "Okay"},
	{Emoji: "😔", Score: 2, Label: "Low"},
	{Emoji: "😢", Score: 1, Label: "Bad"},
}

func MoodOptionFor(score int) (MoodOption, bool) {
	for _, opt := range MoodScale {
		if opt.Score == score {
			return opt, true
		}
	}
	return MoodOption{}, false
}

type MoodEntry struct {
	ID    int64  `db:"id" json:"id"`
	Score int    `db:"score" json:"score"`
	Emoji string `db:"emoji" json:"emoji"`
	Date  string `db:"mood_date" json:"date"`
}

type LogMoodRequest struct {
	Score int `json:"score" validate:"min=1,max=5"`
}

type JournalKind string

const (
	JournalQuick JournalKind = "quick"
	JournalFull  JournalKind = "full"
)

// QuickJournalMaxChars bounds the quick journal form.
const QuickJournalMaxChars = 200

type JournalEntry struct {
	ID   int64       `db:"id" json:"id"`
	Text string      `db:"entry" json:"text"`
	Kind JournalKind `db:"kind" json:"kind"`
	Date string      `db:"journal_date" json:"date"`
}

type CreateJournalRequest struct {
	Text string      `json:"text" validate:"required"`
	Kind JournalKind `json:"kind" validate:"omitempty,oneof=quick full"`
}
