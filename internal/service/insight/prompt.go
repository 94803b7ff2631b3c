package insight

import (
	"fmt"
	"strings"

	"github.com/jwalitptl/caresync-api/internal/model"
)

const (
	SummarySystem    = "You are a wellness assistant. Summarize the user's week, spot patterns, and give gentle, non-medical suggestions."
	ReflectionSystem = "You are a supportive assistant. Analyze the user's journal entry for emotional tone, repeated negative patterns, and offer a gentle suggestion if needed."

	summaryInstruction = "Generate a friendly weekly summary, highlight any patterns (e.g. mood drops after missed meds), and offer a gentle suggestion."
)

// SummaryPrompt renders the weekly summary prompt. Entries are listed in the
// order given. adherence may be empty.
func SummaryPrompt(moods []*model.MoodEntry, journals []*model.JournalEntry, adherence []model.ScheduleEntry) string {
	moodLines := make([]string, 0, len(moods))
	for _, m := range moods {
		moodLines = append(moodLines, fmt.Sprintf("%s: %s (%d)", m.Date, m.Emoji, m.Score))
	}
	journalLines := make([]string, 0, len(journals))
	for _, j := range journals {
		journalLines = append(journalLines, fmt.Sprintf("%s: %s", j.Date, j.Text))
	}

	var b strings.Builder
	b.WriteString("Here are the user's recent moods:\n")
	b.WriteString(strings.Join(moodLines, "\n"))
	b.WriteString("\n\nAnd recent journal entries:\n")
	b.WriteString(strings.Join(journalLines, "\n"))
	b.WriteString("\n\n")
	if len(adherence) > 0 {
		b.WriteString("Doses today:\n")
		for _, e := range adherence {
			fmt.Fprintf(&b, "%s (%s): %s\n", e.Medication.Name, e.Medication.Time, e.Classification)
		}
		b.WriteString("\n")
	}
	b.WriteString(summaryInstruction)
	return b.String()
}

func SideEffectsSystem(medication, reaction string) string {
	return fmt.Sprintf("You are a helpful assistant analyzing a reaction to %s. The user said: '%s'. Give friendly, informative insight without diagnosing. Suggest hydration, rest, or medical attention if needed.", medication, reaction)
}
