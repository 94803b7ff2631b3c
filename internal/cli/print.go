package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jwalitptl/caresync-api/internal/model"
)

var (
	overdueColor  = color.New(color.FgRed, color.Bold)
	upcomingColor = color.New(color.FgCyan)
	takenColor    = color.New(color.FgGreen)
	missedColor   = color.New(color.FgYellow)
	headerColor   = color.New(color.FgHiMagenta, color.Bold)
	faintColor    = color.New(color.Faint)
)

func classificationColor(c model.Classification) *color.Color {
	switch c {
	case model.ClassificationOverdue:
		return overdueColor
	case model.ClassificationTaken:
		return takenColor
	case model.ClassificationMissed:
		return missedColor
	default:
		return upcomingColor
	}
}

func printSection(w io.Writer, title string, entries []model.ScheduleEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(w, headerColor.Sprint(title))
	for _, e := range entries {
		c := classificationColor(e.Classification)
		fmt.Fprintf(w, "  [%d] %s (%s) at %s  %s\n",
			e.Medication.ID, e.Medication.Name, e.Medication.Dose, e.Medication.Time,
			c.Sprint(e.Classification))
	}
}

func printMedication(w io.Writer, med *model.Medication) {
	reminder := "reminders " + string(med.ReminderChannel)
	if !med.ReminderEnabled {
		reminder = "reminders off"
	}
	fmt.Fprintf(w, "[%d] %s (%s) %s at %s  %s\n",
		med.ID, med.Name, med.Dose, med.Frequency, med.Time, faintColor.Sprint(reminder))
}

func printDispatch(w io.Writer, res model.DispatchResult) {
	for _, attempt := range res.Attempts {
		for _, ch := range attempt.Channels {
			if ch.Success {
				fmt.Fprintf(w, "%s %s reminder sent via %s\n", takenColor.Sprint("✔"), attempt.Name, ch.Channel)
			} else {
				fmt.Fprintf(w, "%s %s reminder failed via %s: %s\n", overdueColor.Sprint("✘"), attempt.Name, ch.Channel, ch.Error)
			}
		}
	}
	if res.Suppressed > 0 {
		fmt.Fprintf(w, "%s\n", faintColor.Sprintf("%d reminder(s) already sent today", res.Suppressed))
	}
}

func printInsight(w io.Writer, insight *model.Insight) {
	fmt.Fprintln(w, insight.Text)
	if insight.Source == model.SourceFallback {
		fmt.Fprintln(w, faintColor.Sprint("(built-in response)"))
	}
}
