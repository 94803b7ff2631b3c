package ai

import (
	"context"
	"math/rand"
	"strings"
)

var (
	symptomResponses = []string{
		"That sounds like a common reaction. Try staying hydrated and getting some rest. If symptoms persist, consider consulting your healthcare provider.",
		"This could be a side effect. Monitor your symptoms and stay well-hydrated. Contact your doctor if you're concerned.",
		"Your reaction seems mild. Rest and hydration often help. Keep track of any changes and discuss with your healthcare provider if needed.",
	}
	journalResponses = []string{
		"I notice you're expressing some concerns. Remember to be kind to yourself and consider reaching out to friends or family for support.",
		"Your feelings are valid. Sometimes writing helps process emotions. Consider what small steps might help you feel better today.",
		"Thank you for sharing. It's important to acknowledge your emotions. What's one thing that might bring you comfort today?",
	}
	insightResponses = []string{
		"You've been consistent with your mood tracking this week. That's great self-awareness!",
		"I notice some patterns in your entries. Consider what might be contributing to your current state.",
		"Your wellness journey is unique. Keep up the good work with your daily reflections.",
	}

	symptomKeywords = []string{"symptom", "medication", "side effect", "reaction"}
	journalKeywords = []string{"journal", "mood", "feeling", "emotion"}
)

// FallbackGenerator answers from fixed pools picked by keywords in the
// prompt. It never fails.
type FallbackGenerator struct {
	pick func(n int) int
}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{pick: rand.Intn}
}

func (g *FallbackGenerator) Generate(_ context.Context, prompt, _ string) (string, error) {
	pool := Pool(prompt)
	return pool[g.pick(len(pool))], nil
}

// Pool returns the canned responses matching prompt.
func Pool(prompt string) []string {
	lower := strings.ToLower(prompt)
	switch {
	case containsAny(lower, symptomKeywords):
		return symptomResponses
	case containsAny(lower, journalKeywords):
		return journalResponses
	default:
		return insightResponses
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
