package model

type InsightKind string

const (
	InsightSummary     InsightKind = "summary"
	InsightReflection  InsightKind = "reflection"
	InsightSideEffects InsightKind = "side_effects"
)

type InsightSource string

const (
	SourceAI       InsightSource = "ai"
	SourceFallback InsightSource = "fallback"
)

type Insight struct {
	Kind   InsightKind   `json:"kind"`
	Text   string        `json:"text"`
	Source InsightSource `json:"source"`
}

type SideEffectRequest struct {
	Medication string `json:"medication" validate:"required"`
	Severity   string `json:"severity" validate:"omitempty,oneof=Mild Moderate Severe"`
	Reaction   string `json:"reaction" validate:"required"`
}
