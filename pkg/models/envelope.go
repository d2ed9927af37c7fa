package models

// Recognized envelope field labels, in display priority order. The
// vocabulary is closed: keys outside this set are never surfaced.
const (
	FieldThinking    = "thinking"
	FieldReasoning   = "reasoning"
	FieldAnalysis    = "analysis"
	FieldComments    = "comments"
	FieldFeedback    = "feedback"
	FieldSuggestions = "suggestions"
	FieldChanges     = "changes"
	FieldOutput      = "output"
)

// FieldOrder lists the recognized labels in the order they are displayed,
// regardless of where they appear in the envelope.
var FieldOrder = []string{
	FieldThinking,
	FieldReasoning,
	FieldAnalysis,
	FieldComments,
	FieldFeedback,
	FieldSuggestions,
	FieldChanges,
	FieldOutput,
}

// Field is one recovered (label, text) pair from an agent turn envelope.
type Field struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// EvaluationScore is one criterion/score pair from an agent self-evaluation.
// Scores are on a 0-10 scale.
type EvaluationScore struct {
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`
}
