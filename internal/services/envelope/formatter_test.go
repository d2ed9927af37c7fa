package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFull_LabeledBlocks(t *testing.T) {
	svc := NewService(createTestLogger())

	envelope := `{"output": "Final text.", "thinking": "Considering tone."}`
	result := svc.FormatFull(envelope)

	assert.Equal(t, "**Thinking:**\nConsidering tone.\n\n**Output:**\nFinal text.", result)
}

func TestFormatFull_SelfEvaluationObject(t *testing.T) {
	svc := NewService(createTestLogger())

	envelope := `{"output": "Done.", "self_evaluation": {"tone": 9.5, "clarity": 7}}`
	result := svc.FormatFull(envelope)

	assert.Equal(t, "**Output:**\nDone.\n\n**Self Evaluation:**\n- clarity: 7/10\n- tone: 9.5/10", result)
}

func TestFormatFull_SelfEvaluationList(t *testing.T) {
	svc := NewService(createTestLogger())

	envelope := `{"output": "Done.", "self_evaluation": [{"criterion": "flow", "score": 8}, {"name": "voice", "score": 6}]}`
	result := svc.FormatFull(envelope)

	assert.Contains(t, result, "**Self Evaluation:**\n- flow: 8/10\n- voice: 6/10")
}

func TestFormatFull_FencedEnvelope(t *testing.T) {
	svc := NewService(createTestLogger())

	envelope := "```json\n{\"suggestions\": \"Tighten the intro.\"}\n```"
	result := svc.FormatFull(envelope)

	assert.Equal(t, "**Suggestions:**\nTighten the intro.", result)
}

func TestFormatFull_UnrecognizedKeysIgnored(t *testing.T) {
	svc := NewService(createTestLogger())

	envelope := `{"output": "O", "internal_debug": "never shown"}`
	result := svc.FormatFull(envelope)

	assert.Equal(t, "**Output:**\nO", result)
	assert.NotContains(t, result, "never shown")
}

func TestFormatFull_PlainTextFallback(t *testing.T) {
	svc := NewService(createTestLogger())

	// Degrades exactly like the extractor's fallback step
	plain := "No structure in this turn at all"
	assert.Equal(t, plain, svc.FormatFull(plain))
}

func TestFormatFull_NoRecognizedFieldsFallsBack(t *testing.T) {
	svc := NewService(createTestLogger())

	result := svc.FormatFull(`{"unknown": "value"}`)
	assert.Equal(t, `"unknown": "value"`, result)
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Thinking", displayLabel("thinking"))
	assert.Equal(t, "Output", displayLabel("output"))
}
