// -----------------------------------------------------------------------
// Label Formatter - Renders the full labeled narrative for a turn
// Used by "show full turn" displays; includes self-evaluation scores,
// which the plain field extraction does not carry.
// -----------------------------------------------------------------------

package envelope

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ternarybob/atelier/pkg/models"
)

// FormatFull renders an ordered, human-labeled narrative from an envelope.
// Each recognized field becomes a block of the form "**<Label>:**\n<value>"
// in vocabulary order, followed by rendered self-evaluation scores when
// present. Blocks are joined with a blank line. Envelopes with no
// recognized fields degrade exactly like the extractor's fallback step.
func (s *Service) FormatFull(envelope string) string {
	text := deFence(envelope)

	decoded, ok := strictDecode(text)
	if !ok {
		return fallbackClean(text)
	}

	var blocks []string
	for _, label := range models.FieldOrder {
		if value, ok := decoded[label].(string); ok && value != "" {
			blocks = append(blocks, "**"+displayLabel(label)+":**\n"+value)
		}
	}

	if scores := parseEvaluation(decoded["self_evaluation"]); len(scores) > 0 {
		var sb strings.Builder
		sb.WriteString("**Self Evaluation:**")
		for _, score := range scores {
			sb.WriteString(fmt.Sprintf("\n- %s: %s/10", score.Criterion, formatScore(score.Score)))
		}
		blocks = append(blocks, sb.String())
	}

	if len(blocks) == 0 {
		return fallbackClean(text)
	}
	return strings.Join(blocks, "\n\n")
}

// displayLabel renders a vocabulary label for display ("thinking" -> "Thinking")
func displayLabel(label string) string {
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// parseEvaluation accepts the self-evaluation score list in either of the
// shapes agents produce: an object of criterion -> score, or a list of
// {criterion|name, score} objects. Object keys are sorted for
// deterministic rendering; list order is preserved.
func parseEvaluation(raw interface{}) []models.EvaluationScore {
	switch value := raw.(type) {
	case map[string]interface{}:
		criteria := make([]string, 0, len(value))
		for criterion := range value {
			criteria = append(criteria, criterion)
		}
		sort.Strings(criteria)

		var scores []models.EvaluationScore
		for _, criterion := range criteria {
			if score, ok := value[criterion].(float64); ok {
				scores = append(scores, models.EvaluationScore{Criterion: criterion, Score: score})
			}
		}
		return scores

	case []interface{}:
		var scores []models.EvaluationScore
		for _, entry := range value {
			item, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			criterion, ok := item["criterion"].(string)
			if !ok {
				criterion, ok = item["name"].(string)
			}
			score, scoreOK := item["score"].(float64)
			if ok && criterion != "" && scoreOK {
				scores = append(scores, models.EvaluationScore{Criterion: criterion, Score: score})
			}
		}
		return scores
	}
	return nil
}

// formatScore renders whole scores without a decimal point ("7/10", "7.5/10")
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
