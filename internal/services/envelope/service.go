// -----------------------------------------------------------------------
// Envelope Service - Recovers narrative text from raw agent turn payloads
// Payloads may be plain prose, fenced markdown, or loosely-formed JSON;
// extraction degrades through progressively looser strategies and never
// fails.
// -----------------------------------------------------------------------

package envelope

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/atelier/internal/interfaces"
	"github.com/ternarybob/atelier/pkg/models"
)

// Service implements interfaces.EnvelopeService
type Service struct {
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.EnvelopeService = (*Service)(nil)

// NewService creates a new envelope service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

// outputStrategy attempts to recover the output text from de-fenced
// envelope text. Strategies are tried in order; the first success wins.
type outputStrategy func(text string) (string, bool)

var outputStrategies = []outputStrategy{
	strictOutput,
	anchoredOutput,
	braceWalkOutput,
}

// ExtractOutput recovers the final output text from an envelope. Malformed
// input degrades to the best-effort cleaned text rather than an error.
func (s *Service) ExtractOutput(envelope string) string {
	text := deFence(envelope)

	for _, strategy := range outputStrategies {
		if out, ok := strategy(text); ok {
			return out
		}
	}

	s.logger.Debug().
		Int("envelope_len", len(envelope)).
		Msg("No structured output recognized, returning cleaned text")
	return fallbackClean(text)
}

// ExtractFields recovers all recognized labeled fields in display priority
// order. Fields absent from the envelope are omitted; if nothing is
// recognizable the cleaned text is returned as a single output field so
// both extraction entry points degrade to the same content.
func (s *Service) ExtractFields(envelope string) []models.Field {
	text := deFence(envelope)

	if fields, ok := strictFields(text); ok {
		return fields
	}
	if fields, ok := anchoredFields(text); ok {
		return fields
	}

	s.logger.Debug().
		Int("envelope_len", len(envelope)).
		Msg("No recognized fields in envelope, falling back to cleaned text")
	return []models.Field{{Label: models.FieldOutput, Text: fallbackClean(text)}}
}

var fencePattern = regexp.MustCompile("(?s)^```(?:json|JSON)?[ \\t]*\\n?(.*?)\\n?[ \\t]*```$")

// deFence strips one surrounding markdown code fence when both the opening
// and closing markers are present, then trims whitespace. Idempotent.
func deFence(text string) string {
	text = strings.TrimSpace(text)
	if matches := fencePattern.FindStringSubmatch(text); len(matches) > 1 {
		text = matches[1]
	}
	return strings.TrimSpace(text)
}

// strictOutput decodes the text as a JSON object and reads the output field.
// Decode failure falls through silently.
func strictOutput(text string) (string, bool) {
	decoded, ok := strictDecode(text)
	if !ok {
		return "", false
	}
	out, ok := decoded[models.FieldOutput].(string)
	return out, ok
}

// strictFields decodes the text as a JSON object and reads all recognized
// fields in vocabulary order. Unknown keys are ignored, never surfaced.
func strictFields(text string) ([]models.Field, bool) {
	decoded, ok := strictDecode(text)
	if !ok {
		return nil, false
	}

	var fields []models.Field
	for _, label := range models.FieldOrder {
		if value, ok := decoded[label].(string); ok && value != "" {
			fields = append(fields, models.Field{Label: label, Text: value})
		}
	}
	if len(fields) == 0 {
		return nil, false
	}
	return fields, true
}

// strictDecode attempts full JSON decoding of an object-shaped blob
func strictDecode(text string) (map[string]interface{}, bool) {
	if !strings.HasPrefix(text, "{") {
		return nil, false
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, false
	}
	return decoded, true
}

// fieldPatterns holds one minimal escape-aware pattern per recognized label
// of the shape "<label>": "<value>". Not a general JSON tokenizer.
var fieldPatterns = buildFieldPatterns()

func buildFieldPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(models.FieldOrder))
	for _, label := range models.FieldOrder {
		patterns[label] = regexp.MustCompile(`"` + label + `"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	}
	return patterns
}

// anchoredOutput recovers the output field with its anchored pattern when
// strict decoding fails (e.g. trailing garbage after the object). An empty
// match counts as failure so the brace walk gets its chance.
func anchoredOutput(text string) (string, bool) {
	value, ok := anchoredField(text, models.FieldOutput)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func anchoredField(text, label string) (string, bool) {
	if matches := fieldPatterns[label].FindStringSubmatch(text); len(matches) > 1 {
		return unescape(matches[1]), true
	}
	return "", false
}

// anchoredFields runs the anchored scan for every recognized label,
// emitting matches in vocabulary order
func anchoredFields(text string) ([]models.Field, bool) {
	var fields []models.Field
	for _, label := range models.FieldOrder {
		if value, ok := anchoredField(text, label); ok && value != "" {
			fields = append(fields, models.Field{Label: label, Text: value})
		}
	}
	if len(fields) == 0 {
		return nil, false
	}
	return fields, true
}

// braceWalkOutput recovers the output value character-by-character when
// quoting inside the value is too broken for anchored matching. The scan
// tracks a single-level escape flag and stops at the first unescaped quote;
// an unterminated value yields everything up to the end of the text.
func braceWalkOutput(text string) (string, bool) {
	const key = `"output"`
	idx := strings.Index(text, key)
	if idx < 0 {
		return "", false
	}

	rest := text[idx+len(key):]
	i := 0
	for i < len(rest) && (rest[i] == ':' || rest[i] == ' ' || rest[i] == '\t') {
		i++
	}
	if i >= len(rest) || rest[i] != '"' {
		return "", false
	}
	i++

	start := i
	escaped := false
	for ; i < len(rest); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch rest[i] {
		case '\\':
			escaped = true
		case '"':
			return unescape(rest[start:i]), true
		}
	}

	value := unescape(rest[start:])
	if value == "" {
		return "", false
	}
	return value, true
}

// fallbackClean is the terminal strategy: best-effort unwrap of an
// object-looking blob. Strips one brace pair, unescapes residual escape
// sequences and trims.
func fallbackClean(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "{")
	text = strings.TrimSuffix(text, "}")
	return strings.TrimSpace(unescape(text))
}

// unescape translates the closed set of two-character escape sequences in a
// single left-to-right pass, avoiding the double-unescaping artifacts of
// chained whole-string replacements. Unknown escapes pass through verbatim.
func unescape(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i+1 == len(text) {
			sb.WriteByte(c)
			continue
		}
		switch text[i+1] {
		case 'n':
			sb.WriteByte('\n')
			i++
		case 't':
			sb.WriteByte('\t')
			i++
		case '"':
			sb.WriteByte('"')
			i++
		case '\\':
			sb.WriteByte('\\')
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
