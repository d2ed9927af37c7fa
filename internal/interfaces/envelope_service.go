package interfaces

import "github.com/ternarybob/atelier/pkg/models"

// EnvelopeService recovers human-readable content from raw agent turn
// envelopes. All operations degrade gracefully: malformed input yields
// best-effort cleaned text, never an error.
type EnvelopeService interface {
	// ExtractOutput recovers the final output text from an envelope
	ExtractOutput(envelope string) string

	// ExtractFields recovers all recognized labeled fields in display
	// priority order; absent fields are omitted
	ExtractFields(envelope string) []models.Field

	// FormatFull renders the full labeled narrative for a turn, including
	// self-evaluation scores when present
	FormatFull(envelope string) string
}
