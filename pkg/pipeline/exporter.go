// -----------------------------------------------------------------------
// Pipeline Exporter - Composes envelope extraction, markdown compilation
// and document serialization for a single display or export request.
// Stateless: every invocation owns its input and output exclusively, so
// concurrent use needs no coordination.
// -----------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/atelier/internal/common"
	"github.com/ternarybob/atelier/internal/interfaces"
	"github.com/ternarybob/atelier/internal/services/docx"
	"github.com/ternarybob/atelier/internal/services/envelope"
	"github.com/ternarybob/atelier/internal/services/markdown"
	"github.com/ternarybob/atelier/internal/services/pdf"
	"github.com/ternarybob/atelier/pkg/models"
)

// Persist is the external delivery collaborator the pipeline hands
// finished buffers to (local download, outbound mail attachment)
type Persist = interfaces.Persist

// PersistFunc adapts a plain function to the Persist interface
type PersistFunc = interfaces.PersistFunc

// Format identifies an export document format
type Format string

const (
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
)

// Export is a finished document buffer plus its suggested file name,
// ready for hand-off to a persist collaborator. The pipeline holds no
// reference to it after return.
type Export struct {
	Filename string
	Content  []byte
}

// Exporter is the public pipeline facade
type Exporter struct {
	envelope interfaces.EnvelopeService
	compiler interfaces.CompilerService
	docx     interfaces.DocxService
	pdf      interfaces.PDFService
	logger   arbor.ILogger
}

// New creates an exporter with the default service wiring and the global
// console logger
func New() *Exporter {
	return NewWithLogger(common.GetLogger())
}

// NewWithLogger creates an exporter using the given logger for all services
func NewWithLogger(logger arbor.ILogger) *Exporter {
	return &Exporter{
		envelope: envelope.NewService(logger),
		compiler: markdown.NewService(logger),
		docx:     docx.NewService(logger),
		pdf:      pdf.NewService(logger),
		logger:   logger,
	}
}

// ExtractOutput recovers the final output text from a raw turn envelope
func (e *Exporter) ExtractOutput(turnEnvelope string) string {
	return e.envelope.ExtractOutput(turnEnvelope)
}

// ExtractFields recovers all recognized labeled fields from a raw turn
// envelope in display priority order
func (e *Exporter) ExtractFields(turnEnvelope string) []models.Field {
	return e.envelope.ExtractFields(turnEnvelope)
}

// FormatFull renders the full labeled narrative for a turn, including
// self-evaluation scores when present
func (e *Exporter) FormatFull(turnEnvelope string) string {
	return e.envelope.FormatFull(turnEnvelope)
}

// Compile tokenizes narrative text into the block/run document model
func (e *Exporter) Compile(text string) []models.Block {
	return e.compiler.Compile(text)
}

// ExportDocx extracts the envelope's output text, compiles it and
// serializes a .docx export. The optional title becomes the document's
// title block; the file-name stem falls back to the title.
func (e *Exporter) ExportDocx(turnEnvelope, title, stem string) (*Export, error) {
	return e.export(turnEnvelope, title, stem, FormatDocx)
}

// ExportPDF is ExportDocx's PDF counterpart
func (e *Exporter) ExportPDF(turnEnvelope, title, stem string) (*Export, error) {
	return e.export(turnEnvelope, title, stem, FormatPDF)
}

func (e *Exporter) export(turnEnvelope, title, stem string, format Format) (*Export, error) {
	exportID := common.NewExportID()
	logger := e.logger.WithCorrelationId(exportID)

	text := e.envelope.ExtractOutput(turnEnvelope)
	blocks := e.compiler.Compile(text)

	var content []byte
	var err error
	switch format {
	case FormatPDF:
		content, err = e.pdf.ConvertBlocksToPDF(blocks, title)
	default:
		content, err = e.docx.ConvertBlocksToDocx(blocks, title)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s export: %w", format, err)
	}

	if stem == "" {
		stem = title
	}
	filename := FileStem(stem) + "." + string(format)

	logger.Info().
		Str("filename", filename).
		Int("block_count", len(blocks)).
		Int("size", len(content)).
		Msg("Export ready")

	return &Export{Filename: filename, Content: content}, nil
}

// Deliver hands a finished export to a caller-supplied persist
// collaborator. Retry semantics, destinations and MIME concerns belong to
// the collaborator, not the pipeline.
func (e *Exporter) Deliver(ctx context.Context, export *Export, persist interfaces.Persist) error {
	if export == nil {
		return fmt.Errorf("export is required")
	}
	if persist == nil {
		return fmt.Errorf("persist collaborator is required")
	}
	return persist.Persist(ctx, export.Filename, export.Content)
}

// FileStem sanitizes a title into a safe file-name stem: keeps letters,
// digits, spaces, dashes and underscores, converts spaces to underscores
// and caps the result at 50 characters. Empty input yields "document".
func FileStem(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}

	stem := strings.ReplaceAll(strings.TrimSpace(sb.String()), " ", "_")
	if runes := []rune(stem); len(runes) > 50 {
		stem = string(runes[:50])
	}
	if stem == "" {
		return "document"
	}
	return stem
}
