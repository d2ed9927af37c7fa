// -----------------------------------------------------------------------
// PDF Service - Renders the block/run model to a PDF byte buffer
// Second export format alongside docx; same document model, no I/O.
// -----------------------------------------------------------------------

package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/atelier/internal/interfaces"
	"github.com/ternarybob/atelier/pkg/models"
)

// Service implements interfaces.PDFService
type Service struct {
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.PDFService = (*Service)(nil)

// NewService creates a new PDF service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

const (
	baseFont     = "Arial"
	baseFontSize = 11.0
	lineHeight   = 5.5
)

// ConvertBlocksToPDF serializes blocks to a PDF byte slice
func (s *Service) ConvertBlocksToPDF(blocks []models.Block, title string) ([]byte, error) {
	s.logger.Debug().
		Int("block_count", len(blocks)).
		Str("title", title).
		Msg("Serializing blocks to PDF")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()
	pdf.SetFont(baseFont, "", baseFontSize)

	r := &renderer{pdf: pdf}
	if title != "" {
		pdf.SetFont(baseFont, "B", 18)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(4)
		pdf.SetFont(baseFont, "", baseFontSize)
	}

	for _, block := range blocks {
		r.renderBlock(block)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate PDF output")
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	s.logger.Debug().Int("pdf_size", buf.Len()).Msg("PDF generated successfully")
	return buf.Bytes(), nil
}

type renderer struct {
	pdf *fpdf.Fpdf

	// numbered items share one continuously incrementing counter to match
	// the docx serializer's shared numbering definition
	numbered int
}

func (r *renderer) renderBlock(block models.Block) {
	switch block.Type {
	case models.BlockBlank:
		r.pdf.Ln(lineHeight)
	case models.BlockHeading:
		r.renderHeading(block)
	case models.BlockBullet:
		r.pdf.Write(lineHeight, "- ")
		r.renderRuns(block.Runs)
		r.pdf.Ln(6)
	case models.BlockNumbered:
		r.numbered++
		r.pdf.Write(lineHeight, fmt.Sprintf("%d. ", r.numbered))
		r.renderRuns(block.Runs)
		r.pdf.Ln(6)
	default:
		r.renderRuns(block.Runs)
		r.pdf.Ln(7)
	}
}

func (r *renderer) renderHeading(block models.Block) {
	size := baseFontSize
	switch block.Level {
	case 1:
		size = 16
	case 2:
		size = 14
	default:
		size = 12
	}

	r.pdf.Ln(3)
	r.pdf.SetFont(baseFont, "B", size)
	r.pdf.Write(size/2, block.PlainText())
	r.pdf.Ln(size / 2 * 1.6)
	r.pdf.SetFont(baseFont, "", baseFontSize)
}

func (r *renderer) renderRuns(runs []models.Run) {
	for _, run := range runs {
		style := ""
		if run.Bold {
			style += "B"
		}
		if run.Italic {
			style += "I"
		}
		r.pdf.SetFont(baseFont, style, baseFontSize)
		r.pdf.Write(lineHeight, run.Text)
	}
	r.pdf.SetFont(baseFont, "", baseFontSize)
}
