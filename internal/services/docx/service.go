// -----------------------------------------------------------------------
// Docx Service - Serializes the block/run model to a Word package
// Emits the minimal WordprocessingML part set (document, styles, one
// shared numbering definition) and zips it into a .docx buffer. No I/O:
// delivery is the persist collaborator's job.
// -----------------------------------------------------------------------

package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/atelier/internal/interfaces"
	"github.com/ternarybob/atelier/pkg/models"
)

// Service implements interfaces.DocxService
type Service struct {
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.DocxService = (*Service)(nil)

// NewService creates a new docx service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

// ConvertBlocksToDocx serializes blocks to a .docx byte slice. Deterministic
// for identical input; the only failure surface is the packaging step.
func (s *Service) ConvertBlocksToDocx(blocks []models.Block, title string) ([]byte, error) {
	s.logger.Debug().
		Int("block_count", len(blocks)).
		Str("title", title).
		Msg("Serializing blocks to docx")

	var body strings.Builder
	if title != "" {
		body.WriteString(titleParagraph(title))
	}
	for _, block := range blocks {
		body.WriteString(blockParagraph(block))
	}

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", documentXML(body.String())},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", numberingXML},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create package part %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write package part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize docx package: %w", err)
	}

	s.logger.Debug().Int("docx_size", buf.Len()).Msg("Docx generated successfully")
	return buf.Bytes(), nil
}

// blockParagraph maps one block to a WordprocessingML paragraph
func blockParagraph(block models.Block) string {
	switch block.Type {
	case models.BlockBlank:
		return "<w:p/>"
	case models.BlockHeading:
		return headingParagraph(block)
	case models.BlockBullet:
		return listParagraph(block, bulletNumID)
	case models.BlockNumbered:
		// Every numbered item references the one shared decimal numbering
		// definition, so consecutive items number continuously regardless
		// of the source numerals.
		return listParagraph(block, decimalNumID)
	default:
		return bodyParagraph(block)
	}
}

func titleParagraph(title string) string {
	return `<w:p><w:pPr><w:jc w:val="center"/><w:spacing w:after="240"/></w:pPr>` +
		`<w:r><w:rPr><w:b/><w:sz w:val="36"/><w:szCs w:val="36"/></w:rPr>` +
		`<w:t xml:space="preserve">` + escapeXML(title) + `</w:t></w:r></w:p>`
}

// headingSpacing holds before/after spacing in twentieths of a point per
// heading level; level 1 gets the most surrounding space.
var headingSpacing = map[int][2]int{
	1: {360, 240},
	2: {320, 200},
	3: {280, 160},
}

func headingParagraph(block models.Block) string {
	level := block.Level
	if level < 1 || level > 3 {
		level = 3
	}
	spacing := headingSpacing[level]
	return fmt.Sprintf(
		`<w:p><w:pPr><w:pStyle w:val="Heading%d"/><w:spacing w:before="%d" w:after="%d"/></w:pPr>%s</w:p>`,
		level, spacing[0], spacing[1], runsXML(block.Runs))
}

const (
	bulletNumID  = 1
	decimalNumID = 2
)

func listParagraph(block models.Block, numID int) string {
	return fmt.Sprintf(
		`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="%d"/></w:numPr></w:pPr>%s</w:p>`,
		numID, runsXML(block.Runs))
}

// bodyParagraph renders a paragraph with 1.15 line spacing (240 * 1.15 =
// 276) and trailing spacing
func bodyParagraph(block models.Block) string {
	return `<w:p><w:pPr><w:spacing w:after="160" w:line="276" w:lineRule="auto"/></w:pPr>` +
		runsXML(block.Runs) + `</w:p>`
}

func runsXML(runs []models.Run) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(`<w:r><w:rPr>`)
		if run.Bold {
			sb.WriteString(`<w:b/>`)
		}
		if run.Italic {
			sb.WriteString(`<w:i/>`)
		}
		sb.WriteString(`<w:sz w:val="22"/><w:szCs w:val="22"/></w:rPr>`)
		sb.WriteString(`<w:t xml:space="preserve">`)
		sb.WriteString(escapeXML(run.Text))
		sb.WriteString(`</w:t></w:r>`)
	}
	return sb.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(text string) string {
	return xmlEscaper.Replace(text)
}
