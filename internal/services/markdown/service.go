// -----------------------------------------------------------------------
// Markdown Compiler - Tokenizes narrative text into the block/run model
// Line-oriented block tokenization plus a single-pass, non-recursive
// inline emphasis scan. Pure and total: unrecognized constructs become
// plain paragraphs, malformed delimiters pass through as literal text.
// -----------------------------------------------------------------------

package markdown

import (
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/atelier/internal/interfaces"
	"github.com/ternarybob/atelier/pkg/models"
)

// Service implements interfaces.CompilerService
type Service struct {
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.CompilerService = (*Service)(nil)

// NewService creates a new markdown compiler service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

// numberedPrefix matches an ordered-list prefix: numeral, dot, one
// whitespace character. The numeral value is discarded; numbering is
// regenerated sequentially at serialization time.
var numberedPrefix = regexp.MustCompile(`^\d+\.\s`)

// Compile tokenizes text into an ordered block sequence, one block
// decision per line.
func (s *Service) Compile(text string) []models.Block {
	lines := strings.Split(text, "\n")
	blocks := make([]models.Block, 0, len(lines))
	for _, line := range lines {
		blocks = append(blocks, compileLine(strings.TrimSpace(line)))
	}

	s.logger.Debug().
		Int("line_count", len(lines)).
		Int("block_count", len(blocks)).
		Msg("Compiled text to document blocks")
	return blocks
}

func compileLine(line string) models.Block {
	switch {
	case line == "":
		return models.Block{Type: models.BlockBlank}
	case strings.HasPrefix(line, "### "):
		return headingBlock(3, line[len("### "):])
	case strings.HasPrefix(line, "## "):
		return headingBlock(2, line[len("## "):])
	case strings.HasPrefix(line, "# "):
		return headingBlock(1, line[len("# "):])
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return models.Block{Type: models.BlockBullet, Runs: tokenizeRuns(line[2:])}
	}
	if prefix := numberedPrefix.FindString(line); prefix != "" {
		return models.Block{Type: models.BlockNumbered, Runs: tokenizeRuns(line[len(prefix):])}
	}
	return models.Block{Type: models.BlockParagraph, Runs: tokenizeRuns(line)}
}

// headingBlock wraps the post-prefix text in a single plain run. Headings
// skip inline emphasis tokenization; markers inside a heading pass through
// verbatim to match the product's established visual output.
func headingBlock(level int, text string) models.Block {
	return models.Block{
		Type:  models.BlockHeading,
		Level: level,
		Runs:  []models.Run{{Text: text}},
	}
}

type runStyle struct {
	bold   bool
	italic bool
}

// tokenizeRuns scans a line left to right for emphasis delimiters. Text
// before a match becomes a plain run, matched content a styled run with
// delimiters stripped, and scanning resumes after the match. A delimiter
// that does not complete a pattern is left in place as literal text.
func tokenizeRuns(line string) []models.Run {
	var runs []models.Run
	plain := 0

	for i := 0; i < len(line); {
		if line[i] != '*' {
			i++
			continue
		}
		content, width, style, ok := matchDelimiter(line, i)
		if !ok {
			i++
			continue
		}
		if i > plain {
			runs = append(runs, models.Run{Text: line[plain:i]})
		}
		runs = append(runs, models.Run{Text: content, Bold: style.bold, Italic: style.italic})
		i += width
		plain = i
	}

	if plain < len(line) || len(runs) == 0 {
		runs = append(runs, models.Run{Text: line[plain:]})
	}
	return runs
}

// matchDelimiter attempts the three literal emphasis patterns at position
// i, longest first: ***x*** (bold+italic), **x** (bold), *x* (italic).
// Italic content may not contain '*' and neither of its delimiters may
// abut a further '*', so overlapping marker runs like *a**b* stay literal.
func matchDelimiter(line string, i int) (string, int, runStyle, bool) {
	rest := line[i:]

	if strings.HasPrefix(rest, "***") {
		if end := strings.Index(rest[3:], "***"); end > 0 {
			return rest[3 : 3+end], end + 6, runStyle{bold: true, italic: true}, true
		}
	}

	if strings.HasPrefix(rest, "**") {
		if end := strings.Index(rest[2:], "**"); end > 0 {
			return rest[2 : 2+end], end + 4, runStyle{bold: true}, true
		}
	}

	if i > 0 && line[i-1] == '*' {
		return "", 0, runStyle{}, false
	}
	if len(rest) > 1 && rest[1] == '*' {
		return "", 0, runStyle{}, false
	}
	if end := strings.IndexByte(rest[1:], '*'); end > 0 {
		after := i + 2 + end
		if after >= len(line) || line[after] != '*' {
			return rest[1 : 1+end], end + 2, runStyle{italic: true}, true
		}
	}

	return "", 0, runStyle{}, false
}
