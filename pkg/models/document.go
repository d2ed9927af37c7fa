package models

import "strings"

// BlockType identifies the structural kind of a compiled document block.
type BlockType string

const (
	// BlockHeading is a heading line (levels 1-3)
	BlockHeading BlockType = "heading"
	// BlockBullet is an unordered list item
	BlockBullet BlockType = "bullet"
	// BlockNumbered is an ordered list item (source numerals are discarded;
	// numbering is regenerated at serialization time)
	BlockNumbered BlockType = "numbered"
	// BlockParagraph is a body paragraph
	BlockParagraph BlockType = "paragraph"
	// BlockBlank preserves vertical whitespace without visible content
	BlockBlank BlockType = "blank"
)

// Run is one contiguously-styled span of text within a Block.
type Run struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// Block is one structural unit of a compiled document. Runs are contiguous
// and ordered: their concatenated text reconstructs the source line with
// block prefix and emphasis delimiters removed.
type Block struct {
	Type  BlockType `json:"type"`
	Level int       `json:"level,omitempty"` // heading level 1-3, zero otherwise
	Runs  []Run     `json:"runs,omitempty"`
}

// PlainText returns the concatenated run text of the block, ignoring styles.
func (b Block) PlainText() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
