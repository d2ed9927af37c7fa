package interfaces

import "github.com/ternarybob/atelier/pkg/models"

// CompilerService compiles markdown-flavored narrative text into the
// block/run document model consumed by the serializers.
type CompilerService interface {
	// Compile tokenizes text into an ordered block sequence. Pure and
	// total: unrecognized constructs become plain paragraphs
	Compile(text string) []models.Block
}
