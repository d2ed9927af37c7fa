package interfaces

import "github.com/ternarybob/atelier/pkg/models"

// DocxService serializes the block/run document model into a Word package
type DocxService interface {
	// ConvertBlocksToDocx serializes blocks to a .docx byte slice. The
	// optional title becomes a centered title block preceding the content
	ConvertBlocksToDocx(blocks []models.Block, title string) ([]byte, error)
}
