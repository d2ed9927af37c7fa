package interfaces

import "github.com/ternarybob/atelier/pkg/models"

// PDFService handles PDF generation from the block/run document model
type PDFService interface {
	// ConvertBlocksToPDF serializes blocks to a PDF byte slice
	ConvertBlocksToPDF(blocks []models.Block, title string) ([]byte, error)
}
