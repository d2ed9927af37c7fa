package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/atelier/pkg/models"
)

// createTestLogger creates a logger for testing
func createTestLogger() arbor.ILogger {
	return arbor.NewLogger()
}

func TestConvertBlocksToPDF_ProducesPDFBuffer(t *testing.T) {
	svc := NewService(createTestLogger())

	buf, err := svc.ConvertBlocksToPDF([]models.Block{
		{Type: models.BlockHeading, Level: 1, Runs: []models.Run{{Text: "Title"}}},
		{Type: models.BlockParagraph, Runs: []models.Run{
			{Text: "A "},
			{Text: "bold", Bold: true},
			{Text: " word."},
		}},
		{Type: models.BlockBullet, Runs: []models.Run{{Text: "point"}}},
		{Type: models.BlockNumbered, Runs: []models.Run{{Text: "step"}}},
		{Type: models.BlockBlank},
	}, "My Document")

	require.NoError(t, err)
	require.NotEmpty(t, buf)
	assert.Equal(t, "%PDF-", string(buf[:5]))
}

func TestConvertBlocksToPDF_EmptyBlocks(t *testing.T) {
	svc := NewService(createTestLogger())

	buf, err := svc.ConvertBlocksToPDF(nil, "")

	require.NoError(t, err)
	assert.NotEmpty(t, buf)
}
