package markdown

import (
	"strings"
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

func TestCompile_HeadingBulletsAndEmphasis(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("## Title\n- one\n- two\nA **bold** word.")

	require.Len(t, blocks, 4)

	assert.Equal(t, models.BlockHeading, blocks[0].Type)
	assert.Equal(t, 2, blocks[0].Level)
	assert.Equal(t, []models.Run{{Text: "Title"}}, blocks[0].Runs)

	assert.Equal(t, models.BlockBullet, blocks[1].Type)
	assert.Equal(t, []models.Run{{Text: "one"}}, blocks[1].Runs)

	assert.Equal(t, models.BlockBullet, blocks[2].Type)
	assert.Equal(t, []models.Run{{Text: "two"}}, blocks[2].Runs)

	assert.Equal(t, models.BlockParagraph, blocks[3].Type)
	assert.Equal(t, []models.Run{
		{Text: "A "},
		{Text: "bold", Bold: true},
		{Text: " word."},
	}, blocks[3].Runs)
}

func TestCompile_HeadingLevels(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("# One\n## Two\n### Three")

	require.Len(t, blocks, 3)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, 2, blocks[1].Level)
	assert.Equal(t, 3, blocks[2].Level)
}

func TestCompile_HeadingSkipsEmphasis(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("# A **bold** title")

	require.Len(t, blocks, 1)
	// Headings carry a single plain run; markers pass through verbatim
	assert.Equal(t, []models.Run{{Text: "A **bold** title"}}, blocks[0].Runs)
}

func TestCompile_StarBullet(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("* starred item")

	require.Len(t, blocks, 1)
	assert.Equal(t, models.BlockBullet, blocks[0].Type)
	assert.Equal(t, "starred item", blocks[0].PlainText())
}

func TestCompile_NumberedPrefixDiscarded(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("7. seventh in source\n12. twelfth in source")

	require.Len(t, blocks, 2)
	assert.Equal(t, models.BlockNumbered, blocks[0].Type)
	assert.Equal(t, "seventh in source", blocks[0].PlainText())
	assert.Equal(t, models.BlockNumbered, blocks[1].Type)
	assert.Equal(t, "twelfth in source", blocks[1].PlainText())
}

func TestCompile_BlankLines(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("first\n\n   \nlast")

	require.Len(t, blocks, 4)
	assert.Equal(t, models.BlockParagraph, blocks[0].Type)
	assert.Equal(t, models.BlockBlank, blocks[1].Type)
	assert.Equal(t, models.BlockBlank, blocks[2].Type)
	assert.Equal(t, models.BlockParagraph, blocks[3].Type)
}

func TestCompile_BoldItalic(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("both ***styles*** here")

	require.Len(t, blocks, 1)
	assert.Equal(t, []models.Run{
		{Text: "both "},
		{Text: "styles", Bold: true, Italic: true},
		{Text: " here"},
	}, blocks[0].Runs)
}

func TestCompile_Italic(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("an *emphasized* word")

	require.Len(t, blocks, 1)
	assert.Equal(t, []models.Run{
		{Text: "an "},
		{Text: "emphasized", Italic: true},
		{Text: " word"},
	}, blocks[0].Runs)
}

func TestCompile_MultipleDelimitersOneLine(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("**a** then *b* end")

	require.Len(t, blocks, 1)
	assert.Equal(t, []models.Run{
		{Text: "a", Bold: true},
		{Text: " then "},
		{Text: "b", Italic: true},
		{Text: " end"},
	}, blocks[0].Runs)
}

func TestCompile_OverlappingMarkersStayPlain(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("*a**b*")

	require.Len(t, blocks, 1)
	assert.Equal(t, []models.Run{{Text: "*a**b*"}}, blocks[0].Runs)
}

func TestCompile_UnterminatedMarkersStayLiteral(t *testing.T) {
	svc := NewService(createTestLogger())

	cases := []string{"**never closed", "*lonely star", "stars at end ***", "****"}
	for _, line := range cases {
		blocks := svc.Compile(line)
		require.Len(t, blocks, 1, line)
		assert.Equal(t, []models.Run{{Text: line}}, blocks[0].Runs, line)
	}
}

func TestCompile_NoDelimitersSinglePlainRun(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("nothing special")

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Runs, 1)
	assert.Equal(t, models.Run{Text: "nothing special"}, blocks[0].Runs[0])
}

// Concatenating run text must reconstruct the line with prefix and
// delimiters removed, nothing added or dropped.
func TestCompile_RunConcatenationReconstructsLine(t *testing.T) {
	svc := NewService(createTestLogger())

	cases := map[string]string{
		"plain line":                "plain line",
		"A **bold** word.":          "A bold word.",
		"mix ***all*** and *one*":   "mix all and one",
		"- **lead** bullet":         "lead bullet",
		"3. a *numbered* line":      "a numbered line",
		"## Heading **kept** as-is": "Heading **kept** as-is",
		"*a**b*":                    "*a**b*",
	}

	for input, expected := range cases {
		blocks := svc.Compile(input)
		require.Len(t, blocks, 1, input)
		assert.Equal(t, expected, blocks[0].PlainText(), input)
	}
}

func TestCompile_LinesAreTrimmed(t *testing.T) {
	svc := NewService(createTestLogger())

	blocks := svc.Compile("   ## Indented heading   ")

	require.Len(t, blocks, 1)
	assert.Equal(t, models.BlockHeading, blocks[0].Type)
	assert.Equal(t, "Indented heading", blocks[0].PlainText())
}

func TestCompile_ScannerTerminatesOnStarRuns(t *testing.T) {
	svc := NewService(createTestLogger())

	// Long marker runs must not loop or panic
	line := strings.Repeat("*", 40)
	blocks := svc.Compile(line)

	require.Len(t, blocks, 1)
	assert.Equal(t, line, blocks[0].PlainText())
}
