package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Line    with \t multiple  spaces"
	assert.Equal(t, "Line with multiple spaces", CleanText(input))
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")
	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_Bullets(t *testing.T) {
	result := CleanText("• Led migration\n  *   Improved latency\n- Built tools")
	assert.Equal(t, "- Led migration\n- Improved latency\n- Built tools", result)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	result := CleanText("Test with émojis 🚀 and spéciàl chàracters")
	assert.Contains(t, result, "émojis")
	assert.Contains(t, result, "🚀")
	assert.Contains(t, result, "spéciàl chàracters")
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(input))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 4, WordCount("one two\nthree\tfour"))
}
