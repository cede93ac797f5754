package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLineLengths_NoViolations(t *testing.T) {
	content := `\documentclass{article}
\begin{document}
Short line
Another short line
\end{document}`

	violations, err := ValidateLineLengths(strings.NewReader(content), 90)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateLineLengths_WithViolations(t *testing.T) {
	content := "\\documentclass{article}\n\\begin{document}\n" + strings.Repeat("a", 100) + "\nShort line\n\\end{document}"

	violations, err := ValidateLineLengths(strings.NewReader(content), 90)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationLineTooLong, violations[0].Type)
	assert.Equal(t, SeverityWarning, violations[0].Severity)
	assert.Equal(t, 3, violations[0].Line)
	assert.Equal(t, 100, violations[0].CharCount)
}

func TestValidateLineLengths_IgnoresComments(t *testing.T) {
	content := "% " + strings.Repeat("x", 200) + "\nText " + "% " + strings.Repeat("y", 200)

	violations, err := ValidateLineLengths(strings.NewReader(content), 90)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCountContentChars(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{`\textbf{Engineer}`, 8},
		{`\section*{Experience}`, 10},
		{`\item 100\% A\&B\_C`, 10},
		{`\textbf{Acme} \textbar{} Engineer`, 14},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, countContentChars(tt.line))
		})
	}
}
