package ingestion

import (
	"regexp"
	"strings"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v\x{00A0}\x{2007}\x{202F}]+`)
	blankRun        = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted text while keeping its line structure:
// line endings become LF, runs of spaces collapse, and no more than one blank
// line separates two blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u0000", "")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses horizontal whitespace. Bullet glyphs are normalized to "- ".
func cleanLine(line string) string {
	line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}
	if isBulletLine(line) {
		_, rest, _ := strings.Cut(line, " ")
		return "- " + strings.TrimSpace(rest)
	}
	return line
}

func isBulletLine(line string) bool {
	for _, prefix := range []string{"- ", "* ", "• ", "· ", "▪ ", "◦ "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
