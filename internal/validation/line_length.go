package validation

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	// latexCommandPattern matches commands like \textbf{content} or \begin{environment}
	latexCommandPattern = regexp.MustCompile(`\\([a-zA-Z]+|.)\{[^}]*\}`)
	// bareCommandPattern matches commands without an argument, like \item or \hfill
	bareCommandPattern = regexp.MustCompile(`\\[a-zA-Z]+\*?`)
	// commentPattern matches an unescaped % and the rest of the line
	commentPattern = regexp.MustCompile(`(^|[^\\])%.*$`)
)

// ValidateLineLengths reports source lines whose visible text exceeds maxChars
func ValidateLineLengths(r io.Reader, maxChars int) ([]Violation, error) {
	var violations []Violation
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.HasPrefix(strings.TrimSpace(line), "%") {
			continue
		}

		contentLength := countContentChars(commentPattern.ReplaceAllString(line, "$1"))
		if contentLength > maxChars {
			violations = append(violations, Violation{
				Type:      ViolationLineTooLong,
				Severity:  SeverityWarning,
				Details:   fmt.Sprintf("Line %d has %d characters, maximum is %d", lineNum, contentLength, maxChars),
				Line:      lineNum,
				CharCount: contentLength,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &FileReadError{
			Message: "failed to read LaTeX source",
			Cause:   err,
		}
	}

	return violations, nil
}

// countContentChars approximates the visible characters of a LaTeX line
func countContentChars(line string) int {
	processed := latexCommandPattern.ReplaceAllStringFunc(line, func(match string) string {
		start := strings.Index(match, "{")
		end := strings.LastIndex(match, "}")
		if start >= 0 && end > start {
			return match[start+1 : end]
		}
		return ""
	})
	processed = bareCommandPattern.ReplaceAllString(processed, "")
	processed = strings.NewReplacer("{", "", "}", "", `\`, "").Replace(processed)
	return len([]rune(strings.TrimSpace(processed)))
}
