package validation

import (
	"fmt"
	"regexp"
	"strconv"
)

// overfullPattern matches pdflatex warnings such as
// "Overfull \hbox (12.3pt too wide) in paragraph at lines 40--41".
var overfullPattern = regexp.MustCompile(`Overfull \\[hv]box \(([0-9.]+)pt too (?:wide|high)\)[^\n]*?lines? (\d+)`)

// ParseOverfullBoxes reports boxes wider than tolerancePt in a pdflatex log.
func ParseOverfullBoxes(log string, tolerancePt float64) []Violation {
	var out []Violation
	for _, m := range overfullPattern.FindAllStringSubmatch(log, -1) {
		points, err := strconv.ParseFloat(m[1], 64)
		if err != nil || points <= tolerancePt {
			continue
		}
		line, _ := strconv.Atoi(m[2])
		out = append(out, Violation{
			Type:     ViolationOverfullBox,
			Severity: SeverityWarning,
			Details:  fmt.Sprintf("Content overflows its box by %.1fpt near line %d", points, line),
			Line:     line,
			Points:   points,
		})
	}
	return out
}
