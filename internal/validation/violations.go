package validation

// Violation types.
const (
	ViolationLineTooLong  = "line_too_long"
	ViolationOverfullBox  = "overfull_box"
	ViolationPageOverflow = "page_overflow"
	ViolationLaTeXError   = "latex_error"
)

// Severities.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Violation is one problem found in a LaTeX export.
type Violation struct {
	Type      string  `json:"type"`
	Severity  string  `json:"severity"`
	Details   string  `json:"details"`
	Line      int     `json:"line,omitempty"`
	CharCount int     `json:"char_count,omitempty"`
	Points    float64 `json:"points,omitempty"`
}
