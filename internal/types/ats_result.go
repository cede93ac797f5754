package types

// AtsBreakdown holds the five weighted sub-scores of an ATS analysis.
type AtsBreakdown struct {
	Sections   float64 `json:"sections"`   // /20
	Keywords   float64 `json:"keywords"`   // /30
	Formatting float64 `json:"formatting"` // /15
	Skills     float64 `json:"skills"`     // /15
	Clarity    float64 `json:"clarity"`    // /20
}

// Total sums the sub-scores.
func (b AtsBreakdown) Total() float64 {
	return b.Sections + b.Keywords + b.Formatting + b.Skills + b.Clarity
}

// AtsDetails records the raw signals behind a score.
type AtsDetails struct {
	WordCount        int      `json:"wordCount"`
	FoundSections    []string `json:"foundSections"`
	MissingSections  []string `json:"missingSections"`
	ContactInfoFound bool     `json:"contactInfoFound"`
	FileType         string   `json:"fileType"`
}

// AtsResult is the output of one ATS analysis. It is created fresh per call.
type AtsResult struct {
	Score        int          `json:"score"`
	Breakdown    AtsBreakdown `json:"breakdown"`
	Strengths    []string     `json:"strengths"`
	Improvements []string     `json:"improvements"`
	Details      AtsDetails   `json:"details"`
}
