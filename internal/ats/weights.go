package ats

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Weights are the calibration constants of the score. The five maxima
// (SectionsMax, KeywordsMax, FormattingPoints, SkillsPresent and the three
// contact points) must add up to 100.
type Weights struct {
	SectionsMax      float64 `mapstructure:"sections_max" json:"sectionsMax"`
	KeywordsMax      float64 `mapstructure:"keywords_max" json:"keywordsMax"`
	KeywordTarget    int     `mapstructure:"keyword_target" json:"keywordTarget"`
	FormattingPoints float64 `mapstructure:"formatting_points" json:"formattingPoints"`
	MinChars         int     `mapstructure:"min_chars" json:"minChars"`
	SkillsPresent    float64 `mapstructure:"skills_present" json:"skillsPresent"`
	SkillsAbsent     float64 `mapstructure:"skills_absent" json:"skillsAbsent"`
	EmailPoints      float64 `mapstructure:"email_points" json:"emailPoints"`
	PhonePoints      float64 `mapstructure:"phone_points" json:"phonePoints"`
	ProfilePoints    float64 `mapstructure:"profile_points" json:"profilePoints"`
	// MinWords is the word count below which the content is flagged as too short.
	MinWords int `mapstructure:"min_words" json:"minWords"`
	// StrongSections and StrongKeywords are the counts at which the section and
	// keyword signals are reported as strengths.
	StrongSections int `mapstructure:"strong_sections" json:"strongSections"`
	StrongKeywords int `mapstructure:"strong_keywords" json:"strongKeywords"`
}

// DefaultWeights returns the stock calibration.
func DefaultWeights() Weights {
	return Weights{
		SectionsMax:      20,
		KeywordsMax:      30,
		KeywordTarget:    10,
		FormattingPoints: 15,
		MinChars:         100,
		SkillsPresent:    15,
		SkillsAbsent:     5,
		EmailPoints:      10,
		PhonePoints:      5,
		ProfilePoints:    5,
		MinWords:         500,
		StrongSections:   3,
		StrongKeywords:   5,
	}
}

// Max returns the highest reachable score.
func (w Weights) Max() float64 {
	return w.SectionsMax + w.KeywordsMax + w.FormattingPoints + w.SkillsPresent +
		w.EmailPoints + w.PhonePoints + w.ProfilePoints
}

// Validate checks that the weights describe a score out of 100.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"sections_max":      w.SectionsMax,
		"keywords_max":      w.KeywordsMax,
		"formatting_points": w.FormattingPoints,
		"skills_present":    w.SkillsPresent,
		"skills_absent":     w.SkillsAbsent,
		"email_points":      w.EmailPoints,
		"phone_points":      w.PhonePoints,
		"profile_points":    w.ProfilePoints,
	} {
		if v < 0 {
			return fmt.Errorf("ats weight %s must not be negative, got %v", name, v)
		}
	}
	if w.KeywordTarget < 1 {
		return fmt.Errorf("ats keyword_target must be at least 1, got %d", w.KeywordTarget)
	}
	if w.MinChars < 0 || w.MinWords < 0 {
		return fmt.Errorf("ats min_chars and min_words must not be negative")
	}
	if w.SkillsAbsent > w.SkillsPresent {
		return fmt.Errorf("ats skills_absent (%v) exceeds skills_present (%v)", w.SkillsAbsent, w.SkillsPresent)
	}
	if total := w.Max(); total < 99.999 || total > 100.001 {
		return fmt.Errorf("ats weights must sum to 100, got %v", total)
	}
	return nil
}

// Fingerprint identifies the calibration, so cached results are never shared
// between different weights.
func (w Weights) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%+v", w)))
	return hex.EncodeToString(sum[:8])
}
