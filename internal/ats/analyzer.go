// Package ats scores extracted resume text against heuristic applicant
// tracking system rules. The analysis is deterministic: the same text and
// weights always produce the same result.
package ats

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/abdellahzou/HiResume/internal/ingestion"
	"github.com/abdellahzou/HiResume/internal/types"
)

// Section names reported in AtsDetails.
const (
	SectionExperience = "Experience"
	SectionEducation  = "Education"
	SectionSkills     = "Skills"
	SectionProjects   = "Projects"
	SectionSummary    = "Summary"
)

type sectionRule struct {
	name string
	re   *regexp.Regexp
}

// sectionRules are tested against the lower-cased text, in report order.
var sectionRules = []sectionRule{
	{SectionExperience, regexp.MustCompile(`\b(experience|employment|work history|career history|expérience|experiencia)\b`)},
	{SectionEducation, regexp.MustCompile(`\b(education|academic background|qualifications|formation|educación|formación)\b`)},
	{SectionSkills, regexp.MustCompile(`\b(skills|technical skills|competencies|compétences|habilidades)\b`)},
	{SectionProjects, regexp.MustCompile(`\b(projects|portfolio|projets|proyectos)\b`)},
	{SectionSummary, regexp.MustCompile(`\b(summary|profile|objective|about me|profil|perfil)\b`)},
}

// ActionVerbs is the fixed list whose distinct occurrences make the keyword count.
var ActionVerbs = []string{
	"managed", "developed", "led", "created", "implemented", "designed", "improved",
	"increased", "achieved", "launched", "built", "coordinated", "analyzed", "delivered",
}

var verbPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(ActionVerbs))
	for i, v := range ActionVerbs {
		out[i] = regexp.MustCompile(`\b` + v + `\b`)
	}
	return out
}()

var (
	emailPattern   = regexp.MustCompile(`[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	phonePattern   = regexp.MustCompile(`(\+\d{1,3}[\s.\-]?)?\(?\d{1,4}\)?([\s.\-]?\d{2,4}){2,4}`)
	profilePattern = regexp.MustCompile(`linkedin\.com/(in|pub)/[a-z0-9_\-%]+`)
)

// Phone numbers carry between 9 and 15 digits; shorter runs are dates or counts.
const (
	minPhoneDigits = 9
	maxPhoneDigits = 15
)

// Fixed feedback strings.
const (
	StrengthSections     = "Clear section structure with standard headings."
	ImproveSections      = "Add standard section headings such as Experience, Education and Skills."
	StrengthKeywords     = "Good use of action verbs to describe your work."
	ImproveKeywords      = "Use more action verbs (led, built, delivered) to describe your achievements."
	StrengthFormatting   = "Text is machine-readable."
	ImproveFormatting    = "Very little text could be read. Avoid image-based or heavily designed layouts."
	StrengthSkills       = "Dedicated skills section found."
	ImproveSkills        = "Add a dedicated Skills section listing your key skills."
	StrengthEmail        = "Email address found."
	ImproveEmail         = "Add a professional email address."
	StrengthPhone        = "Phone number found."
	ImprovePhone         = "Add a phone number."
	StrengthProfile      = "LinkedIn profile link found."
	ImproveProfile       = "Add a link to your LinkedIn profile."
	ImproveContentLength = "Content is short. Aim for at least 500 words describing your impact."
)

// Signals are the raw detections behind a score.
type Signals struct {
	Sections     []string
	Missing      []string
	Keywords     []string
	Email        bool
	Phone        bool
	Profile      bool
	Chars        int
	Words        int
	SkillsHeader bool
}

// Detect runs every rule over text.
func Detect(text string) Signals {
	lower := strings.ToLower(text)
	s := Signals{
		Chars: utf8.RuneCountInString(strings.TrimSpace(text)),
		Words: ingestion.WordCount(text),
	}
	for _, rule := range sectionRules {
		if rule.re.MatchString(lower) {
			s.Sections = append(s.Sections, rule.name)
			if rule.name == SectionSkills {
				s.SkillsHeader = true
			}
		} else {
			s.Missing = append(s.Missing, rule.name)
		}
	}
	for i, re := range verbPatterns {
		if re.MatchString(lower) {
			s.Keywords = append(s.Keywords, ActionVerbs[i])
		}
	}
	s.Email = emailPattern.MatchString(lower)
	s.Phone = hasPhone(lower)
	s.Profile = profilePattern.MatchString(lower)
	return s
}

func hasPhone(text string) bool {
	for _, m := range phonePattern.FindAllString(text, -1) {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= minPhoneDigits && digits <= maxPhoneDigits {
			return true
		}
	}
	return false
}

// Analyzer scores text with one set of weights.
type Analyzer struct {
	weights Weights
}

// NewAnalyzer returns an analyzer after validating w.
func NewAnalyzer(w Weights) (*Analyzer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{weights: w}, nil
}

// Weights returns the analyzer's calibration.
func (a *Analyzer) Weights() Weights {
	return a.weights
}

// Analyze scores text with the default weights.
func Analyze(text, fileName string) types.AtsResult {
	a := &Analyzer{weights: DefaultWeights()}
	return a.Analyze(text, fileName)
}

// Analyze scores text. fileName only sets the reported file type.
func (a *Analyzer) Analyze(text, fileName string) types.AtsResult {
	w := a.weights
	s := Detect(text)

	b := types.AtsBreakdown{
		Sections: float64(len(s.Sections)) / float64(len(sectionRules)) * w.SectionsMax,
		Keywords: math.Min(float64(len(s.Keywords))/float64(w.KeywordTarget)*w.KeywordsMax, w.KeywordsMax),
		Skills:   w.SkillsAbsent,
	}
	if s.Chars >= w.MinChars {
		b.Formatting = w.FormattingPoints
	}
	if s.SkillsHeader {
		b.Skills = w.SkillsPresent
	}
	if s.Email {
		b.Clarity += w.EmailPoints
	}
	if s.Phone {
		b.Clarity += w.PhonePoints
	}
	if s.Profile {
		b.Clarity += w.ProfilePoints
	}

	var fb feedback
	fb.add(len(s.Sections) >= w.StrongSections, StrengthSections, ImproveSections)
	fb.add(len(s.Keywords) >= w.StrongKeywords, StrengthKeywords, ImproveKeywords)
	fb.add(b.Formatting > 0, StrengthFormatting, ImproveFormatting)
	fb.add(s.SkillsHeader, StrengthSkills, ImproveSkills)
	fb.add(s.Email, StrengthEmail, ImproveEmail)
	fb.add(s.Phone, StrengthPhone, ImprovePhone)
	fb.add(s.Profile, StrengthProfile, ImproveProfile)
	if s.Words < w.MinWords {
		fb.improvements = append(fb.improvements, ImproveContentLength)
	}

	return types.AtsResult{
		Score:        int(math.Round(b.Total())),
		Breakdown:    b,
		Strengths:    nonNil(fb.strengths),
		Improvements: nonNil(fb.improvements),
		Details: types.AtsDetails{
			WordCount:        s.Words,
			FoundSections:    nonNil(s.Sections),
			MissingSections:  nonNil(s.Missing),
			ContactInfoFound: s.Email || s.Phone,
			FileType:         ingestion.FileType(fileName),
		},
	}
}

type feedback struct {
	strengths    []string
	improvements []string
}

func (f *feedback) add(ok bool, strength, improvement string) {
	if ok {
		f.strengths = append(f.strengths, strength)
	} else {
		f.improvements = append(f.improvements, improvement)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
