// Package sections decides which resume sections exist and what they contain,
// independently of the output format. Screen, LaTeX and DOCX emitters all read
// the values built here so section inclusion cannot drift between formats.
package sections

import (
	"strings"

	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/types"
)

// Kind names a section.
type Kind string

// Section kinds.
const (
	Summary        Kind = "summary"
	Experience     Kind = "experience"
	Projects       Kind = "projects"
	Education      Kind = "education"
	Certifications Kind = "certifications"
	Skills         Kind = "skills"
	Custom         Kind = "custom"
	Contact        Kind = "contact"
)

// DateRange is the start/end pair of a timeline entry.
// For current entries End already holds the localized "Present" token.
type DateRange struct {
	Start   string
	End     string
	Current bool
}

// IsZero reports whether the range has nothing to show.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// Join formats the range with sep between the ends, dropping a missing end.
func (r DateRange) Join(sep string) string {
	switch {
	case r.Start == "":
		return r.End
	case r.End == "":
		return r.Start
	default:
		return r.Start + sep + r.End
	}
}

// Entry is one item of a timeline-like section.
type Entry struct {
	ID string
	// Primary is the bold line: company, school, project, certification or custom item name.
	Primary string
	// Secondary is the role line: position, degree or issuer.
	Secondary string
	Dates     DateRange
	Location  string
	Link      string
	// Lines are the non-empty lines of the description.
	Lines []string
}

// ContactItem is one contact detail.
type ContactItem struct {
	Field string // email, phone, location, website
	Value string
}

// Section is a non-empty section ready for emission.
type Section struct {
	Kind    Kind
	Heading string
	// Paragraphs is set for Summary.
	Paragraphs []string
	// Entries is set for Experience, Projects, Education, Certifications and Custom.
	Entries []Entry
	// Items is set for Skills.
	Items []string
	// Contacts is set for Contact.
	Contacts []ContactItem
}

// Header is the name block at the top of the page.
type Header struct {
	Name     string
	Title    string
	Contacts []ContactItem
}

// Set holds every non-empty section of one document.
type Set struct {
	Header   Header
	Labels   i18n.Labels
	sections map[Kind]Section
}

// Build turns a (normalized) document into its sections. Empty collections and
// blank fields produce no section.
func Build(doc types.ResumeDocument, labels i18n.Labels) Set {
	p := doc.PersonalInfo
	s := Set{
		Header: Header{
			Name:     strings.TrimSpace(p.FullName),
			Title:    strings.TrimSpace(p.Title),
			Contacts: contacts(p),
		},
		Labels:   labels,
		sections: make(map[Kind]Section),
	}
	h := labels.Headings

	if paras := SplitLines(p.Summary); len(paras) > 0 {
		s.put(Section{Kind: Summary, Heading: h.Summary, Paragraphs: paras})
	}
	if len(s.Header.Contacts) > 0 {
		s.put(Section{Kind: Contact, Heading: h.Contact, Contacts: s.Header.Contacts})
	}

	if len(doc.Experience) > 0 {
		entries := make([]Entry, 0, len(doc.Experience))
		for _, e := range doc.Experience {
			entries = append(entries, Entry{
				ID:        e.ID,
				Primary:   strings.TrimSpace(e.Company),
				Secondary: strings.TrimSpace(e.Position),
				Dates:     dates(e.StartDate, e.EndDate, e.Current, labels),
				Lines:     SplitLines(e.Description),
			})
		}
		s.put(Section{Kind: Experience, Heading: h.Experience, Entries: entries})
	}

	if len(doc.Projects) > 0 {
		entries := make([]Entry, 0, len(doc.Projects))
		for _, pr := range doc.Projects {
			entries = append(entries, Entry{
				ID:      pr.ID,
				Primary: strings.TrimSpace(pr.Name),
				Link:    strings.TrimSpace(pr.Link),
				Lines:   SplitLines(pr.Description),
			})
		}
		s.put(Section{Kind: Projects, Heading: h.Projects, Entries: entries})
	}

	if len(doc.Education) > 0 {
		entries := make([]Entry, 0, len(doc.Education))
		for _, e := range doc.Education {
			entries = append(entries, Entry{
				ID:        e.ID,
				Primary:   strings.TrimSpace(e.School),
				Secondary: strings.TrimSpace(e.Degree),
				Dates:     dates(e.StartDate, e.EndDate, e.Current, labels),
			})
		}
		s.put(Section{Kind: Education, Heading: h.Education, Entries: entries})
	}

	if len(doc.Certifications) > 0 {
		entries := make([]Entry, 0, len(doc.Certifications))
		for _, c := range doc.Certifications {
			entries = append(entries, Entry{
				ID:        c.ID,
				Primary:   strings.TrimSpace(c.Name),
				Secondary: strings.TrimSpace(c.Issuer),
				Dates:     DateRange{End: strings.TrimSpace(c.Date)},
			})
		}
		s.put(Section{Kind: Certifications, Heading: h.Certifications, Entries: entries})
	}

	if len(doc.Skills) > 0 {
		items := make([]string, 0, len(doc.Skills))
		for _, sk := range doc.Skills {
			if name := strings.TrimSpace(sk.Name); name != "" {
				items = append(items, name)
			}
		}
		if len(items) > 0 {
			s.put(Section{Kind: Skills, Heading: h.Skills, Items: items})
		}
	}

	if len(doc.CustomItems) > 0 {
		heading := strings.TrimSpace(doc.CustomSectionTitle)
		if heading == "" {
			heading = h.Custom
		}
		entries := make([]Entry, 0, len(doc.CustomItems))
		for _, c := range doc.CustomItems {
			entries = append(entries, Entry{
				ID:       c.ID,
				Primary:  strings.TrimSpace(c.Name),
				Location: strings.TrimSpace(c.City),
				Dates:    dates(c.StartDate, c.EndDate, c.Current, labels),
				Lines:    SplitLines(c.Description),
			})
		}
		s.put(Section{Kind: Custom, Heading: heading, Entries: entries})
	}

	return s
}

func (s *Set) put(sec Section) {
	s.sections[sec.Kind] = sec
}

// Get returns the section of the given kind, if the document has one.
func (s Set) Get(k Kind) (Section, bool) {
	sec, ok := s.sections[k]
	return sec, ok
}

// Has reports whether the section exists.
func (s Set) Has(k Kind) bool {
	_, ok := s.sections[k]
	return ok
}

// Ordered returns the existing sections among kinds, in the given order.
func (s Set) Ordered(kinds []Kind) []Section {
	out := make([]Section, 0, len(kinds))
	for _, k := range kinds {
		if sec, ok := s.sections[k]; ok {
			out = append(out, sec)
		}
	}
	return out
}

// DisplayName returns the name with the localized placeholder when it is empty.
func (s Set) DisplayName() string {
	if s.Header.Name != "" {
		return s.Header.Name
	}
	return s.Labels.FullName
}

// DisplayTitle returns the job title with the localized placeholder when it is empty.
func (s Set) DisplayTitle() string {
	if s.Header.Title != "" {
		return s.Header.Title
	}
	return s.Labels.JobTitle
}

func dates(start, end string, current bool, labels i18n.Labels) DateRange {
	r := DateRange{Start: strings.TrimSpace(start), Current: current}
	if current {
		r.End = labels.Present
	} else {
		r.End = strings.TrimSpace(end)
	}
	return r
}

func contacts(p types.PersonalInfo) []ContactItem {
	var out []ContactItem
	for _, c := range []ContactItem{
		{Field: "email", Value: p.Email},
		{Field: "phone", Value: p.Phone},
		{Field: "location", Value: p.Location},
		{Field: "website", Value: p.Website},
	} {
		if v := strings.TrimSpace(c.Value); v != "" {
			out = append(out, ContactItem{Field: c.Field, Value: v})
		}
	}
	return out
}

// SplitLines splits free text on line breaks and drops blank lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
