// Package types provides type definitions for structured data used throughout the HiResume system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// TemplateID selects the visual template applied to a document.
type TemplateID string

// The closed set of templates.
const (
	TemplateModern       TemplateID = "modern"
	TemplateClassic      TemplateID = "classic"
	TemplateMinimal      TemplateID = "minimal"
	TemplateProfessional TemplateID = "professional"
	TemplateCreative     TemplateID = "creative"
	TemplateExecutive    TemplateID = "executive"
)

// ErrUnknownTemplate is returned when a templateId is outside the closed set.
var ErrUnknownTemplate = errors.New("unknown template")

// AllTemplates lists every template in display order.
func AllTemplates() []TemplateID {
	return []TemplateID{
		TemplateModern,
		TemplateClassic,
		TemplateMinimal,
		TemplateProfessional,
		TemplateCreative,
		TemplateExecutive,
	}
}

// Valid reports whether id is one of the six templates.
func (id TemplateID) Valid() bool {
	for _, t := range AllTemplates() {
		if t == id {
			return true
		}
	}
	return false
}

// UsesSidebar reports whether the template splits the page into a sidebar and a main region.
func (id TemplateID) UsesSidebar() bool {
	return id == TemplateProfessional || id == TemplateMinimal
}

// UsesSerif reports whether the template belongs to the serif (classic/executive) family.
func (id TemplateID) UsesSerif() bool {
	return id == TemplateClassic || id == TemplateExecutive
}

// ParseTemplate parses a template name, case-insensitively.
func ParseTemplate(s string) (TemplateID, error) {
	id := TemplateID(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, s)
	}
	return id, nil
}

// MustTemplate is ParseTemplate for values fixed at programming time. It panics on unknown ids.
func MustTemplate(s string) TemplateID {
	id, err := ParseTemplate(s)
	if err != nil {
		panic(err)
	}
	return id
}

// PersonalInfo holds the header and contact details of a resume.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}

// HasContact reports whether any contact field is filled in.
func (p PersonalInfo) HasContact() bool {
	return p.Email != "" || p.Phone != "" || p.Location != "" || p.Website != ""
}

// Experience is one position held.
// When Current is true, EndDate is ignored everywhere and replaced by the localized "Present" token.
type Experience struct {
	ID          string `json:"id" validate:"required"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Project is a standalone piece of work, optionally with a link.
type Project struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// Education is one school attended. Current has the same meaning as for Experience.
type Education struct {
	ID        string `json:"id" validate:"required"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Current   bool   `json:"current"`
}

// Certification is a credential obtained at a single point in time.
type Certification struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// Skill is a named skill with a 1-5 level. The level is not rendered.
type Skill struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Level int    `json:"level" validate:"min=1,max=5"`
}

// CustomItem is a generic timeline entry of the user-titled custom section.
type CustomItem struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name"`
	City        string `json:"city"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// ResumeDocument is the canonical resume content plus the selected template.
type ResumeDocument struct {
	PersonalInfo       PersonalInfo    `json:"personalInfo"`
	Experience         []Experience    `json:"experience" validate:"dive"`
	Projects           []Project       `json:"projects" validate:"dive"`
	Education          []Education     `json:"education" validate:"dive"`
	Certifications     []Certification `json:"certifications" validate:"dive"`
	Skills             []Skill         `json:"skills" validate:"dive"`
	CustomSectionTitle string          `json:"customSectionTitle"`
	CustomItems        []CustomItem    `json:"customItems" validate:"dive"`
	TemplateID         TemplateID      `json:"templateId" validate:"required,template"`
}

// Clone returns a deep copy of the document.
func (d ResumeDocument) Clone() ResumeDocument {
	out := d
	out.Experience = slices.Clone(d.Experience)
	out.Projects = slices.Clone(d.Projects)
	out.Education = slices.Clone(d.Education)
	out.Certifications = slices.Clone(d.Certifications)
	out.Skills = slices.Clone(d.Skills)
	out.CustomItems = slices.Clone(d.CustomItems)
	return out
}
