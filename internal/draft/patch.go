package draft

import "github.com/abdellahzou/HiResume/internal/types"

// Patches carry pointer fields: nil leaves the field untouched.

// PersonalPatch is a partial update of PersonalInfo.
type PersonalPatch struct {
	FullName *string `json:"fullName,omitempty"`
	Title    *string `json:"title,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	Website  *string `json:"website,omitempty"`
	Summary  *string `json:"summary,omitempty"`
}

func (p PersonalPatch) apply(dst *types.PersonalInfo) {
	set(&dst.FullName, p.FullName)
	set(&dst.Title, p.Title)
	set(&dst.Email, p.Email)
	set(&dst.Phone, p.Phone)
	set(&dst.Location, p.Location)
	set(&dst.Website, p.Website)
	set(&dst.Summary, p.Summary)
}

// ExperiencePatch is a partial update of an Experience entry.
type ExperiencePatch struct {
	Company     *string `json:"company,omitempty"`
	Position    *string `json:"position,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Current     *bool   `json:"current,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p ExperiencePatch) apply(dst *types.Experience) {
	set(&dst.Company, p.Company)
	set(&dst.Position, p.Position)
	set(&dst.StartDate, p.StartDate)
	set(&dst.EndDate, p.EndDate)
	set(&dst.Current, p.Current)
	set(&dst.Description, p.Description)
}

// ProjectPatch is a partial update of a Project entry.
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Link        *string `json:"link,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p ProjectPatch) apply(dst *types.Project) {
	set(&dst.Name, p.Name)
	set(&dst.Link, p.Link)
	set(&dst.Description, p.Description)
}

// EducationPatch is a partial update of an Education entry.
type EducationPatch struct {
	School    *string `json:"school,omitempty"`
	Degree    *string `json:"degree,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Current   *bool   `json:"current,omitempty"`
}

func (p EducationPatch) apply(dst *types.Education) {
	set(&dst.School, p.School)
	set(&dst.Degree, p.Degree)
	set(&dst.StartDate, p.StartDate)
	set(&dst.EndDate, p.EndDate)
	set(&dst.Current, p.Current)
}

// CertificationPatch is a partial update of a Certification entry.
type CertificationPatch struct {
	Name   *string `json:"name,omitempty"`
	Issuer *string `json:"issuer,omitempty"`
	Date   *string `json:"date,omitempty"`
}

func (p CertificationPatch) apply(dst *types.Certification) {
	set(&dst.Name, p.Name)
	set(&dst.Issuer, p.Issuer)
	set(&dst.Date, p.Date)
}

// SkillPatch is a partial update of a Skill entry. Levels are clamped to 1-5.
type SkillPatch struct {
	Name  *string `json:"name,omitempty"`
	Level *int    `json:"level,omitempty"`
}

func (p SkillPatch) apply(dst *types.Skill) {
	set(&dst.Name, p.Name)
	if p.Level != nil {
		dst.Level = min(max(*p.Level, 1), 5)
	}
}

// CustomItemPatch is a partial update of a CustomItem entry.
type CustomItemPatch struct {
	Name        *string `json:"name,omitempty"`
	City        *string `json:"city,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Current     *bool   `json:"current,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p CustomItemPatch) apply(dst *types.CustomItem) {
	set(&dst.Name, p.Name)
	set(&dst.City, p.City)
	set(&dst.StartDate, p.StartDate)
	set(&dst.EndDate, p.EndDate)
	set(&dst.Current, p.Current)
	set(&dst.Description, p.Description)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
