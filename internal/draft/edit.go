package draft

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abdellahzou/HiResume/internal/types"
)

// Collection names an editable list of a document, spelled as its JSON field.
type Collection string

const (
	Experiences    Collection = "experience"
	Projects       Collection = "projects"
	Educations     Collection = "education"
	Certifications Collection = "certifications"
	Skills         Collection = "skills"
	CustomItems    Collection = "customItems"
)

var (
	// ErrUnknownCollection is returned for a collection name outside the document.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrEntryNotFound is returned when no entry of the collection has the id.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrInvalidPatch is returned when a patch body does not decode.
	ErrInvalidPatch = errors.New("invalid patch")
)

// DocumentPatch edits the fields outside the collections. Reset runs first,
// so the other fields apply to the default document.
type DocumentPatch struct {
	Reset              bool              `json:"reset,omitempty"`
	TemplateID         *types.TemplateID `json:"templateId,omitempty"`
	PersonalInfo       *PersonalPatch    `json:"personalInfo,omitempty"`
	CustomSectionTitle *string           `json:"customSectionTitle,omitempty"`
}

// Apply runs p against the draft. An unknown template rejects the whole patch.
func (d *Draft) Apply(p DocumentPatch) error {
	if p.TemplateID != nil && !p.TemplateID.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownTemplate, string(*p.TemplateID))
	}
	if p.Reset {
		d.Reset()
	}
	if p.TemplateID != nil {
		if err := d.SetTemplate(*p.TemplateID); err != nil {
			return err
		}
	}
	if p.PersonalInfo != nil {
		d.SetPersonal(*p.PersonalInfo)
	}
	if p.CustomSectionTitle != nil {
		d.SetCustomSectionTitle(*p.CustomSectionTitle)
	}
	return nil
}

// Add appends an empty entry to c and returns its id.
func (d *Draft) Add(c Collection) (string, error) {
	switch c {
	case Experiences:
		return d.AddExperience(), nil
	case Projects:
		return d.AddProject(), nil
	case Educations:
		return d.AddEducation(), nil
	case Certifications:
		return d.AddCertification(), nil
	case Skills:
		return d.AddSkill(), nil
	case CustomItems:
		return d.AddCustomItem(), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, string(c))
}

// Update decodes a JSON patch of the entry type of c and merges it into the entry with the id.
func (d *Draft) Update(c Collection, id string, patch []byte) error {
	var (
		found bool
		err   error
	)
	switch c {
	case Experiences:
		found, err = decodeAndApply(patch, func(p ExperiencePatch) bool { return d.UpdateExperience(id, p) })
	case Projects:
		found, err = decodeAndApply(patch, func(p ProjectPatch) bool { return d.UpdateProject(id, p) })
	case Educations:
		found, err = decodeAndApply(patch, func(p EducationPatch) bool { return d.UpdateEducation(id, p) })
	case Certifications:
		found, err = decodeAndApply(patch, func(p CertificationPatch) bool { return d.UpdateCertification(id, p) })
	case Skills:
		found, err = decodeAndApply(patch, func(p SkillPatch) bool { return d.UpdateSkill(id, p) })
	case CustomItems:
		found, err = decodeAndApply(patch, func(p CustomItemPatch) bool { return d.UpdateCustomItem(id, p) })
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, string(c))
	}
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s %s", ErrEntryNotFound, c, id)
	}
	return nil
}

// Remove deletes the entry with the id from c.
func (d *Draft) Remove(c Collection, id string) error {
	var found bool
	switch c {
	case Experiences:
		found = d.RemoveExperience(id)
	case Projects:
		found = d.RemoveProject(id)
	case Educations:
		found = d.RemoveEducation(id)
	case Certifications:
		found = d.RemoveCertification(id)
	case Skills:
		found = d.RemoveSkill(id)
	case CustomItems:
		found = d.RemoveCustomItem(id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, string(c))
	}
	if !found {
		return fmt.Errorf("%w: %s %s", ErrEntryNotFound, c, id)
	}
	return nil
}

// decodeAndApply decodes data strictly into P before handing it to fn.
func decodeAndApply[P any](data []byte, fn func(P) bool) (bool, error) {
	var p P
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return fn(p), nil
}
