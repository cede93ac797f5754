package draft

import "github.com/abdellahzou/HiResume/internal/types"

// add appends a zero entry built by mk and returns its id.
func add[T any](d *Draft, list func(*types.ResumeDocument) *[]T, mk func(id string) T) string {
	id := d.newID()
	d.mutate(func(doc *types.ResumeDocument) bool {
		l := list(doc)
		*l = append(*l, mk(id))
		return true
	})
	return id
}

func update[T any](d *Draft, list func(*types.ResumeDocument) *[]T, idOf func(*T) string, id string, apply func(*T)) bool {
	return d.mutate(func(doc *types.ResumeDocument) bool {
		l := *list(doc)
		for i := range l {
			if idOf(&l[i]) == id {
				apply(&l[i])
				return true
			}
		}
		return false
	})
}

func remove[T any](d *Draft, list func(*types.ResumeDocument) *[]T, idOf func(*T) string, id string) bool {
	return d.mutate(func(doc *types.ResumeDocument) bool {
		l := list(doc)
		for i := range *l {
			if idOf(&(*l)[i]) == id {
				*l = append((*l)[:i:i], (*l)[i+1:]...)
				return true
			}
		}
		return false
	})
}

func experiences(doc *types.ResumeDocument) *[]types.Experience { return &doc.Experience }
func projects(doc *types.ResumeDocument) *[]types.Project { return &doc.Projects }
func educations(doc *types.ResumeDocument) *[]types.Education { return &doc.Education }
func certifications(doc *types.ResumeDocument) *[]types.Certification {
	return &doc.Certifications
}
func skills(doc *types.ResumeDocument) *[]types.Skill { return &doc.Skills }
func customItems(doc *types.ResumeDocument) *[]types.CustomItem { return &doc.CustomItems }

// AddExperience appends an empty experience entry and returns its id.
func (d *Draft) AddExperience() string {
	return add(d, experiences, func(id string) types.Experience { return types.Experience{ID: id} })
}

// UpdateExperience merges p into the entry with the given id. It reports whether the entry exists.
func (d *Draft) UpdateExperience(id string, p ExperiencePatch) bool {
	return update(d, experiences, func(e *types.Experience) string { return e.ID }, id, p.apply)
}

// RemoveExperience deletes the entry with the given id.
func (d *Draft) RemoveExperience(id string) bool {
	return remove(d, experiences, func(e *types.Experience) string { return e.ID }, id)
}

// AddProject appends an empty project and returns its id.
func (d *Draft) AddProject() string {
	return add(d, projects, func(id string) types.Project { return types.Project{ID: id} })
}

// UpdateProject merges p into the project with the given id.
func (d *Draft) UpdateProject(id string, p ProjectPatch) bool {
	return update(d, projects, func(e *types.Project) string { return e.ID }, id, p.apply)
}

// RemoveProject deletes the project with the given id.
func (d *Draft) RemoveProject(id string) bool {
	return remove(d, projects, func(e *types.Project) string { return e.ID }, id)
}

// AddEducation appends an empty education entry and returns its id.
func (d *Draft) AddEducation() string {
	return add(d, educations, func(id string) types.Education { return types.Education{ID: id} })
}

// UpdateEducation merges p into the education entry with the given id.
func (d *Draft) UpdateEducation(id string, p EducationPatch) bool {
	return update(d, educations, func(e *types.Education) string { return e.ID }, id, p.apply)
}

// RemoveEducation deletes the education entry with the given id.
func (d *Draft) RemoveEducation(id string) bool {
	return remove(d, educations, func(e *types.Education) string { return e.ID }, id)
}

// AddCertification appends an empty certification and returns its id.
func (d *Draft) AddCertification() string {
	return add(d, certifications, func(id string) types.Certification { return types.Certification{ID: id} })
}

// UpdateCertification merges p into the certification with the given id.
func (d *Draft) UpdateCertification(id string, p CertificationPatch) bool {
	return update(d, certifications, func(e *types.Certification) string { return e.ID }, id, p.apply)
}

// RemoveCertification deletes the certification with the given id.
func (d *Draft) RemoveCertification(id string) bool {
	return remove(d, certifications, func(e *types.Certification) string { return e.ID }, id)
}

// AddSkill appends a skill at DefaultSkillLevel and returns its id.
func (d *Draft) AddSkill() string {
	return add(d, skills, func(id string) types.Skill { return types.Skill{ID: id, Level: DefaultSkillLevel} })
}

// UpdateSkill merges p into the skill with the given id.
func (d *Draft) UpdateSkill(id string, p SkillPatch) bool {
	return update(d, skills, func(e *types.Skill) string { return e.ID }, id, p.apply)
}

// RemoveSkill deletes the skill with the given id.
func (d *Draft) RemoveSkill(id string) bool {
	return remove(d, skills, func(e *types.Skill) string { return e.ID }, id)
}

// AddCustomItem appends an empty custom-section entry and returns its id.
func (d *Draft) AddCustomItem() string {
	return add(d, customItems, func(id string) types.CustomItem { return types.CustomItem{ID: id} })
}

// UpdateCustomItem merges p into the custom entry with the given id.
func (d *Draft) UpdateCustomItem(id string, p CustomItemPatch) bool {
	return update(d, customItems, func(e *types.CustomItem) string { return e.ID }, id, p.apply)
}

// RemoveCustomItem deletes the custom entry with the given id.
func (d *Draft) RemoveCustomItem(id string) bool {
	return remove(d, customItems, func(e *types.CustomItem) string { return e.ID }, id)
}
