// Package draft implements the editing lifecycle of a resume document: default state,
// add/update/remove by id, template switching and a monotonically increasing revision.
package draft

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/abdellahzou/HiResume/internal/types"
)

// DefaultSkillLevel is the level given to newly added skills.
const DefaultSkillLevel = 3

// Draft is the mutable, in-progress document. It is safe for concurrent use.
// Readers take Snapshot() and never see later mutations.
type Draft struct {
	mu       sync.RWMutex
	doc      types.ResumeDocument
	revision uint64
	newID    func() string
}

// Option configures a Draft.
type Option func(*Draft)

// WithIDGenerator replaces the uuid generator, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(d *Draft) { d.newID = fn }
}

// New returns a draft holding the default document.
func New(opts ...Option) *Draft {
	d := &Draft{
		doc:   Default(),
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FromDocument starts a draft from an existing document. The document is copied.
func FromDocument(doc types.ResumeDocument, opts ...Option) *Draft {
	d := New(opts...)
	d.doc = doc.Clone()
	return d
}

// Default returns the initial document: modern template, empty collections.
func Default() types.ResumeDocument {
	return types.ResumeDocument{
		Experience:     []types.Experience{},
		Projects:       []types.Project{},
		Education:      []types.Education{},
		Certifications: []types.Certification{},
		Skills:         []types.Skill{},
		CustomItems:    []types.CustomItem{},
		TemplateID:     types.TemplateModern,
	}
}

// Snapshot returns a deep copy of the current document.
func (d *Draft) Snapshot() types.ResumeDocument {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.doc.Clone()
}

// Revision returns the number of mutations applied so far.
func (d *Draft) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// SnapshotAt returns the snapshot together with the revision it belongs to.
func (d *Draft) SnapshotAt() (types.ResumeDocument, uint64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.doc.Clone(), d.revision
}

// mutate runs fn under the write lock and bumps the revision when fn reports a change.
func (d *Draft) mutate(fn func(doc *types.ResumeDocument) bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !fn(&d.doc) {
		return false
	}
	d.revision++
	return true
}

// Reset restores the default document.
func (d *Draft) Reset() {
	d.mutate(func(doc *types.ResumeDocument) bool {
		*doc = Default()
		return true
	})
}

// SetTemplate switches the visual template. Unknown ids are rejected.
func (d *Draft) SetTemplate(id types.TemplateID) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownTemplate, string(id))
	}
	d.mutate(func(doc *types.ResumeDocument) bool {
		doc.TemplateID = id
		return true
	})
	return nil
}

// SetCustomSectionTitle sets the heading of the custom section.
func (d *Draft) SetCustomSectionTitle(title string) {
	d.mutate(func(doc *types.ResumeDocument) bool {
		doc.CustomSectionTitle = title
		return true
	})
}

// SetPersonal merges a partial update into the personal info.
func (d *Draft) SetPersonal(p PersonalPatch) {
	d.mutate(func(doc *types.ResumeDocument) bool {
		p.apply(&doc.PersonalInfo)
		return true
	})
}
