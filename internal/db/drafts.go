package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/abdellahzou/HiResume/internal/types"
)

// ErrNotFound is returned when a draft does not exist or belongs to someone else.
var ErrNotFound = errors.New("draft not found")

// ErrRevisionConflict is returned when an update names a revision that is no longer current.
var ErrRevisionConflict = errors.New("draft revision conflict")

// Draft is a stored resume document.
type Draft struct {
	ID        uuid.UUID            `json:"id"`
	OwnerID   uuid.UUID            `json:"ownerId"`
	Title     string               `json:"title"`
	Document  types.ResumeDocument `json:"document"`
	Revision  int64                `json:"revision"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// DraftSummary is a draft without its document.
type DraftSummary struct {
	ID         uuid.UUID        `json:"id"`
	Title      string           `json:"title"`
	TemplateID types.TemplateID `json:"templateId"`
	Revision   int64            `json:"revision"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

const draftColumns = `id, owner_id, title, document, revision, created_at, updated_at`

func scanDraft(row pgx.Row) (*Draft, error) {
	var d Draft
	var doc []byte
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Title, &doc, &d.Revision, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc, &d.Document); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", d.ID, err)
	}
	return &d, nil
}

// CreateDraft stores a new draft at revision 1.
func (db *DB) CreateDraft(ctx context.Context, owner uuid.UUID, title string, doc types.ResumeDocument) (*Draft, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}
	d, err := scanDraft(db.pool.QueryRow(ctx,
		`INSERT INTO drafts (id, owner_id, title, template_id, document)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+draftColumns,
		uuid.New(), owner, title, string(doc.TemplateID), body,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return d, nil
}

// GetDraft returns one draft of owner. Returns nil, nil when it does not exist.
func (db *DB) GetDraft(ctx context.Context, owner, id uuid.UUID) (*Draft, error) {
	d, err := scanDraft(db.pool.QueryRow(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE id = $1 AND owner_id = $2`,
		id, owner,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return d, nil
}

// ListDrafts returns the drafts of owner, most recently updated first.
func (db *DB) ListDrafts(ctx context.Context, owner uuid.UUID) ([]DraftSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, template_id, revision, updated_at
		 FROM drafts WHERE owner_id = $1
		 ORDER BY updated_at DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	out := []DraftSummary{}
	for rows.Next() {
		var s DraftSummary
		var template string
		if err := rows.Scan(&s.ID, &s.Title, &template, &s.Revision, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		s.TemplateID = types.TemplateID(template)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drafts: %w", err)
	}
	return out, nil
}

// UpdateDraft replaces the title and document and bumps the revision.
// A positive ifRevision makes the write conditional on the stored revision.
func (db *DB) UpdateDraft(ctx context.Context, owner, id uuid.UUID, title string, doc types.ResumeDocument, ifRevision int64) (*Draft, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}
	d, err := scanDraft(db.pool.QueryRow(ctx,
		`UPDATE drafts
		 SET title = $3, template_id = $4, document = $5, revision = revision + 1, updated_at = NOW()
		 WHERE id = $1 AND owner_id = $2 AND ($6::bigint <= 0 OR revision = $6::bigint)
		 RETURNING `+draftColumns,
		id, owner, title, string(doc.TemplateID), body, ifRevision,
	))
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	existing, gerr := db.GetDraft(ctx, owner, id)
	if gerr != nil {
		return nil, gerr
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	return nil, ErrRevisionConflict
}

// DeleteDraft removes one draft of owner.
func (db *DB) DeleteDraft(ctx context.Context, owner, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM drafts WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
