package db

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdellahzou/HiResume/internal/draft"
	"github.com/abdellahzou/HiResume/internal/types"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.Migrate(ctx))
	t.Cleanup(db.Close)
	return db
}

func TestSchema_DefinesDraftsTable(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS drafts")
	assert.Contains(t, schemaSQL, "document    JSONB")
	assert.True(t, strings.Contains(schemaSQL, "revision"))
}

func TestConnect_EmptyURL(t *testing.T) {
	_, err := Connect(context.Background(), "")
	assert.Error(t, err)
}

func TestIntegration_DraftCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := uuid.New()

	doc := draft.Default()
	doc.PersonalInfo.FullName = "Jane Doe"

	created, err := db.CreateDraft(ctx, owner, "First", doc)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.DeleteDraft(ctx, owner, created.ID) })
	assert.EqualValues(t, 1, created.Revision)
	assert.Equal(t, "Jane Doe", created.Document.PersonalInfo.FullName)

	got, err := db.GetDraft(ctx, owner, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	other, err := db.GetDraft(ctx, uuid.New(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, other)

	doc.TemplateID = types.TemplateClassic
	updated, err := db.UpdateDraft(ctx, owner, created.ID, "Renamed", doc, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated.Revision)
	assert.Equal(t, types.TemplateClassic, updated.Document.TemplateID)

	_, err = db.UpdateDraft(ctx, owner, created.ID, "Stale", doc, 1)
	assert.ErrorIs(t, err, ErrRevisionConflict)

	list, err := db.ListDrafts(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Renamed", list[0].Title)
	assert.Equal(t, types.TemplateClassic, list[0].TemplateID)

	require.NoError(t, db.DeleteDraft(ctx, owner, created.ID))
	assert.ErrorIs(t, db.DeleteDraft(ctx, owner, created.ID), ErrNotFound)

	_, err = db.UpdateDraft(ctx, owner, created.ID, "Gone", doc, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
