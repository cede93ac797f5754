package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/abdellahzou/HiResume/internal/db"
	"github.com/abdellahzou/HiResume/internal/draft"
	"github.com/abdellahzou/HiResume/internal/schemas"
	"github.com/abdellahzou/HiResume/internal/server/middleware"
	"github.com/abdellahzou/HiResume/internal/types"
)

// draftRequest is the body of POST and PUT /drafts. Document is validated
// against the resume schema; Revision makes a PUT conditional.
type draftRequest struct {
	Title    string          `json:"title"`
	Document json.RawMessage `json:"document"`
	Revision int64           `json:"revision"`
}

// readBody reads a request body of at most maxDocumentBytes.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if len(body) > maxDocumentBytes {
		return nil, &ErrValidation{Field: "body", Message: "document too large"}
	}
	return body, nil
}

func (s *Server) readDraftRequest(r *http.Request, requireDocument bool) (draftRequest, types.ResumeDocument, error) {
	var req draftRequest
	body, err := readBody(r)
	if err != nil {
		return req, types.ResumeDocument{}, err
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return req, types.ResumeDocument{}, &ErrValidation{Field: "body", Message: "invalid JSON"}
		}
	}
	if len(req.Document) == 0 || string(req.Document) == "null" {
		if requireDocument {
			return req, types.ResumeDocument{}, &ErrValidation{Field: "document", Message: "required"}
		}
		return req, draft.Default(), nil
	}
	doc, err := schemas.DecodeResume(req.Document)
	return req, doc, err
}

// owner returns the authenticated user and the {id} path value when present.
func (s *Server) owner(r *http.Request, withID bool) (uuid.UUID, uuid.UUID, error) {
	user, err := middleware.GetUserID(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if !withID {
		return user, uuid.Nil, nil
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, db.ErrNotFound
	}
	return user, id, nil
}

func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	user, _, err := s.owner(r, false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req, doc, err := s.readDraftRequest(r, false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.deps.Drafts.CreateDraft(r.Context(), user, req.Title, doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/drafts/"+d.ID.String())
	s.jsonResponse(w, http.StatusCreated, d)
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	user, _, err := s.owner(r, false)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list, err := s.deps.Drafts.ListDrafts(r.Context(), user)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"drafts": list})
}

func (s *Server) loadDraft(w http.ResponseWriter, r *http.Request) (*db.Draft, bool) {
	user, id, err := s.owner(r, true)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	d, err := s.deps.Drafts.GetDraft(r.Context(), user, id)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	if d == nil {
		s.fail(w, r, db.ErrNotFound)
		return nil, false
	}
	return d, true
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	if d, ok := s.loadDraft(w, r); ok {
		s.jsonResponse(w, http.StatusOK, d)
	}
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	user, id, err := s.owner(r, true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req, doc, err := s.readDraftRequest(r, true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.deps.Drafts.UpdateDraft(r.Context(), user, id, req.Title, doc, req.Revision)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	user, id, err := s.owner(r, true)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.deps.Drafts.DeleteDraft(r.Context(), user, id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.dropSession(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderDraft renders a stored draft inside the draft's fitting session,
// so that a render of an older revision never overrides a newer one.
func (s *Server) handleRenderDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := s.loadDraft(w, r)
	if !ok {
		return
	}
	locale, err := s.locale(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.deps.Exporter.RenderRevision(r.Context(), s.session(d.ID), uint64(d.Revision), d.Document, locale)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writePage(w, page)
}

// editDraft loads the stored draft, runs edit on it and stores the result
// conditionally on the loaded revision. A ?revision= query must match the
// stored revision. Edits that change nothing are not stored.
func (s *Server) editDraft(w http.ResponseWriter, r *http.Request, edit func(*draft.Draft) error) (*db.Draft, bool) {
	stored, ok := s.loadDraft(w, r)
	if !ok {
		return nil, false
	}
	if v := r.URL.Query().Get("revision"); v != "" {
		rev, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.fail(w, r, &ErrValidation{Field: "revision", Message: "must be an integer"})
			return nil, false
		}
		if rev != stored.Revision {
			s.fail(w, r, db.ErrRevisionConflict)
			return nil, false
		}
	}

	ed := draft.FromDocument(stored.Document)
	if err := edit(ed); err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	doc, changes := ed.SnapshotAt()
	if changes == 0 {
		return stored, true
	}
	if err := doc.Validate(); err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	updated, err := s.deps.Drafts.UpdateDraft(r.Context(), stored.OwnerID, stored.ID, stored.Title, doc, stored.Revision)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return updated, true
}

// handlePatchDraft applies a draft.DocumentPatch: reset, template, personal info, custom title.
func (s *Server) handlePatchDraft(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var patch draft.DocumentPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		s.fail(w, r, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if d, ok := s.editDraft(w, r, func(ed *draft.Draft) error { return ed.Apply(patch) }); ok {
		s.jsonResponse(w, http.StatusOK, d)
	}
}

// handleAddEntry appends an entry with a fresh id to a collection. A non-empty
// body is applied to the new entry as a patch.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	collection := draft.Collection(r.PathValue("collection"))
	var entryID string
	d, ok := s.editDraft(w, r, func(ed *draft.Draft) error {
		id, err := ed.Add(collection)
		if err != nil {
			return err
		}
		entryID = id
		if len(body) == 0 {
			return nil
		}
		return ed.Update(collection, id, body)
	})
	if ok {
		s.jsonResponse(w, http.StatusCreated, map[string]any{"entryId": entryID, "draft": d})
	}
}

// handleUpdateEntry merges a patch into one collection entry.
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	collection := draft.Collection(r.PathValue("collection"))
	entryID := r.PathValue("entry")
	if d, ok := s.editDraft(w, r, func(ed *draft.Draft) error { return ed.Update(collection, entryID, body) }); ok {
		s.jsonResponse(w, http.StatusOK, d)
	}
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	collection := draft.Collection(r.PathValue("collection"))
	entryID := r.PathValue("entry")
	if d, ok := s.editDraft(w, r, func(ed *draft.Draft) error { return ed.Remove(collection, entryID) }); ok {
		s.jsonResponse(w, http.StatusOK, d)
	}
}
