package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/abdellahzou/HiResume/internal/export"
	"github.com/abdellahzou/HiResume/internal/i18n"
	"github.com/abdellahzou/HiResume/internal/schemas"
	"github.com/abdellahzou/HiResume/internal/types"
)

// maxDocumentBytes bounds a ResumeDocument request body.
const maxDocumentBytes = 1 << 20

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// featuresResponse lists the static flags and what this deployment can do.
type featuresResponse struct {
	ShowAds   bool               `json:"showAds"`
	PDF       bool               `json:"pdf"`
	Drafts    bool               `json:"drafts"`
	Locales   []i18n.Locale      `json:"locales"`
	Templates []types.TemplateID `json:"templates"`
	Formats   []export.Format    `json:"formats"`
}

func (s *Server) handleFeatures(w http.ResponseWriter, _ *http.Request) {
	formats := []export.Format{export.FormatTeX, export.FormatDOCX, export.FormatHTML}
	if s.deps.Exporter.CanPrint() {
		formats = export.Formats()
	}
	s.jsonResponse(w, http.StatusOK, featuresResponse{
		ShowAds:   s.cfg.Features.ShowAds,
		PDF:       s.deps.Exporter.CanPrint(),
		Drafts:    s.deps.Drafts != nil && s.deps.Tokens != nil,
		Locales:   i18n.All(),
		Templates: types.AllTemplates(),
		Formats:   formats,
	})
}

// readDocument decodes and validates a ResumeDocument body.
func (s *Server) readDocument(r *http.Request) (types.ResumeDocument, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes+1))
	if err != nil {
		return types.ResumeDocument{}, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if len(body) > maxDocumentBytes {
		return types.ResumeDocument{}, &ErrValidation{Field: "body", Message: "document too large"}
	}
	if len(body) == 0 {
		return types.ResumeDocument{}, &ErrValidation{Field: "body", Message: "empty request body"}
	}
	return schemas.DecodeResume(body)
}

// handleRender returns the fitted screen HTML of a document. fit=false skips fitting.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	locale, err := s.locale(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	doc, err := s.readDocument(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	fit := true
	if q := r.URL.Query().Get("fit"); q != "" {
		if fit, err = strconv.ParseBool(q); err != nil {
			s.fail(w, r, &ErrValidation{Field: "fit", Message: "must be a boolean"})
			return
		}
	}

	var page export.Page
	if fit {
		page, err = s.deps.Exporter.Render(r.Context(), doc, locale)
	} else {
		page, err = s.deps.Exporter.RenderNeutral(r.Context(), doc, locale)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writePage(w, page)
}

func (s *Server) writePage(w http.ResponseWriter, page export.Page) {
	h := w.Header()
	h.Set("Content-Type", export.FormatHTML.MIME())
	h.Set("X-Fit-Scale", strconv.FormatFloat(page.Fit.Params.Scale, 'f', 4, 64))
	h.Set("X-Fit-Spacing", strconv.FormatFloat(page.Fit.Params.Spacing, 'f', 4, 64))
	h.Set("X-Fit-Status", string(page.Fit.Status))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page.HTML); err != nil {
		s.log.Debug().Err(err).Msg("failed to write page")
	}
}

// handleExport compiles a document to one format and returns it as an attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	locale, err := s.locale(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	doc, err := s.readDocument(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	a, err := s.deps.Exporter.Export(r.Context(), doc, locale, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	h := w.Header()
	h.Set("Content-Type", a.MIME)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	h.Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(a.Data); err != nil {
		s.log.Debug().Err(err).Msg("failed to write artifact")
	}
}
