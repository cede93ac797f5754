package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/abdellahzou/HiResume/internal/ats"
	"github.com/abdellahzou/HiResume/internal/observability"
)

// handleATS scores an uploaded resume. The multipart field is "file".
func (s *Server) handleATS(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1<<16)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		s.fail(w, r, &ErrValidation{Field: "file", Message: "expected a multipart upload"})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "file", Message: "missing file"})
		return
	}
	defer file.Close()

	if header.Size > s.cfg.MaxUploadBytes {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	p := ats.NewPipeline(s.deps.Analyzer,
		ats.WithExtractors(s.deps.Extractors),
		ats.WithCache(s.deps.Cache),
		ats.WithObserver(observability.ATSObserver()),
		ats.WithLogger(s.log),
	)
	result, err := p.Run(r.Context(), header.Filename, data)
	if err != nil {
		var userErr ats.UserError
		if errors.As(err, &userErr) {
			s.errorResponse(w, http.StatusBadRequest, ats.UserMessage(err))
			return
		}
		s.fail(w, r, err)
		return
	}

	observability.ATSScores.Observe(float64(result.Score))
	s.jsonResponse(w, http.StatusOK, result)
}
