package api

import (
	"net/http"
	"time"

	"shareit/internal/apperr"
)

type exportRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (s *HTTPServer) handleEnqueueExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		s.writeError(w, r, apperr.Validation("from must be a date in YYYY-MM-DD format"))
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		s.writeError(w, r, apperr.Validation("to must be a date in YYYY-MM-DD format"))
		return
	}

	job, err := s.exports.Enqueue(r.Context(), from, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (s *HTTPServer) handleListExports(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.exports.ListJobs(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}
