package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dgallion1/docredact/internal/pipeline"
	"github.com/dgallion1/docredact/internal/report"
	"github.com/go-chi/chi/v5"
)

// handleJobResult returns the match records for a finished job.
func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()

	if snap.Status == pipeline.StatusDuplicate {
		jsonError(w, fmt.Sprintf("duplicate of job %s", snap.DuplicateOf), http.StatusConflict)
		return
	}
	if snap.Status != pipeline.StatusCompleted && snap.Status != pipeline.StatusPartial {
		jsonError(w, fmt.Sprintf("job is %s, no results available", snap.Status), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":  snap.ID,
		"status":  snap.Status,
		"matches": snap.Progress.Matches,
		"pages":   job.Results(),
	})
}

// handleJobImage returns the redacted raster image for a finished job.
func (s *Server) handleJobImage(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	img := job.Rendered()
	if img == nil {
		jsonError(w, "no rendered image available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

// handleJobReport returns a human-readable redaction report. The default
// is HTML; ?format=md returns the markdown source instead.
func (s *Server) handleJobReport(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()

	if snap.Status == pipeline.StatusDuplicate {
		jsonError(w, fmt.Sprintf("duplicate of job %s", snap.DuplicateOf), http.StatusConflict)
		return
	}
	switch snap.Status {
	case pipeline.StatusCompleted, pipeline.StatusPartial, pipeline.StatusFailed:
	default:
		jsonError(w, fmt.Sprintf("job is %s, no report available", snap.Status), http.StatusConflict)
		return
	}

	md := report.Build(snap, job.Results())

	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(md))
		return
	}

	html, err := report.ToHTML(md)
	if err != nil {
		jsonError(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
