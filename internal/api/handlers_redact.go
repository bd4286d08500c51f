package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docredact/internal/match"
)

type redactRequest struct {
	Words   []match.Word   `json:"words"`
	Phrases []match.Phrase `json:"phrases"`
}

// handleRedact runs the matcher synchronously over caller-supplied words.
// No file upload, no OCR, no classification: the caller already has both
// the recognized text and the phrases to find.
func (s *Server) handleRedact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req redactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Words) == 0 {
		jsonError(w, "words are required", http.StatusBadRequest)
		return
	}

	records := match.FindAll(req.Words, req.Phrases)
	if records == nil {
		records = []match.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"matches": records,
		"count":   len(records),
	})
}
