// File path: internal/api/ai_handler.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/nicodishanthj/casemate/internal/common"
	"github.com/nicodishanthj/casemate/internal/llm"
)

// handleCompletions relays the request body to the completion service and
// writes back whatever JSON it returns.
func (s *Server) handleCompletions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, badRequest("read request body: %v", err))
		return
	}
	if !json.Valid(body) {
		respondError(w, badRequest("request body must be valid JSON"))
		return
	}
	if s.ai == nil {
		respondError(w, llm.ErrNotConfigured)
		return
	}
	out, err := s.ai.Complete(r.Context(), json.RawMessage(body))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		common.Logger().Warn("api: write completion failed", "error", err)
	}
}
