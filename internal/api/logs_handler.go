// File path: internal/api/logs_handler.go
package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/nicodishanthj/casemate/internal/common"
)

// handleLogs returns the captured log buffer, oldest first. The optional
// component and level query parameters narrow the result.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	component := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("component")))
	level := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("level")))

	entries := make([]common.LogEntry, 0)
	for _, entry := range common.LogEntries() {
		if component != "" && strings.ToLower(entry.Component) != component {
			continue
		}
		if level != "" && strings.ToLower(entry.Level) != level {
			continue
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})
	writeJSON(w, http.StatusOK, logsResponse{Entries: entries})
}
