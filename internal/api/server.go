// File path: internal/api/server.go

// Package api exposes the case board over HTTP: CRUD routes for cases and
// their children, party photos, the AI completion passthrough, the chat
// websocket and the captured log buffer.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nicodishanthj/casemate/internal/casebook"
	"github.com/nicodishanthj/casemate/internal/chat"
	"github.com/nicodishanthj/casemate/internal/common"
	"github.com/nicodishanthj/casemate/internal/common/telemetry"
)

// Completer forwards a raw chat-completion request upstream.
type Completer interface {
	Complete(ctx context.Context, body json.RawMessage) (json.RawMessage, error)
}

type Server struct {
	router    chi.Router
	store     casebook.Store
	ai        Completer
	chat      http.Handler
	staticDir string
	maxUpload int64
}

// Config controls the optional frontend mount and upload limits.
type Config struct {
	StaticDir      string
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 10 << 20

// DefaultConfig returns the standard configuration used when no overrides are
// provided.
func DefaultConfig() Config {
	return Config{
		StaticDir:      "dist",
		MaxUploadBytes: defaultMaxUploadBytes,
	}
}

// Merge overlays non-zero values from the override onto the base
// configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.StaticDir) != "" {
		result.StaticDir = strings.TrimSpace(override.StaticDir)
	}
	if override.MaxUploadBytes > 0 {
		result.MaxUploadBytes = override.MaxUploadBytes
	}
	return result
}

// NewServer wires the routes. ai may be nil, in which case the completion
// route reports the service as not configured.
func NewServer(store casebook.Store, ai Completer, cfg *Config) (*Server, error) {
	logger := common.Logger()
	if store == nil {
		return nil, errors.New("case store required")
	}
	configuration := DefaultConfig()
	if cfg != nil {
		configuration = configuration.Merge(*cfg)
	}
	srv := &Server{
		router:    chi.NewRouter(),
		store:     store,
		ai:        ai,
		chat:      chat.Handler(),
		staticDir: configuration.StaticDir,
		maxUpload: configuration.MaxUploadBytes,
	}
	srv.routes()
	logger.Info("api: server ready", "static_dir", srv.staticDir, "max_upload_bytes", srv.maxUpload, "ai", ai != nil)
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			telemetry.RecordRequest(ww.Status(), time.Since(start))
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"dur", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Route("/api/cases", func(r chi.Router) {
		r.Get("/", s.handleListCases)
		r.Put("/", s.handleCreateCase)
		r.Patch("/", s.handleUpdateCase)
		r.Delete("/", s.handleDeleteCase)
		r.Get("/{id}", s.handleGetCase)
	})
	s.router.Route("/api/parties", func(r chi.Router) {
		r.Get("/", s.handleListParties)
		r.Post("/", s.handleListParties)
		r.Put("/", s.handleCreateParty)
		r.Patch("/", s.handleUpdateParty)
		r.Delete("/", s.handleDeleteParty)
		r.Get("/{id}", s.handleGetParty)
		r.Get("/{id}/image", s.handleGetPartyImage)
		r.Post("/{id}/image", s.handleSetPartyImage)
		r.Delete("/{id}/image", s.handleClearPartyImage)
	})
	s.router.Route("/api/evidences", func(r chi.Router) {
		r.Get("/", s.handleListEvidence)
		r.Post("/", s.handleListEvidence)
		r.Put("/", s.handleCreateEvidence)
		r.Patch("/", s.handleUpdateEvidence)
		r.Delete("/", s.handleDeleteEvidence)
		r.Get("/{id}", s.handleGetEvidence)
	})
	s.router.Route("/api/theories", func(r chi.Router) {
		r.Get("/", s.handleListTheories)
		r.Post("/", s.handleListTheories)
		r.Put("/", s.handleCreateTheory)
		r.Patch("/", s.handleUpdateTheory)
		r.Delete("/", s.handleDeleteTheory)
		r.Get("/{id}", s.handleGetTheory)
	})
	s.router.Route("/api/timelines", func(r chi.Router) {
		r.Get("/", s.handleListTimeline)
		r.Post("/", s.handleListTimeline)
		r.Put("/", s.handleCreateTimelineEvent)
		r.Patch("/", s.handleUpdateTimelineEvent)
		r.Delete("/", s.handleDeleteTimelineEvent)
		r.Get("/{id}", s.handleGetTimelineEvent)
	})

	s.router.Post("/ai/completions", s.handleCompletions)
	s.router.Handle("/api/chat", s.chat)
	s.router.Get("/api/logs", s.handleLogs)
	s.router.Handle("/debug/vars", telemetry.Handler())

	s.mountStatic()
}

// mountStatic serves the pre-built frontend when its directory exists.
func (s *Server) mountStatic() {
	logger := common.Logger()
	dir := strings.TrimSpace(s.staticDir)
	if dir == "" {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("api: static directory missing; frontend not served", "path", dir, "error", err)
		return
	}
	logger.Info("api: static assets located", "path", dir)
	s.router.Handle("/*", http.FileServer(http.Dir(dir)))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Detail: err.Error()})
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
