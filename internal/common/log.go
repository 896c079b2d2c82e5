// File path: internal/common/log.go
package common

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultLogHistory = 500

var (
	logger     *slog.Logger
	loggerOnce sync.Once
	level      = new(slog.LevelVar)
	history    = newLogHistory(defaultLogHistory)
)

// LogEntry is a captured log record as served by the logs endpoint.
type LogEntry struct {
	Time       time.Time      `json:"time"`
	Level      string         `json:"level"`
	Message    string         `json:"message"`
	Component  string         `json:"component,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Logger returns the process-wide slog logger. The initial level comes from
// LOG_LEVEL and can be changed later with SetLevel.
func Logger() *slog.Logger {
	loggerOnce.Do(func() {
		if parsed, err := ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
			level.Set(parsed)
		}
		base := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		logger = slog.New(&recordingHandler{handler: base, history: history})
	})
	return logger
}

// SetLevel changes the minimum level of the process-wide logger.
func SetLevel(name string) error {
	parsed, err := ParseLevel(name)
	if err != nil {
		return err
	}
	level.Set(parsed)
	return nil
}

// ParseLevel maps debug/info/warn/error to a slog level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// LogEntries returns a copy of the most recent captured records, oldest first.
func LogEntries() []LogEntry {
	return history.snapshot()
}

type recordingHandler struct {
	handler slog.Handler
	history *logHistory
	attrs   []slog.Attr
}

func (h *recordingHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.handler.Enabled(ctx, lvl)
}

func (h *recordingHandler) Handle(ctx context.Context, record slog.Record) error {
	err := h.handler.Handle(ctx, record)
	h.history.add(newLogEntry(record, h.attrs))
	return err
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &recordingHandler{handler: h.handler.WithAttrs(attrs), history: h.history, attrs: merged}
}

func (h *recordingHandler) WithGroup(name string) slog.Handler {
	return &recordingHandler{handler: h.handler.WithGroup(name), history: h.history, attrs: h.attrs}
}

// logHistory is a bounded ring of entries.
type logHistory struct {
	mu      sync.Mutex
	max     int
	entries []LogEntry
}

func newLogHistory(max int) *logHistory {
	return &logHistory{max: max}
}

func (l *logHistory) add(entry LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	if over := len(l.entries) - l.max; over > 0 {
		l.entries = append([]LogEntry(nil), l.entries[over:]...)
	}
}

func (l *logHistory) snapshot() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func newLogEntry(record slog.Record, inherited []slog.Attr) LogEntry {
	entry := LogEntry{
		Time:    record.Time.UTC(),
		Level:   strings.ToLower(record.Level.String()),
		Message: record.Message,
	}
	if record.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}
	collect := func(a slog.Attr) bool {
		if a.Key == "component" {
			entry.Component = a.Value.String()
			return true
		}
		if entry.Attributes == nil {
			entry.Attributes = make(map[string]any)
		}
		entry.Attributes[a.Key] = attrValue(a.Value)
		return true
	}
	for _, a := range inherited {
		collect(a)
	}
	record.Attrs(collect)

	// Messages are written as "component: text".
	if entry.Component == "" {
		if prefix, _, ok := strings.Cut(entry.Message, ":"); ok && !strings.Contains(prefix, " ") {
			entry.Component = prefix
		}
	}
	return entry
}

func attrValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	default:
		return v.Any()
	}
}
