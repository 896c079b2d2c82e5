// File path: internal/llm/proxy.go
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	openai "github.com/openai/openai-go/v2"

	"github.com/nicodishanthj/casemate/internal/common"
	"github.com/nicodishanthj/casemate/internal/common/telemetry"
)

// ErrNotConfigured is returned when no upstream credential is set.
var ErrNotConfigured = errors.New("AI service not configured")

// UpstreamError wraps a transport failure or an error status from the
// upstream service.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI service error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Complete forwards body unchanged and returns the upstream JSON unchanged.
// Nothing is retried.
func (p *Proxy) Complete(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}
	logger := common.Logger()
	logger.Debug("llm: forwarding completion request", "bytes", len(body))
	start := time.Now()
	ctx, end := telemetry.StartSpan(ctx, "llm.complete")

	var out []byte
	if err := p.client.Post(ctx, completionsPath, body, &out); err != nil {
		classified := classify(err)
		end("outcome", outcome(classified))
		telemetry.RecordCompletion(outcome(classified), time.Since(start))
		logger.Error("llm: completion request failed", "error", classified)
		return nil, classified
	}
	if !json.Valid(out) {
		end("outcome", "invalid_reply")
		telemetry.RecordCompletion("invalid_reply", time.Since(start))
		return nil, errors.New("proxy error: upstream returned invalid JSON")
	}
	end("outcome", "ok", "bytes", len(out))
	telemetry.RecordCompletion("ok", time.Since(start))
	logger.Debug("llm: completion request succeeded", "bytes", len(out))
	return json.RawMessage(out), nil
}

func outcome(err error) string {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return "upstream_error"
	}
	return "error"
}

func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.StatusCode, Err: err}
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Err: err}
	}
	return fmt.Errorf("proxy error: %w", err)
}
