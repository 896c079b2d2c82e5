// File path: internal/llm/llm.go

// Package llm forwards chat-completion requests to the upstream AI service,
// keeping the API credential on the server side.
package llm

import (
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/nicodishanthj/casemate/internal/common"
)

const (
	DefaultBaseURL = "https://ai.hackclub.com/proxy/v1"
	DefaultTimeout = 30 * time.Second

	completionsPath = "chat/completions"
)

// Config selects the upstream endpoint and credential. An empty Token leaves
// the proxy unconfigured.
type Config struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

// Proxy relays request bodies verbatim to the upstream completions endpoint.
type Proxy struct {
	client openai.Client
	token  string
}

// NewProxy builds a proxy from cfg. Extra request options are appended after
// the defaults, mainly for tests.
func NewProxy(cfg Config, extra ...option.RequestOption) *Proxy {
	logger := common.Logger()
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	token := strings.TrimSpace(cfg.Token)

	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if token != "" {
		opts = append(opts, option.WithAPIKey(token))
		logger.Info("llm: completion proxy configured", "endpoint", baseURL+completionsPath, "timeout", timeout)
	} else {
		logger.Warn("llm: HACKCLUB_AI_TOKEN not set; completion proxy disabled")
	}
	opts = append(opts, extra...)

	return &Proxy{client: openai.NewClient(opts...), token: token}
}

// Configured reports whether a credential is available.
func (p *Proxy) Configured() bool {
	return p != nil && p.token != ""
}
