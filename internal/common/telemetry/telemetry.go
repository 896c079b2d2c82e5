// File path: internal/common/telemetry/telemetry.go

// Package telemetry keeps process counters in expvar and wraps units of work
// in spans. Spans are exported over OTLP only when Setup is given an
// endpoint; otherwise they go to the no-op global provider and the debug log.
package telemetry

import (
	"context"
	"expvar"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/nicodishanthj/casemate/internal/common"
)

const tracerName = "github.com/nicodishanthj/casemate"

// Config selects the OTLP/HTTP collector. An empty Endpoint disables export.
type Config struct {
	Endpoint string
	Enabled  bool
}

var (
	initOnce sync.Once

	httpRequestsTotal *expvar.Map
	httpLatencyMS     *expvar.Int

	completionsTotal    *expvar.Map
	completionLatencyMS *expvar.Int

	chatSessionsActive *expvar.Int
	chatSessionsTotal  *expvar.Int
	chatFramesTotal    *expvar.Int

	caseDeletesTotal *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		httpRequestsTotal = expvar.NewMap("casemate_http_requests_total")
		httpLatencyMS = expvar.NewInt("casemate_http_latency_ms")

		completionsTotal = expvar.NewMap("casemate_ai_completions_total")
		completionLatencyMS = expvar.NewInt("casemate_ai_completion_latency_ms")

		chatSessionsActive = expvar.NewInt("casemate_chat_sessions_active")
		chatSessionsTotal = expvar.NewInt("casemate_chat_sessions_total")
		chatFramesTotal = expvar.NewInt("casemate_chat_frames_total")

		caseDeletesTotal = expvar.NewInt("casemate_case_deletes_total")
	})
}

// Setup installs a batching OTLP tracer provider when cfg names an endpoint.
// The returned function flushes pending spans and is safe to call when
// nothing was installed.
func Setup(ctx context.Context, serviceName string, cfg Config) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	logger := common.Logger()
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if !cfg.Enabled || endpoint == "" {
		logger.Debug("telemetry: span export disabled")
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	logger.Info("telemetry: exporting spans", "endpoint", endpoint, "service", serviceName)
	return tp.Shutdown, nil
}

// StartSpan opens a span named name. The returned function ends it; its
// arguments are key/value pairs added to the debug log line and, for string,
// int and bool values, to the span attributes.
func StartSpan(ctx context.Context, name string) (context.Context, func(attrs ...interface{})) {
	ensureInit()
	start := time.Now()
	ctx, sp := otel.Tracer(tracerName).Start(ctx, name)
	logger := common.Logger()
	logger.Debug("trace: start", "span", name)
	return ctx, func(attrs ...interface{}) {
		sp.SetAttributes(spanAttributes(attrs)...)
		sp.End()
		logger.Debug("trace: end", append([]interface{}{"span", name, "dur", time.Since(start)}, attrs...)...)
	}
}

func spanAttributes(kv []interface{}) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		switch v := kv[i+1].(type) {
		case string:
			out = append(out, attribute.String(key, v))
		case int:
			out = append(out, attribute.Int(key, v))
		case int64:
			out = append(out, attribute.Int64(key, v))
		case bool:
			out = append(out, attribute.Bool(key, v))
		}
	}
	return out
}

// RecordRequest counts a finished HTTP request by status class (2xx, 4xx...).
func RecordRequest(status int, duration time.Duration) {
	ensureInit()
	httpRequestsTotal.Add(statusClass(status), 1)
	if duration > 0 {
		httpLatencyMS.Add(duration.Milliseconds())
	}
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}

// RecordCompletion counts a proxied completion by outcome.
func RecordCompletion(outcome string, duration time.Duration) {
	ensureInit()
	key := strings.TrimSpace(strings.ToLower(outcome))
	if key == "" {
		key = "unknown"
	}
	completionsTotal.Add(key, 1)
	if duration > 0 {
		completionLatencyMS.Add(duration.Milliseconds())
	}
}

// ChatSessionOpened tracks a new websocket session; the returned function
// marks it closed.
func ChatSessionOpened() func() {
	ensureInit()
	chatSessionsTotal.Add(1)
	chatSessionsActive.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() { chatSessionsActive.Add(-1) })
	}
}

func RecordChatFrame() {
	ensureInit()
	chatFramesTotal.Add(1)
}

func RecordCaseDelete() {
	ensureInit()
	caseDeletesTotal.Add(1)
}

// Handler serves every published expvar, these counters included, as JSON.
func Handler() http.Handler {
	ensureInit()
	return expvar.Handler()
}
