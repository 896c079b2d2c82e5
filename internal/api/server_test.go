// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/nicodishanthj/casemate/internal/llm"
	"github.com/nicodishanthj/casemate/internal/sqlite"
)

type fakeCompleter struct {
	reply    json.RawMessage
	err      error
	lastBody json.RawMessage
	calls    int
}

func (f *fakeCompleter) Complete(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	f.calls++
	f.lastBody = append(json.RawMessage(nil), body...)
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func newTestServer(t *testing.T, ai Completer, cfg *Config) *Server {
	t.Helper()
	store, err := sqlite.OpenWithConfig(sqlite.Config{Path: filepath.Join(t.TempDir(), "casemate.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	if cfg == nil {
		cfg = &Config{StaticDir: filepath.Join(t.TempDir(), "missing")}
	}
	srv, err := NewServer(store, ai, cfg)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createID(t *testing.T, srv http.Handler, path string, body any) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPut, path, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[idResponse](t, rec).ID
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorResponse](t, rec).Detail
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAuntBethesdaFlow(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	caseID := createID(t, srv, "/api/cases", map[string]any{
		"name":              "Aunt Bethesda",
		"short_description": "Aunt Bethesda was killed on the 31st of December 2025",
	})
	cases := decode[[]caseSummary](t, doJSON(t, srv, http.MethodGet, "/api/cases", nil))
	require.Len(t, cases, 1)
	assert.Equal(t, caseSummary{ID: caseID, Name: "Aunt Bethesda", ShortDescription: "Aunt Bethesda was killed on the 31st of December 2025"}, cases[0])

	rec := doJSON(t, srv, http.MethodPatch, "/api/cases?case_id="+caseID, map[string]any{"detective": "Sebastian"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[caseDetail](t, doJSON(t, srv, http.MethodGet, "/api/cases/"+caseID, nil))
	require.NotNil(t, got.Detective)
	assert.Equal(t, "Sebastian", *got.Detective)
	assert.Equal(t, "Aunt Bethesda", got.Name)

	euan := createID(t, srv, "/api/parties", map[string]any{
		"caseid": caseID, "name": "Euan", "role": "suspect",
		"description": "Ginger", "alibi": "Was in the wine cellar tasting wine",
	})
	tongyu := createID(t, srv, "/api/parties", map[string]any{
		"caseid": caseID, "name": "Tongyu", "role": "suspect", "description": "Gardener",
	})

	parties := decode[map[string]partyView](t, doJSON(t, srv, http.MethodPost, "/api/parties", map[string]any{"caseid": caseID}))
	require.Len(t, parties, 2)
	assert.Equal(t, "Euan", parties[euan].Name)
	assert.Equal(t, "/api/parties/"+euan+"/image", parties[euan].Image)
	assert.Nil(t, parties[tongyu].Alibi)

	rec = doJSON(t, srv, http.MethodPatch, "/api/parties", map[string]any{"partyid": tongyu, "alibi": "Was mowing the grass"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	party := decode[partyDetail](t, doJSON(t, srv, http.MethodGet, "/api/parties/"+tongyu, nil))
	require.NotNil(t, party.Alibi)
	assert.Equal(t, "Was mowing the grass", *party.Alibi)
	require.NotNil(t, party.Description)
	assert.Equal(t, "Gardener", *party.Description, "omitted fields are untouched")
	assert.Equal(t, caseID, party.CaseID)

	evidenceID := createID(t, srv, "/api/evidences", map[string]any{
		"caseid": caseID, "name": "Wine glass", "suspects": []string{euan, tongyu},
	})
	evidence := decode[evidenceView](t, doJSON(t, srv, http.MethodGet, "/api/evidences/"+evidenceID, nil))
	assert.Equal(t, "unknown", evidence.Status)
	assert.Equal(t, []string{euan, tongyu}, evidence.Suspects)
	assert.Nil(t, evidence.Place)

	createID(t, srv, "/api/timelines", map[string]any{"caseid": caseID, "timestamp": 3000, "status": "confirmed", "name": "Body found"})
	createID(t, srv, "/api/timelines", map[string]any{"caseid": caseID, "timestamp": 1000, "status": "confirmed", "name": "Dinner"})
	createID(t, srv, "/api/timelines", map[string]any{"caseid": caseID, "timestamp": 2000, "status": "rumour", "name": "Scream"})
	events := decode[[]timelineView](t, doJSON(t, srv, http.MethodGet, "/api/timelines?case_id="+caseID, nil))
	require.Len(t, events, 3)
	assert.Equal(t, []string{"Dinner", "Scream", "Body found"}, []string{events[0].Name, events[1].Name, events[2].Name})
	assert.Equal(t, int64(1000), events[0].Timestamp)
	assert.Equal(t, "unknown", events[0].Place)

	theoryID := createID(t, srv, "/api/theories", map[string]any{"caseid": caseID, "name": "The cook did it"})
	theories := decode[map[string]theoryView](t, doJSON(t, srv, http.MethodPost, "/api/theories", map[string]any{"caseid": caseID}))
	assert.Equal(t, theoryView{Name: "The cook did it", Content: ""}, theories[theoryID])

	rec = doJSON(t, srv, http.MethodDelete, "/api/cases", map[string]any{"caseid": caseID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[successResponse](t, rec).Success)

	assert.Equal(t, http.StatusNotFound, doJSON(t, srv, http.MethodGet, "/api/cases/"+caseID, nil).Code)
	assert.Empty(t, decode[map[string]partyView](t, doJSON(t, srv, http.MethodGet, "/api/parties", nil)))
	assert.Empty(t, decode[[]evidenceView](t, doJSON(t, srv, http.MethodGet, "/api/evidences", nil)))
	assert.Empty(t, decode[[]timelineView](t, doJSON(t, srv, http.MethodGet, "/api/timelines", nil)))
	assert.Empty(t, decode[map[string]theoryView](t, doJSON(t, srv, http.MethodGet, "/api/theories", nil)))
}

func TestRequestErrors(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	caseID := createID(t, srv, "/api/cases", map[string]any{"name": "Case"})
	partyID := createID(t, srv, "/api/parties", map[string]any{"caseid": caseID, "name": "Jane", "role": "suspect"})
	evidenceID := createID(t, srv, "/api/evidences", map[string]any{"caseid": caseID, "name": "Knife"})
	unknown := uuid.NewString()

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		detail string
	}{
		{"case without name", http.MethodPut, "/api/cases", map[string]any{}, http.StatusBadRequest, "name is required"},
		{"empty body", http.MethodPut, "/api/parties", nil, http.StatusBadRequest, "caseid is required"},
		{"invalid json", http.MethodPut, "/api/cases", `{"name":`, http.StatusBadRequest, ""},
		{"party without role", http.MethodPut, "/api/parties", map[string]any{"caseid": caseID, "name": "Jane"}, http.StatusBadRequest, "role is required"},
		{"party for unknown case", http.MethodPut, "/api/parties", map[string]any{"caseid": unknown, "name": "Jane", "role": "suspect"}, http.StatusNotFound, "Case not found"},
		{"malformed caseid", http.MethodPut, "/api/theories", map[string]any{"caseid": "nope", "name": "x"}, http.StatusBadRequest, ""},
		{"malformed suspect", http.MethodPut, "/api/evidences", map[string]any{"caseid": caseID, "name": "x", "suspects": []string{"nope"}}, http.StatusBadRequest, ""},
		{"timeline without timestamp", http.MethodPut, "/api/timelines", map[string]any{"caseid": caseID, "name": "x", "status": "y"}, http.StatusBadRequest, "timestamp is required"},
		{"patch case without id", http.MethodPatch, "/api/cases", map[string]any{"name": "x"}, http.StatusBadRequest, "case_id is required"},
		{"patch unknown case", http.MethodPatch, "/api/cases?case_id=" + unknown, map[string]any{"name": "x"}, http.StatusNotFound, "Case not found"},
		{"patch unknown party", http.MethodPatch, "/api/parties", map[string]any{"partyid": unknown, "name": "x"}, http.StatusNotFound, "Party not found"},
		{"patch unknown evidence", http.MethodPatch, "/api/evidences", map[string]any{"id": unknown, "name": "x"}, http.StatusNotFound, "Evidence not found"},
		{"get unknown theory", http.MethodGet, "/api/theories/" + unknown, nil, http.StatusNotFound, "Theory not found"},
		{"get malformed id", http.MethodGet, "/api/timelines/not-a-uuid", nil, http.StatusBadRequest, ""},
		{"delete without id", http.MethodDelete, "/api/evidences", map[string]any{}, http.StatusBadRequest, "id is required"},
		{"list with malformed scope", http.MethodGet, "/api/parties?case_id=zzz", nil, http.StatusBadRequest, ""},
		{"list unknown case", http.MethodPost, "/api/parties", map[string]any{"caseid": unknown}, http.StatusNotFound, "Case not found"},
		{"list unknown case by query", http.MethodGet, "/api/timelines?case_id=" + unknown, nil, http.StatusNotFound, "Case not found"},
		{"patch party with blank name", http.MethodPatch, "/api/parties", map[string]any{"partyid": partyID, "name": "  "}, http.StatusBadRequest, "name is required"},
		{"patch evidence with blank status", http.MethodPatch, "/api/evidences", map[string]any{"id": evidenceID, "status": ""}, http.StatusBadRequest, "status is required"},
		{"patch timeline with blank name", http.MethodPatch, "/api/timelines", map[string]any{"id": unknown, "name": " "}, http.StatusBadRequest, "name is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			msg := detail(t, rec)
			if tc.detail != "" {
				assert.Equal(t, tc.detail, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}

	party := decode[partyDetail](t, doJSON(t, srv, http.MethodGet, "/api/parties/"+partyID, nil))
	assert.Equal(t, "Jane", party.Name, "rejected patch leaves the row alone")
}

func TestDeleteUnknownSucceeds(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	unknown := uuid.NewString()
	for _, tc := range []struct {
		path string
		body map[string]any
	}{
		{"/api/cases", map[string]any{"caseid": unknown}},
		{"/api/parties", map[string]any{"partyid": unknown}},
		{"/api/evidences", map[string]any{"id": unknown}},
		{"/api/theories", map[string]any{"id": unknown}},
		{"/api/timelines", map[string]any{"id": unknown}},
	} {
		rec := doJSON(t, srv, http.MethodDelete, tc.path, tc.body)
		assert.Equal(t, http.StatusOK, rec.Code, tc.path)
	}
	rec := doJSON(t, srv, http.MethodDelete, "/api/parties/"+unknown+"/image", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListsAreScopedByCase(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	first := createID(t, srv, "/api/cases", map[string]any{"name": "First"})
	second := createID(t, srv, "/api/cases", map[string]any{"name": "Second"})
	createID(t, srv, "/api/evidences", map[string]any{"caseid": first, "name": "Knife"})
	createID(t, srv, "/api/evidences", map[string]any{"caseid": second, "name": "Rope"})

	scoped := decode[[]evidenceView](t, doJSON(t, srv, http.MethodPost, "/api/evidences", map[string]any{"caseid": second}))
	require.Len(t, scoped, 1)
	assert.Equal(t, "Rope", scoped[0].Name)

	all := decode[[]evidenceView](t, doJSON(t, srv, http.MethodGet, "/api/evidences", nil))
	require.Len(t, all, 2)
	assert.Equal(t, "Knife", all[0].Name, "insertion order")

	rec := doJSON(t, srv, http.MethodPost, "/api/evidences", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "POST list requires caseid")
}

func TestEvidenceSuspectsPatch(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	caseID := createID(t, srv, "/api/cases", map[string]any{"name": "Case"})
	dangling := uuid.NewString()
	id := createID(t, srv, "/api/evidences", map[string]any{"caseid": caseID, "name": "Glove", "suspects": []string{dangling, dangling}})

	got := decode[evidenceView](t, doJSON(t, srv, http.MethodGet, "/api/evidences/"+id, nil))
	assert.Equal(t, []string{dangling, dangling}, got.Suspects)

	rec := doJSON(t, srv, http.MethodPatch, "/api/evidences", map[string]any{"id": id, "suspects": []string{}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = decode[evidenceView](t, doJSON(t, srv, http.MethodGet, "/api/evidences/"+id, nil))
	assert.Equal(t, []string{}, got.Suspects)
	assert.Equal(t, "Glove", got.Name)
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField("note", "no file"))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func upload(t *testing.T, srv http.Handler, partyID, field string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, field, "photo.jpg", data)
	req := httptest.NewRequest(http.MethodPost, "/api/parties/"+partyID+"/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestPartyImageRoutes(t *testing.T) {
	srv := newTestServer(t, nil, &Config{MaxUploadBytes: 1024, StaticDir: filepath.Join(t.TempDir(), "none")})
	caseID := createID(t, srv, "/api/cases", map[string]any{"name": "Case"})
	partyID := createID(t, srv, "/api/parties", map[string]any{"caseid": caseID, "name": "Hrby", "role": "suspect"})
	photo := []byte{0xff, 0xd8, 0xff, 0xe0, 'j', 'p', 'g'}

	rec := doJSON(t, srv, http.MethodGet, "/api/parties/"+partyID+"/image", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = upload(t, srv, partyID, "file", photo)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/parties/"+partyID+"/image", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, photo, rec.Body.Bytes())

	replacement := []byte("second photo")
	require.Equal(t, http.StatusOK, upload(t, srv, partyID, "file", replacement).Code)
	assert.Equal(t, replacement, doJSON(t, srv, http.MethodGet, "/api/parties/"+partyID+"/image", nil).Body.Bytes())

	rec = doJSON(t, srv, http.MethodDelete, "/api/parties/"+partyID+"/image", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, srv, http.MethodGet, "/api/parties/"+partyID+"/image", nil).Code)

	party := decode[partyDetail](t, doJSON(t, srv, http.MethodGet, "/api/parties/"+partyID, nil))
	assert.Equal(t, "Hrby", party.Name, "clearing the photo keeps the party")

	rec = upload(t, srv, uuid.NewString(), "file", photo)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = upload(t, srv, partyID, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "file is required", detail(t, rec))

	rec = upload(t, srv, partyID, "file", []byte{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, srv, partyID, "file", bytes.Repeat([]byte("x"), 4096))
	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	assert.Less(t, rec.Code, http.StatusInternalServerError)
}

func TestCompletionsRoute(t *testing.T) {
	t.Run("passes through", func(t *testing.T) {
		ai := &fakeCompleter{reply: json.RawMessage(`{"choices":[{"message":{"content":"The gardener."}}]}`)}
		srv := newTestServer(t, ai, nil)
		rec := doJSON(t, srv, http.MethodPost, "/ai/completions", `{"model":"m","messages":[]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"choices":[{"message":{"content":"The gardener."}}]}`, rec.Body.String())
		assert.JSONEq(t, `{"model":"m","messages":[]}`, string(ai.lastBody))
	})
	t.Run("not configured", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)
		rec := doJSON(t, srv, http.MethodPost, "/ai/completions", `{}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "AI service not configured", detail(t, rec))
	})
	t.Run("proxy reports not configured", func(t *testing.T) {
		srv := newTestServer(t, llm.NewProxy(llm.Config{}), nil)
		rec := doJSON(t, srv, http.MethodPost, "/ai/completions", `{}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "AI service not configured", detail(t, rec))
	})
	t.Run("upstream failure", func(t *testing.T) {
		ai := &fakeCompleter{err: &llm.UpstreamError{StatusCode: 503, Err: errors.New("unavailable")}}
		srv := newTestServer(t, ai, nil)
		rec := doJSON(t, srv, http.MethodPost, "/ai/completions", `{}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.True(t, strings.HasPrefix(detail(t, rec), "AI service error"))
	})
	t.Run("invalid json", func(t *testing.T) {
		ai := &fakeCompleter{}
		srv := newTestServer(t, ai, nil)
		rec := doJSON(t, srv, http.MethodPost, "/ai/completions", `{nope`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, ai.calls)
	})
}

func TestChatRoute(t *testing.T) {
	httpSrv := httptest.NewServer(newTestServer(t, nil, nil))
	t.Cleanup(httpSrv.Close)

	conn, err := websocket.Dial("ws"+strings.TrimPrefix(httpSrv.URL, "http")+"/api/chat", "", httpSrv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, websocket.Message.Send(conn, `{"op":"send_message","message":"hello"}`))
	_ = conn.SetDeadline(time.Now().Add(2 * time.Second))
	var got map[string]string
	require.NoError(t, websocket.JSON.Receive(conn, &got))
	assert.Equal(t, map[string]string{"op": "send_message", "message": "1 hello"}, got)
}

func TestLogsRoute(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	doJSON(t, srv, http.MethodPut, "/api/cases", map[string]any{})

	rec := doJSON(t, srv, http.MethodGet, "/api/logs?level=warn", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Entries []struct {
			Level   string `json:"level"`
			Message string `json:"message"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Entries)
	found := false
	for _, entry := range body.Entries {
		assert.Equal(t, "warn", strings.ToLower(entry.Level))
		if entry.Message == "request failed" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestStaticFrontendIsServed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>casemate</html>"), 0o644))
	srv := newTestServer(t, nil, &Config{StaticDir: dir})

	rec := doJSON(t, srv, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "casemate")

	rec = doJSON(t, srv, http.MethodGet, "/api/cases", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestConfigMerge(t *testing.T) {
	merged := DefaultConfig().Merge(Config{StaticDir: " web ", MaxUploadBytes: 0})
	assert.Equal(t, "web", merged.StaticDir)
	assert.Equal(t, int64(defaultMaxUploadBytes), merged.MaxUploadBytes)
}
