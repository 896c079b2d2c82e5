// File path: internal/api/request.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nicodishanthj/casemate/internal/casebook"
	"github.com/nicodishanthj/casemate/internal/llm"
)

// requestError is a malformed request: bad JSON, bad identifier.
type requestError struct {
	msg string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// decodeJSON reads the request body into dst. An empty body decodes as an
// empty object so that missing fields surface as validation errors.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return badRequest("invalid request body: %v", err)
	}
	return nil
}

// parseID validates a required identifier field and returns its canonical
// form.
func parseID(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &casebook.MissingFieldError{Field: field}
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return "", badRequest("invalid %s: %q is not a UUID", field, value)
	}
	return id.String(), nil
}

// parseOptionalID is parseID for filters that may be absent.
func parseOptionalID(field, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return parseID(field, value)
}

func pathID(r *http.Request) (string, error) {
	return parseID("id", chi.URLParam(r, "id"))
}

func parseIDs(field string, values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return nil, badRequest("invalid %s: %q is not a UUID", field, value)
		}
		out = append(out, id.String())
	}
	return out, nil
}

// describe names the missing entity in a not-found error.
func describe(err error, entity string) error {
	if errors.Is(err, casebook.ErrNotFound) {
		return fmt.Errorf("%s %w", entity, casebook.ErrNotFound)
	}
	return err
}

func statusFor(err error) int {
	var missing *casebook.MissingFieldError
	var malformed *requestError
	var tooLarge *http.MaxBytesError
	var upstream *llm.UpstreamError
	switch {
	case errors.As(err, &missing), errors.As(err, &malformed):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, casebook.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err)
}
