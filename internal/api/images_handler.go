// File path: internal/api/images_handler.go
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/nicodishanthj/casemate/internal/casebook"
	"github.com/nicodishanthj/casemate/internal/common"
)

const imageField = "file"

func (s *Server) handleGetPartyImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	data, err := s.store.PartyImage(r.Context(), id)
	if err != nil {
		respondError(w, describe(err, "Image"))
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleSetPartyImage stores the multipart "file" part as the party photo.
// The bytes are stored as uploaded; the declared content type is ignored.
func (s *Server) handleSetPartyImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile(imageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondError(w, err)
		case errors.Is(err, http.ErrMissingFile):
			respondError(w, &casebook.MissingFieldError{Field: imageField})
		default:
			respondError(w, badRequest("invalid upload: %v", err))
		}
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, fmt.Errorf("read upload: %w", err))
		return
	}
	if err := s.store.SetPartyImage(r.Context(), id, data); err != nil {
		respondError(w, describe(err, "Party"))
		return
	}
	common.Logger().Info("api: party image stored", "party", id, "filename", header.Filename, "bytes", len(data))
	writeSuccess(w)
}

func (s *Server) handleClearPartyImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.store.ClearPartyImage(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeSuccess(w)
}
