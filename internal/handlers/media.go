package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/storage"
	"github.com/go-chi/chi/v5"
)

// MediaHandler streams stored post media.
type MediaHandler struct {
	store *storage.Storage
}

func NewMediaHandler(store *storage.Storage) *MediaHandler {
	return &MediaHandler{store: store}
}

// MediaRouter registers the media download route.
func MediaRouter(r chi.Router, handler *MediaHandler) {
	r.Get("/{name}", handler.Serve)
}

// Serve writes the named object. Seekable bodies go through
// http.ServeContent so range and conditional requests work.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !storage.ValidKey(name) {
		writeError(w, http.StatusNotFound, "Media not found")
		return
	}

	object, err := h.store.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Media not found")
			return
		}
		writeServiceError(w, r, err)
		return
	}
	defer object.Body.Close()

	if object.ContentType != "" {
		w.Header().Set("Content-Type", object.ContentType)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	if seeker, ok := object.Body.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, object.ModTime, seeker)
		return
	}

	if object.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(object.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, object.Body)
}
