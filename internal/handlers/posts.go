package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/services"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"github.com/go-chi/chi/v5"
)

const (
	maxMultipartMemory = 8 << 20
	multipartOverhead  = 1 << 20
	formFieldContent   = "content"
	formFieldMedia     = "media"
)

// PostHandler provides HTTP handlers for posts and likes.
type PostHandler struct {
	postService   *services.PostService
	maxMediaBytes int64
}

// NewPostHandler constructs a handler accepting uploads up to maxMediaBytes.
func NewPostHandler(postService *services.PostService, maxMediaBytes int64) *PostHandler {
	return &PostHandler{
		postService:   postService,
		maxMediaBytes: maxMediaBytes,
	}
}

// PostRouter registers post routes on the given router.
func PostRouter(r chi.Router, handler *PostHandler, guard *Guard) {
	r.Get("/", handler.List)
	r.With(guard.Authenticated).Post("/", handler.Create)
	r.Get("/user/{userID}", handler.ListByUser)
	r.Get("/new-posts", handler.ListSince)
	r.Get("/new", handler.CountSince)
	r.Route("/{postID}", func(r chi.Router) {
		r.Use(guard.Authenticated)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
		r.Post("/like", handler.Like)
		r.Post("/unlike", handler.Unlike)
	})
}

// Create publishes a post from a multipart form ("content", "media") or a
// JSON body with "content".
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	content, upload, err := h.parsePostForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.postService.Create(r.Context(), callerID(r), content, upload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, PostEnvelope{Message: "Post created", Post: post})
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, err := h.postService.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// ListSince returns posts created strictly after the "after" query value.
func (h *PostHandler) ListSince(w http.ResponseWriter, r *http.Request) {
	after, err := parseAfter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, err := h.postService.ListSince(r.Context(), after)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// CountSince counts posts created strictly after the "after" query value.
func (h *PostHandler) CountSince(w http.ResponseWriter, r *http.Request) {
	after, err := parseAfter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.postService.CountSince(r.Context(), after)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Count: count})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.postService.UpdateContent(r.Context(), callerID(r), postID, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PostEnvelope{Message: "Post updated successfully", Post: post})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.postService.Delete(r.Context(), callerID(r), postID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.postService.Like(r.Context(), callerID(r), postID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Post liked"})
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.postService.Unlike(r.Context(), callerID(r), postID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Post unliked"})
}

type UpdatePostRequest struct {
	Content string `json:"content"`
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

// PostEnvelope pairs a post with a confirmation message.
type PostEnvelope struct {
	Message string     `json:"message"`
	Post    types.Post `json:"post"`
}

type CountResponse struct {
	Count int `json:"count"`
}

func (h *PostHandler) parsePostForm(w http.ResponseWriter, r *http.Request) (string, *services.Upload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req CreatePostRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return "", nil, err
		}
		return req.Content, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxMediaBytes+multipartOverhead)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, services.MediaTooLarge(h.maxMediaBytes)
		}
		return "", nil, errors.New("invalid multipart form")
	}

	upload, err := h.parseMediaFile(r.MultipartForm)
	if err != nil {
		return "", nil, err
	}
	return r.FormValue(formFieldContent), upload, nil
}

func (h *PostHandler) parseMediaFile(form *multipart.Form) (*services.Upload, error) {
	if form == nil {
		return nil, nil
	}

	files := form.File[formFieldMedia]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > 1 {
		return nil, errors.New("only one media file is allowed")
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}

	data, err := readFileLimited(file, h.maxMediaBytes)
	_ = file.Close()
	if err != nil {
		return nil, err
	}

	return &services.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// readFileLimited reads at most limit+1 bytes so the media service can
// reject oversized files with its own message.
func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	return data, nil
}

// minMillisDigits rejects short integers such as a bare year.
const minMillisDigits = 12

var afterLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseAfter reads the "after" query parameter. It accepts RFC 3339,
// zone-less timestamps (taken as UTC) and Unix milliseconds.
func parseAfter(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("after"))
	if raw == "" {
		return time.Time{}, errors.New(`missing "after" query parameter`)
	}

	for _, layout := range afterLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	if len(raw) >= minMillisDigits {
		if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return time.UnixMilli(millis).UTC(), nil
		}
	}
	return time.Time{}, errors.New(`invalid "after" query parameter`)
}
