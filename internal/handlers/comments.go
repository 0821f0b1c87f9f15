package handlers

import (
	"net/http"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/services"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRouter registers comment routes on the given router.
func CommentRouter(r chi.Router, handler *CommentHandler, guard *Guard) {
	r.Get("/post/{postID}", handler.ListByPost)
	r.With(guard.Authenticated).Post("/post/{postID}", handler.Create)
}

func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comments, err := h.commentService.ListByPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req CreateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.commentService.Create(r.Context(), callerID(r), postID, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, CommentEnvelope{Message: "Comment added", Comment: comment})
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type CommentEnvelope struct {
	Message string        `json:"message"`
	Comment types.Comment `json:"comment"`
}
