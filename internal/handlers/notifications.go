package handlers

import (
	"net/http"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/services"
	"github.com/go-chi/chi/v5"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// NotificationRouter registers notification routes on the given router.
func NotificationRouter(r chi.Router, handler *NotificationHandler, guard *Guard) {
	r.With(guard.Authenticated).Get("/", handler.List)
}

// List returns recent likes and comments on the caller's posts.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationService.ForUser(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}
