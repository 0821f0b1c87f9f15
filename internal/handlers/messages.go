package handlers

import (
	"net/http"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/services"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"github.com/go-chi/chi/v5"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// MessageRouter registers direct-message routes. Every route requires
// authentication.
func MessageRouter(r chi.Router, handler *MessageHandler, guard *Guard) {
	r.Use(guard.Authenticated)
	r.Post("/", handler.Send)
	r.Get("/{userID}", handler.Conversation)
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.messageService.Send(r.Context(), callerID(r), req.ReceiverID, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "Message sent successfully", Data: message})
}

// Conversation returns the caller's exchange with another user.
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	otherID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	messages, err := h.messageService.Conversation(r.Context(), callerID(r), otherID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

type SendMessageRequest struct {
	ReceiverID int    `json:"receiverId"`
	Content    string `json:"content"`
}

type MessageEnvelope struct {
	Message string        `json:"message"`
	Data    types.Message `json:"data"`
}
