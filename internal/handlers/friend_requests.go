package handlers

import (
	"fmt"
	"net/http"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/services"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"github.com/go-chi/chi/v5"
)

type FriendRequestHandler struct {
	requestService *services.FriendRequestService
}

func NewFriendRequestHandler(requestService *services.FriendRequestService) *FriendRequestHandler {
	return &FriendRequestHandler{requestService: requestService}
}

// FriendRequestRouter registers friend request routes. Every route requires
// authentication.
func FriendRequestRouter(r chi.Router, handler *FriendRequestHandler, guard *Guard) {
	r.Use(guard.Authenticated)
	r.Post("/send", handler.Send)
	r.Get("/received", handler.Received)
	r.Post("/respond", handler.Respond)
}

func (h *FriendRequestHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendFriendRequestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.requestService.Send(r.Context(), callerID(r), req.ReceiverID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, FriendRequestEnvelope{Message: "Friend request sent", Request: request})
}

func (h *FriendRequestHandler) Received(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.Received(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *FriendRequestHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req RespondFriendRequestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.requestService.Respond(r.Context(), callerID(r), req.RequestID, req.Action)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FriendRequestEnvelope{
		Message: fmt.Sprintf("Friend request %s", request.Status),
		Request: request,
	})
}

type SendFriendRequestRequest struct {
	ReceiverID int `json:"receiverId"`
}

type RespondFriendRequestRequest struct {
	RequestID int    `json:"requestId"`
	Action    string `json:"action"`
}

type FriendRequestEnvelope struct {
	Message string              `json:"message"`
	Request types.FriendRequest `json:"request"`
}
