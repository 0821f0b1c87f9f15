package handlers

import (
	"net/http"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/auth"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/services"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"github.com/go-chi/chi/v5"
)

// AdminHandler provides administrator registration, login and user removal.
// It is mounted once per admin prefix, each with its own token lifetime.
type AdminHandler struct {
	userService *services.UserService
	tokens      *auth.TokenManager
	tokenTTL    time.Duration
}

func NewAdminHandler(userService *services.UserService, tokens *auth.TokenManager, tokenTTL time.Duration) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		tokens:      tokens,
		tokenTTL:    tokenTTL,
	}
}

// AdminRouter registers admin routes on the given router.
func AdminRouter(r chi.Router, handler *AdminHandler, guard *Guard) {
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(guard.RequireRole(types.RoleAdmin)).Delete("/users/{userID}", handler.DeleteUser)
}

// Register creates an administrator account.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req.registration(), types.RoleAdmin)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, UserEnvelope{Message: "Admin registered successfully", User: user})
}

// Login issues an admin token. Members with valid credentials are refused.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.AuthenticateAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user, h.tokenTTL)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// DeleteUser removes a user row without touching the user's posts.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.AdminDelete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "User deleted by admin"})
}
