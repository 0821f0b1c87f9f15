package handlers

import (
	"net/http"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/auth"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/services"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/types"
	"github.com/go-chi/chi/v5"
)

// AuthHandler provides member registration and token endpoints.
type AuthHandler struct {
	userService *services.UserService
	tokens      *auth.TokenManager
	tokenTTL    time.Duration
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, tokens *auth.TokenManager, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		tokenTTL:    tokenTTL,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, handler *AuthHandler, guard *Guard) {
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(guard.Authenticated).Get("/me", handler.Me)
}

// Register creates a member account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req.registration(), types.RoleUser)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, UserEnvelope{Message: "Registration successful", User: user})
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
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

// Me returns the current authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetByID(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
	Bio      string `json:"bio" validate:"max=2000"`
}

func (req RegisterRequest) registration() services.Registration {
	return services.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// UserEnvelope pairs a user with a confirmation message.
type UserEnvelope struct {
	Message string     `json:"message"`
	User    types.User `json:"user"`
}
