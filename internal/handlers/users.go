package handlers

import (
	"net/http"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/services"
	"github.com/go-chi/chi/v5"
)

// UserHandler serves profiles.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, handler *UserHandler, guard *Guard) {
	r.Get("/", handler.List)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(guard.Authenticated).Put("/", handler.Update)
		r.With(guard.Authenticated).Delete("/", handler.Delete)
	})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Update edits the caller's own profile.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), callerID(r), id, services.ProfileUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Bio:             req.Bio,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{Message: "Profile updated successfully", User: user})
}

// Delete removes the caller's account and every post it authored.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.DeleteAccount(r.Context(), callerID(r), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "User and all posts deleted successfully"})
}

type UpdateProfileRequest struct {
	Name            *string `json:"name" validate:"omitnil,max=100"`
	Email           *string `json:"email" validate:"omitnil,email,max=255"`
	Bio             *string `json:"bio" validate:"omitnil,max=2000"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword" validate:"max=72"`
}
