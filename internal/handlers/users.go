package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/userorders-backend/internal/models"
	"github.com/AnshRaj112/userorders-backend/internal/services"
)

// maxBodyBytes bounds request bodies read by the user endpoints.
const maxBodyBytes = 1 << 20

type UserHandler struct {
	svc     *services.UserService
	logger  *slog.Logger
	timeout time.Duration
}

func NewUserHandler(logger *slog.Logger, svc *services.UserService, timeout time.Duration) *UserHandler {
	return &UserHandler{svc: svc, logger: logger, timeout: timeout}
}

func (h *UserHandler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

// decode reads a JSON body into dst. Unknown keys are ignored.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

// CreateUser handles POST /api/users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserInput
	if !decode(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	user, err := h.svc.CreateUser(ctx, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error creating user")
		return
	}
	h.logger.Info("user created", "userId", user.UserID)
	writeSuccess(w, http.StatusCreated, "User created successfully!", user)
}

// ListUsers handles GET /api/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	users, err := h.svc.ListUsers(ctx)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching users")
		return
	}
	writeSuccess(w, http.StatusOK, "Users fetched successfully!", users)
}

// GetUser handles GET /api/users/{userId}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	user, err := h.svc.GetUser(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching user")
		return
	}
	writeSuccess(w, http.StatusOK, "User fetched successfully!", user)
}

// UpdateUser handles PUT /api/users/{userId}. Only keys present in the
// body are changed.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if !decode(w, r, &patch) {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	user, err := h.svc.UpdateUser(ctx, chi.URLParam(r, "userId"), patch)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error updating user")
		return
	}
	writeSuccess(w, http.StatusOK, "User updated successfully!", user)
}

// DeleteUser handles DELETE /api/users/{userId}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	if err := h.svc.DeleteUser(ctx, userID); err != nil {
		writeServiceError(w, h.logger, err, "Error deleting user")
		return
	}
	h.logger.Info("user deleted", "userId", userID)
	writeSuccess(w, http.StatusOK, "User deleted successfully!", nil)
}
