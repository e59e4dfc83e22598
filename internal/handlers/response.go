package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AnshRaj112/userorders-backend/internal/services"
)

// Response is the envelope every API endpoint returns.
type Response struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    any        `json:"data"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, message, description string) {
	writeJSON(w, status, Response{
		Success: false,
		Message: message,
		Error: &ErrorBody{
			Code:        status,
			Description: description,
		},
	})
}

// writeServiceError maps service error kinds to status codes. message is
// the operation-specific text used for 500s.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error, message string) {
	var verr *services.ValidationError
	var perr *services.PersistenceError
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found", "User not found!")
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "Invalid request body", verr.Error())
	case errors.As(err, &perr):
		logger.Error(message, "op", perr.Op, "error", perr.Err)
		writeError(w, http.StatusInternalServerError, message, perr.Err.Error())
	default:
		logger.Error(message, "error", err)
		writeError(w, http.StatusInternalServerError, message, err.Error())
	}
}
