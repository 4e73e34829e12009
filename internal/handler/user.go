package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/flightplan/flightplan/internal/repository"
)

// UserCreator creates users and issues their API keys.
// Implemented by *repository.Repository.
type UserCreator interface {
	CreateUser(ctx context.Context, username, fullname string) (string, error)
}

// UserHandler handles the admin bootstrap endpoint.
type UserHandler struct {
	users  UserCreator
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(logger *slog.Logger, users UserCreator) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// createUserRequest is the inbound body for user creation.
type createUserRequest struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// Create handles POST /api/v1/admin/user/create.
// On success the generated API key is returned as plain text; it is
// shown once and cannot be recovered later.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "MISSING_USERNAME", "Username is required")
		return
	}

	apiKey, err := h.users.CreateUser(r.Context(), req.Username, req.Fullname)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			h.logger.Warn("user creation conflict",
				slog.String("username", req.Username),
			)
		} else {
			h.logger.Error("user creation failed",
				slog.String("username", req.Username),
				slog.String("error", err.Error()),
			)
		}
		writeError(w, http.StatusInternalServerError, "USER_CREATE_FAILED", "Could not create user")
		return
	}

	h.logger.Info("user created", slog.String("username", req.Username))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(apiKey))
}
