package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flightplan/flightplan/internal/repository"
)

// fakeUserCreator returns a canned API key or error.
type fakeUserCreator struct {
	apiKey   string
	err      error
	username string
	fullname string
}

func (f *fakeUserCreator) CreateUser(ctx context.Context, username, fullname string) (string, error) {
	f.username = username
	f.fullname = fullname
	if f.err != nil {
		return "", f.err
	}
	return f.apiKey, nil
}

func newUserTestHandler(users *fakeUserCreator) *UserHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUserHandler(logger, users)
}

func TestUserHandler_Create(t *testing.T) {
	users := &fakeUserCreator{apiKey: "c20a768f3f464844a2cf8f4379247ff1"}
	h := newUserTestHandler(users)

	body := []byte(`{"username":"alice","fullname":"Alice A"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/user/create", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "c20a768f3f464844a2cf8f4379247ff1" {
		t.Errorf("response body should be the API key, got %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("expected text/plain response, got %q", ct)
	}
	if users.username != "alice" || users.fullname != "Alice A" {
		t.Errorf("unexpected arguments: %q %q", users.username, users.fullname)
	}
}

func TestUserHandler_Create_InvalidJSON(t *testing.T) {
	h := newUserTestHandler(&fakeUserCreator{apiKey: "unused"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/user/create", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUserHandler_Create_MissingUsername(t *testing.T) {
	h := newUserTestHandler(&fakeUserCreator{apiKey: "unused"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/user/create", bytes.NewReader([]byte(`{"fullname":"No Name"}`)))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestUserHandler_Create_Conflict(t *testing.T) {
	h := newUserTestHandler(&fakeUserCreator{err: repository.ErrUsernameTaken})

	body := []byte(`{"username":"alice","fullname":"Alice A"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/user/create", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestUserHandler_Create_StoreError(t *testing.T) {
	h := newUserTestHandler(&fakeUserCreator{err: errors.New("connection refused")})

	body := []byte(`{"username":"alice","fullname":"Alice A"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/user/create", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
