package handler_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/transport/http/handler"
	"github.com/storefront-labs/storefront/internal/transport/http/middleware"
	"github.com/storefront-labs/storefront/internal/usecase"
)

type fakeUserUsecase struct {
	getAll  func(ctx context.Context) ([]domain.User, error)
	getByID func(ctx context.Context, id string) (*domain.User, error)
	update  func(ctx context.Context, id string, input usecase.UpdateUserInput) (*domain.User, error)
	delete  func(ctx context.Context, id string) error
}

func (f *fakeUserUsecase) GetAll(ctx context.Context) ([]domain.User, error) {
	return f.getAll(ctx)
}

func (f *fakeUserUsecase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return f.getByID(ctx, id)
}

func (f *fakeUserUsecase) Update(ctx context.Context, id string, input usecase.UpdateUserInput) (*domain.User, error) {
	return f.update(ctx, id, input)
}

func (f *fakeUserUsecase) Delete(ctx context.Context, id string) error {
	return f.delete(ctx, id)
}

// newUserEngine wires the handler behind the error normalizer, the same
// chain the router builds, so invalid-id failures render the envelope.
func newUserEngine(uc *fakeUserUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewUserHandler(uc, logger)

	r := gin.New()
	r.Use(middleware.Errors(logger))
	r.GET("/users", h.List)
	r.GET("/users/:id", h.GetByID)
	r.PUT("/users/:id", h.Update)
	r.DELETE("/users/:id", h.Delete)
	return r
}

var testUser = &domain.User{
	ID:    "7a9e0b6e-3c1d-4f8a-b2e6-1d9c8b7a6f5e",
	Name:  "Test User",
	Email: "test@example.com",
	Role:  domain.RoleUser,
}

func TestListUsers_Success_OmitsPasswordHash(t *testing.T) {
	uc := &fakeUserUsecase{
		getAll: func(_ context.Context) ([]domain.User, error) {
			u := *testUser
			u.PasswordHash = "$2a$10$secret"
			return []domain.User{u}, nil
		},
	}

	w := httptest.NewRecorder()
	newUserEngine(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret") || strings.Contains(w.Body.String(), "password") {
		t.Errorf("password hash leaked: %s", w.Body.String())
	}
}

func TestListUsers_Error_Returns500(t *testing.T) {
	uc := &fakeUserUsecase{
		getAll: func(_ context.Context) ([]domain.User, error) {
			return nil, errors.New("db down")
		},
	}

	w := httptest.NewRecorder()
	newUserEngine(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "Error fetching users" {
		t.Errorf("message = %v", got)
	}
}

func TestGetUser_NotFound_Returns404(t *testing.T) {
	uc := &fakeUserUsecase{
		getByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	w := httptest.NewRecorder()
	newUserEngine(uc).ServeHTTP(w,
		httptest.NewRequest(http.MethodGet, "/users/"+testUser.ID, nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "User not found" {
		t.Errorf("message = %v", got)
	}
}

func TestGetUser_InvalidID_NormalizedTo400(t *testing.T) {
	uc := &fakeUserUsecase{
		getByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrInvalidID
		},
	}

	w := httptest.NewRecorder()
	newUserEngine(uc).ServeHTTP(w,
		httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "Invalid ID format" {
		t.Errorf("message = %v", got)
	}
}

func TestGetUser_Success_Returns200(t *testing.T) {
	uc := &fakeUserUsecase{
		getByID: func(_ context.Context, id string) (*domain.User, error) {
			if id != testUser.ID {
				t.Errorf("id = %q, want %q", id, testUser.ID)
			}
			return testUser, nil
		},
	}

	w := httptest.NewRecorder()
	newUserEngine(uc).ServeHTTP(w,
		httptest.NewRequest(http.MethodGet, "/users/"+testUser.ID, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["email"] != testUser.Email {
		t.Errorf("email = %v", body["email"])
	}
}

func TestUpdateUser_EmailTakenByOther_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{
		update: func(_ context.Context, _ string, _ usecase.UpdateUserInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/users/"+testUser.ID,
		strings.NewReader(`{"email":"taken@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	newUserEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "Email already exists" {
		t.Errorf("message = %v", got)
	}
}

func TestUpdateUser_Success_Returns200(t *testing.T) {
	uc := &fakeUserUsecase{
		update: func(_ context.Context, _ string, input usecase.UpdateUserInput) (*domain.User, error) {
			if input.Email == nil || *input.Email != testUser.Email {
				t.Errorf("email not forwarded: %+v", input)
			}
			return testUser, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/users/"+testUser.ID,
		strings.NewReader(`{"email":"test@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	newUserEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestDeleteUser_NotFound_Returns404(t *testing.T) {
	uc := &fakeUserUsecase{
		delete: func(_ context.Context, _ string) error {
			return domain.ErrUserNotFound
		},
	}

	w := httptest.NewRecorder()
	newUserEngine(uc).ServeHTTP(w,
		httptest.NewRequest(http.MethodDelete, "/users/"+testUser.ID, nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteUser_Success_Returns200(t *testing.T) {
	uc := &fakeUserUsecase{
		delete: func(_ context.Context, _ string) error { return nil },
	}

	w := httptest.NewRecorder()
	newUserEngine(uc).ServeHTTP(w,
		httptest.NewRequest(http.MethodDelete, "/users/"+testUser.ID, nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "User deleted successfully" {
		t.Errorf("message = %v", got)
	}
}
