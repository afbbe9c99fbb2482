package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/usecase"
)

type userUsecaser interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input usecase.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger.With("component", "user_handler"),
	}
}

type userDetailResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUsecase.GetAll(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching users"})
		return
	}

	resp := make([]userDetailResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserDetail(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	user, err := h.userUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			_ = c.Error(err)
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "get user", "user_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching user"})
		}
		return
	}

	c.JSON(http.StatusOK, toUserDetail(user))
}

// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.userUsecase.Update(c.Request.Context(), id, usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			_ = c.Error(err)
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": errEmailExists})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update user", "user_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user"})
		}
		return
	}

	c.JSON(http.StatusOK, toUserDetail(user))
}

// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.userUsecase.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			_ = c.Error(err)
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "delete user", "user_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func toUserDetail(u *domain.User) userDetailResponse {
	return userDetailResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
