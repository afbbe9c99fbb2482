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

type productUsecaser interface {
	Create(ctx context.Context, input usecase.ProductInput) (*domain.Product, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, input usecase.UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	productUsecase productUsecaser
	logger         *slog.Logger
}

func NewProductHandler(productUsecase productUsecaser, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		logger:         logger.With("component", "product_handler"),
	}
}

type createProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	product, err := h.productUsecase.Create(c.Request.Context(), usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			_ = c.Error(err)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "create product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating product"})
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}

// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productUsecase.GetAll(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching products"})
		return
	}

	resp := make([]productResponse, 0, len(products))
	for i := range products {
		resp = append(resp, toProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	product, err := h.productUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			_ = c.Error(err)
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "get product", "product_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching product"})
		}
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	product, err := h.productUsecase.Update(c.Request.Context(), id, usecase.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrInvalidID), errors.As(err, &verr):
			_ = c.Error(err)
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update product", "product_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating product"})
		}
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.productUsecase.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			_ = c.Error(err)
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errProductNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "delete product", "product_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting product"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
