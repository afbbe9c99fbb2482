package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/repository"
)

type ProductUsecase struct {
	products repository.ProductRepository
	validate *validator.Validate
}

func NewProductUsecase(products repository.ProductRepository) *ProductUsecase {
	return &ProductUsecase{
		products: products,
		validate: validator.New(),
	}
}

type ProductInput struct {
	Name        string  `validate:"required"`
	Description string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
	Category    string  `validate:"required"`
	Stock       int     `validate:"gte=0"`
}

func (u *ProductUsecase) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := u.checkInput(input); err != nil {
		return nil, err
	}

	product, err := u.products.Create(ctx, &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Stock:       input.Stock,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (u *ProductUsecase) GetAll(ctx context.Context) ([]domain.Product, error) {
	products, err := u.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

func (u *ProductUsecase) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return u.products.FindByID(ctx, id)
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Stock       *int
}

func (u *ProductUsecase) Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	product, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := u.checkInput(ProductInput{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Stock:       product.Stock,
	}); err != nil {
		return nil, err
	}

	return u.products.Update(ctx, product)
}

func (u *ProductUsecase) Delete(ctx context.Context, id string) error {
	return u.products.Delete(ctx, id)
}

// checkInput translates validator failures into the field-indexed
// domain.ValidationError the error normalizer renders.
func (u *ProductUsecase) checkInput(input ProductInput) error {
	err := u.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate product: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &domain.ValidationError{Message: "Product validation failed", Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
