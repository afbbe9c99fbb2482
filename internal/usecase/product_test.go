package usecase_test

import (
	"context"
	"testing"

	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	create   func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	findAll  func(ctx context.Context) ([]domain.Product, error)
	findByID func(ctx context.Context, id string) (*domain.Product, error)
	update   func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	delete   func(ctx context.Context, id string) error
}

func (r *fakeProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return r.create(ctx, product)
}

func (r *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.findAll(ctx)
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.findByID(ctx, id)
}

func (r *fakeProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return r.update(ctx, product)
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func validInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        "Espresso Machine",
		Description: "19-bar pump espresso machine",
		Price:       249.99,
		Category:    "Kitchen",
		Stock:       12,
	}
}

func TestCreateProduct_Valid(t *testing.T) {
	repo := &fakeProductRepo{
		create: func(_ context.Context, product *domain.Product) (*domain.Product, error) {
			created := *product
			created.ID = "prod-1"
			return &created, nil
		},
	}
	uc := usecase.NewProductUsecase(repo)

	product, err := uc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "prod-1", product.ID)
}

func TestCreateProduct_InvalidInput_FieldIndexedFailure(t *testing.T) {
	uc := usecase.NewProductUsecase(&fakeProductRepo{})

	input := validInput()
	input.Name = ""
	input.Price = -1

	_, err := uc.Create(context.Background(), input)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Product validation failed", verr.Message)
	assert.Contains(t, verr.Fields, "Name")
	assert.Contains(t, verr.Fields, "Price")
	assert.NotContains(t, verr.Fields, "Stock")
}

func TestUpdateProduct_PartialFieldsApplied(t *testing.T) {
	current := &domain.Product{
		ID: "prod-1", Name: "Old", Description: "Desc",
		Price: 10, Category: "Misc", Stock: 5,
	}
	repo := &fakeProductRepo{
		findByID: func(_ context.Context, _ string) (*domain.Product, error) {
			copied := *current
			return &copied, nil
		},
		update: func(_ context.Context, product *domain.Product) (*domain.Product, error) {
			return product, nil
		},
	}
	uc := usecase.NewProductUsecase(repo)

	newStock := 42
	updated, err := uc.Update(context.Background(), "prod-1", usecase.UpdateProductInput{
		Stock: &newStock,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Stock)
	assert.Equal(t, "Old", updated.Name)
}

func TestUpdateProduct_InvalidResult_Rejected(t *testing.T) {
	repo := &fakeProductRepo{
		findByID: func(_ context.Context, _ string) (*domain.Product, error) {
			return &domain.Product{
				ID: "prod-1", Name: "Old", Description: "Desc",
				Price: 10, Category: "Misc", Stock: 5,
			}, nil
		},
	}
	uc := usecase.NewProductUsecase(repo)

	badPrice := -5.0
	_, err := uc.Update(context.Background(), "prod-1", usecase.UpdateProductInput{
		Price: &badPrice,
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Price")
}

func TestUpdateProduct_NotFoundPassesThrough(t *testing.T) {
	repo := &fakeProductRepo{
		findByID: func(_ context.Context, _ string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	uc := usecase.NewProductUsecase(repo)

	_, err := uc.Update(context.Background(), "prod-1", usecase.UpdateProductInput{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
