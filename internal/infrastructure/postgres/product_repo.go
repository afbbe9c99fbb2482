package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/storefront-labs/storefront/internal/domain"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (id, name, description, price, category, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, price, category, stock, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), product.Name, product.Description,
		product.Price, product.Category, product.Stock)

	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price, category, stock, created_at, updated_at
		FROM products ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}

	query := `
		SELECT id, name, description, price, category, stock, created_at, updated_at
		FROM products WHERE id = $1`

	return scanProduct(r.pool.QueryRow(ctx, query, id))
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if _, err := uuid.Parse(product.ID); err != nil {
		return nil, domain.ErrInvalidID
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, stock = $6, updated_at = now()
		WHERE id = $1
		RETURNING id, name, description, price, category, stock, created_at, updated_at`

	return scanProduct(r.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description,
		product.Price, product.Category, product.Stock))
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}
