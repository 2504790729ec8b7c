package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogService manages the product and category master data.
type CatalogService interface {
	CreateProduct(ctx context.Context, p Product) (*Product, error)
	GetProduct(ctx context.Context, productID int) (*Product, error)
	GetProducts(ctx context.Context) ([]Product, error)
	GetProductsByCategory(ctx context.Context, categoryID int) ([]Product, error)
	GetFeaturedProducts(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, productID int) error

	CreateCategory(ctx context.Context, c Category) (*Category, error)
	GetCategory(ctx context.Context, categoryID int) (*Category, error)
	GetCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, c Category) error
	// DeleteCategory refuses to delete a category any product still references.
	DeleteCategory(ctx context.Context, categoryID int) error
}

type catalogService struct {
	pool *pgxpool.Pool
}

// NewCatalogService constructs a CatalogService backed by PostgreSQL.
func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

// ── Products ─────────────────────────────────────────────────────────────────

func validateProduct(p Product) error {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("product price cannot be negative, got %s", p.Price)
	}
	if p.Inventory < 0 {
		return fmt.Errorf("product inventory cannot be negative, got %d", p.Inventory)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required product fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	var created Product
	err := s.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, inventory, category_id, image_url, featured, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, description, price, inventory, category_id, image_url, featured, created_at, created_by, updated_at
	`, p.Name, p.Description, p.Price, p.Inventory, p.CategoryID, p.ImageURL, p.Featured, p.CreatedBy).Scan(
		&created.ID, &created.Name, &created.Description, &created.Price, &created.Inventory,
		&created.CategoryID, &created.ImageURL, &created.Featured, &created.CreatedAt, &created.CreatedBy, &created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

const productColumns = "id, name, description, price, inventory, category_id, image_url, featured, created_at, created_by, updated_at"

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Inventory,
		&p.CategoryID, &p.ImageURL, &p.Featured, &p.CreatedAt, &p.CreatedBy, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *catalogService) GetProduct(ctx context.Context, productID int) (*Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d not found", productID)
		}
		return nil, fmt.Errorf("failed to fetch product %d: %w", productID, err)
	}
	return p, nil
}

func (s *catalogService) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Inventory,
			&p.CategoryID, &p.ImageURL, &p.Featured, &p.CreatedAt, &p.CreatedBy, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *catalogService) GetProducts(ctx context.Context) ([]Product, error) {
	return s.queryProducts(ctx, "SELECT "+productColumns+" FROM products ORDER BY name")
}

func (s *catalogService) GetProductsByCategory(ctx context.Context, categoryID int) ([]Product, error) {
	return s.queryProducts(ctx,
		"SELECT "+productColumns+" FROM products WHERE category_id = $1 ORDER BY name", categoryID)
}

func (s *catalogService) GetFeaturedProducts(ctx context.Context) ([]Product, error) {
	return s.queryProducts(ctx,
		"SELECT "+productColumns+" FROM products WHERE featured = true ORDER BY name")
}

func (s *catalogService) UpdateProduct(ctx context.Context, p Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, inventory = $4, category_id = $5,
		    image_url = $6, featured = $7, updated_at = NOW()
		WHERE id = $8
	`, p.Name, p.Description, p.Price, p.Inventory, p.CategoryID, p.ImageURL, p.Featured, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d not found", p.ID)
	}
	return nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d not found", productID)
	}
	return nil
}

// ── Categories ───────────────────────────────────────────────────────────────

func (s *catalogService) CreateCategory(ctx context.Context, c Category) (*Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("missing required category field: name")
	}

	var created Category
	err := s.pool.QueryRow(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at
	`, c.Name, c.Description).Scan(&created.ID, &created.Name, &created.Description, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &created, nil
}

func (s *catalogService) GetCategory(ctx context.Context, categoryID int) (*Category, error) {
	var c Category
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, description, created_at FROM categories WHERE id = $1", categoryID,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("category %d not found", categoryID)
		}
		return nil, fmt.Errorf("failed to fetch category %d: %w", categoryID, err)
	}
	return &c, nil
}

func (s *catalogService) GetCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, description, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *catalogService) UpdateCategory(ctx context.Context, c Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("missing required category field: name")
	}

	tag, err := s.pool.Exec(ctx,
		"UPDATE categories SET name = $1, description = $2 WHERE id = $3",
		c.Name, c.Description, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %d not found", c.ID)
	}
	return nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, categoryID int) error {
	var inUse int
	if err := s.pool.QueryRow(ctx,
		"SELECT count(*) FROM products WHERE category_id = $1", categoryID,
	).Scan(&inUse); err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("category %d is referenced by %d product(s) and cannot be deleted", categoryID, inUse)
	}

	tag, err := s.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %d not found", categoryID)
	}
	return nil
}
