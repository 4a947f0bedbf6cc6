package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"depot-rest-api/internal/errs"
	"depot-rest-api/internal/model"
)

// Products provides catalog data access.
type Products struct {
	db *sql.DB
}

// NewProducts creates the products accessor.
func NewProducts(db *sql.DB) *Products {
	return &Products{db: db}
}

// Get returns one product by id.
func (s *Products) Get(ctx context.Context, id uint64) (model.Product, error) {
	var p model.Product
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, size, price, max_amount, min_amount FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Size, &p.Price, &p.MaxAmount, &p.MinAmount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.Product{}, errs.ErrNotFound
	case err != nil:
		return model.Product{}, fmt.Errorf("query product: %w", err)
	}
	return p, nil
}

// Insert creates a product.
func (s *Products) Insert(ctx context.Context, p model.InsertProduct) (uint64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, size, price, max_amount, min_amount) VALUES (?, ?, ?, ?, ?)`,
		p.Name, p.Size, p.Price, p.MaxAmount, p.MinAmount)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update applies a partial update; nil fields keep their stored value.
func (s *Products) Update(ctx context.Context, p model.UpdateProduct) (uint64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE products SET
		 name = COALESCE(?, name),
		 size = COALESCE(?, size),
		 price = COALESCE(?, price),
		 max_amount = COALESCE(?, max_amount),
		 min_amount = COALESCE(?, min_amount)
		 WHERE id = ?`,
		p.Name, p.Size, p.Price, p.MaxAmount, p.MinAmount, p.ID)
	if err != nil {
		return 0, fmt.Errorf("update product: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return uint64(rows), nil
}

// All returns every product.
func (s *Products) All(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, size, price, max_amount, min_amount FROM products`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Page returns one page of products.
func (s *Products) Page(ctx context.Context, q model.PageQuery) (model.PageResponse[model.Product], error) {
	var zero model.PageResponse[model.Product]

	var total uint64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return zero, fmt.Errorf("count products: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, size, price, max_amount, min_amount FROM products
		 ORDER BY id LIMIT ? OFFSET ?`,
		q.PageSize, q.Offset())
	if err != nil {
		return zero, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return zero, err
	}
	return model.NewPageResponse(products, total, q), nil
}

func scanProducts(rows *sql.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Size, &p.Price, &p.MaxAmount, &p.MinAmount); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
