package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"depot-rest-api/internal/errs"
	"depot-rest-api/internal/model"
)

// Repositories provides warehouse data access. The table is named
// "repository" after the business term for a warehouse.
type Repositories struct {
	db *sql.DB
}

// NewRepositories creates the warehouse accessor.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{db: db}
}

// Get returns one warehouse by id.
func (s *Repositories) Get(ctx context.Context, id uint64) (model.Repository, error) {
	var r model.Repository
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM repository WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.Description)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.Repository{}, errs.ErrNotFound
	case err != nil:
		return model.Repository{}, fmt.Errorf("query repository: %w", err)
	}
	return r, nil
}

// Insert creates a warehouse.
func (s *Repositories) Insert(ctx context.Context, r model.InsertRepository) (uint64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO repository (name, description) VALUES (?, ?)`,
		r.Name, r.Description)
	if err != nil {
		return 0, fmt.Errorf("insert repository: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update applies a partial update; nil fields keep their stored value.
func (s *Repositories) Update(ctx context.Context, r model.UpdateRepository) (uint64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE repository SET
		 name = COALESCE(?, name),
		 description = COALESCE(?, description)
		 WHERE id = ?`,
		r.Name, r.Description, r.ID)
	if err != nil {
		return 0, fmt.Errorf("update repository: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return uint64(rows), nil
}

// Delete removes a warehouse by id.
func (s *Repositories) Delete(ctx context.Context, id uint64) (uint64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM repository WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete repository: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return uint64(rows), nil
}

// All returns every warehouse.
func (s *Repositories) All(ctx context.Context) ([]model.Repository, error) {
	return s.queryRepositories(ctx, `SELECT id, name, description FROM repository`)
}

// ByNameLike returns warehouses whose name contains the given fragment.
func (s *Repositories) ByNameLike(ctx context.Context, name string) ([]model.Repository, error) {
	return s.queryRepositories(ctx,
		`SELECT id, name, description FROM repository WHERE name LIKE ?`, "%"+name+"%")
}

func (s *Repositories) queryRepositories(ctx context.Context, query string, args ...any) ([]model.Repository, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query repositories: %w", err)
	}
	defer rows.Close()

	var repos []model.Repository
	for rows.Next() {
		var r model.Repository
		if err := rows.Scan(&r.ID, &r.Name, &r.Description); err != nil {
			return nil, fmt.Errorf("scan repository: %w", err)
		}
		repos = append(repos, r)
	}
	return repos, rows.Err()
}
