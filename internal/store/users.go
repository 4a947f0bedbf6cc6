package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"depot-rest-api/internal/errs"
	"depot-rest-api/internal/model"
)

// Users provides staff-account data access.
type Users struct {
	db *sql.DB
}

// NewUsers creates the users accessor.
func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// Get returns one user by id.
func (s *Users) Get(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, password, flag, description FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Password, &u.Flag, &u.Description)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.User{}, errs.ErrNotFound
	case err != nil:
		return model.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// GetByName returns one user by login name.
func (s *Users) GetByName(ctx context.Context, name string) (model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, password, flag, description FROM users WHERE name = ?`, name,
	).Scan(&u.ID, &u.Name, &u.Password, &u.Flag, &u.Description)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.User{}, errs.ErrNotFound
	case err != nil:
		return model.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// Insert creates a user. The password must already be hashed by the caller.
func (s *Users) Insert(ctx context.Context, u model.InsertUser) (uint64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, password, flag, description) VALUES (?, ?, ?, ?)`,
		u.Name, u.Password, u.Flag, u.Description)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", wrapConstraint(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update applies a partial update; nil fields keep their stored value. A
// non-nil Password must already be hashed.
func (s *Users) Update(ctx context.Context, u model.UpdateUser) (uint64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET
		 name = COALESCE(?, name),
		 password = COALESCE(?, password),
		 flag = COALESCE(?, flag),
		 description = COALESCE(?, description)
		 WHERE id = ?`,
		u.Name, u.Password, u.Flag, u.Description, u.ID)
	if err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return uint64(rows), nil
}

// Delete removes a user by id.
func (s *Users) Delete(ctx context.Context, id uint64) (uint64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return uint64(rows), nil
}

// Page returns one page of user DTOs.
func (s *Users) Page(ctx context.Context, q model.PageQuery) (model.PageResponse[model.UserDTO], error) {
	var zero model.PageResponse[model.UserDTO]

	var total uint64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return zero, fmt.Errorf("count users: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, flag, description FROM users ORDER BY id LIMIT ? OFFSET ?`,
		q.PageSize, q.Offset())
	if err != nil {
		return zero, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []model.UserDTO
	for rows.Next() {
		var u model.UserDTO
		if err := rows.Scan(&u.ID, &u.Name, &u.Flag, &u.Description); err != nil {
			return zero, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return zero, err
	}
	return model.NewPageResponse(users, total, q), nil
}
