package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"depot-rest-api/internal/errs"
	"depot-rest-api/internal/model"
)

// Clients provides client-account data access.
type Clients struct {
	db *sql.DB
}

// NewClients creates the clients accessor.
func NewClients(db *sql.DB) *Clients {
	return &Clients{db: db}
}

const clientColumns = `id, name, password, ctype, contactor, contactor_tel, email, description`

func scanClient(row *sql.Row) (model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ID, &c.Name, &c.Password, &c.Ctype,
		&c.Contactor, &c.ContactorTel, &c.Email, &c.Description)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.Client{}, errs.ErrNotFound
	case err != nil:
		return model.Client{}, fmt.Errorf("query client: %w", err)
	}
	return c, nil
}

// Get returns one client by id.
func (s *Clients) Get(ctx context.Context, id uint64) (model.Client, error) {
	return scanClient(s.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
}

// GetByName returns one client by login name.
func (s *Clients) GetByName(ctx context.Context, name string) (model.Client, error) {
	return scanClient(s.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE name = ?`, name))
}

// Insert creates a client. The password must already be hashed by the caller.
func (s *Clients) Insert(ctx context.Context, c model.InsertClient) (uint64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (name, password, ctype, contactor, contactor_tel, email, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Password, c.Ctype, c.Contactor, c.ContactorTel, c.Email, c.Description)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", wrapConstraint(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update applies a partial update; nil fields keep their stored value.
func (s *Clients) Update(ctx context.Context, c model.UpdateClient) (uint64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE clients SET
		 name = COALESCE(?, name),
		 ctype = COALESCE(?, ctype),
		 contactor = COALESCE(?, contactor),
		 contactor_tel = COALESCE(?, contactor_tel),
		 email = COALESCE(?, email),
		 description = COALESCE(?, description)
		 WHERE id = ?`,
		c.Name, c.Ctype, c.Contactor, c.ContactorTel, c.Email, c.Description, c.ID)
	if err != nil {
		return 0, fmt.Errorf("update client: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return uint64(rows), nil
}

// UpdateType overwrites one client's type.
func (s *Clients) UpdateType(ctx context.Context, id uint64, ctype model.ClientType) (uint64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE clients SET ctype = ? WHERE id = ?`, ctype, id)
	if err != nil {
		return 0, fmt.Errorf("update client type: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return uint64(rows), nil
}

// All returns every client.
func (s *Clients) All(ctx context.Context) ([]model.Client, error) {
	return s.queryClients(ctx, `SELECT `+clientColumns+` FROM clients`)
}

// ByType returns all clients of one type.
func (s *Clients) ByType(ctx context.Context, ctype model.ClientType) ([]model.Client, error) {
	return s.queryClients(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE ctype = ?`, ctype)
}

// ByNameLike returns clients whose name contains the given fragment.
func (s *Clients) ByNameLike(ctx context.Context, name string) ([]model.Client, error) {
	return s.queryClients(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE name LIKE ?`, "%"+name+"%")
}

func (s *Clients) queryClients(ctx context.Context, query string, args ...any) ([]model.Client, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Password, &c.Ctype,
			&c.Contactor, &c.ContactorTel, &c.Email, &c.Description); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
