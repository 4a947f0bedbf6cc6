package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"depot-rest-api/internal/errs"
	"depot-rest-api/internal/model"
)

// Inventory provides transactional stock bookkeeping keyed by (rid, pid).
type Inventory struct {
	db *sql.DB
}

// NewInventory creates the inventory accessor.
func NewInventory(db *sql.DB) *Inventory {
	return &Inventory{db: db}
}

const inventoryDetailColumns = `
	ti.rid,
	ti.pid,
	tp.name AS pname,
	tp.size AS psize,
	tp.price AS pprice,
	tp.max_amount AS pmax_amount,
	tp.min_amount AS pmin_amount,
	tr.name AS rname,
	ti.amount`

// OfRepository returns detail rows for every product stocked in one warehouse.
func (s *Inventory) OfRepository(ctx context.Context, rid uint64) ([]model.InventoryDetail, error) {
	query := `SELECT` + inventoryDetailColumns + `
	FROM inventory AS ti
	JOIN products AS tp ON ti.pid = tp.id
	JOIN repository AS tr ON ti.rid = tr.id
	WHERE ti.rid = ?`
	return s.queryDetails(ctx, query, rid)
}

// OfProduct returns detail rows for every warehouse stocking one product.
func (s *Inventory) OfProduct(ctx context.Context, pid uint64) ([]model.InventoryDetail, error) {
	query := `SELECT` + inventoryDetailColumns + `
	FROM inventory AS ti
	JOIN products AS tp ON ti.pid = tp.id
	JOIN repository AS tr ON ti.rid = tr.id
	WHERE ti.pid = ?`
	return s.queryDetails(ctx, query, pid)
}

func (s *Inventory) queryDetails(ctx context.Context, query string, arg uint64) ([]model.InventoryDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query inventory details: %w", err)
	}
	defer rows.Close()

	var details []model.InventoryDetail
	for rows.Next() {
		var d model.InventoryDetail
		if err := rows.Scan(&d.Rid, &d.Pid, &d.Pname, &d.Psize, &d.Pprice,
			&d.PmaxAmount, &d.PminAmount, &d.Rname, &d.Amount); err != nil {
			return nil, fmt.Errorf("scan inventory detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// Add increments the stock for (rid, pid) by delta inside one transaction,
// lazily creating the record with amount 0 on first use.
func (s *Inventory) Add(ctx context.Context, rid, pid, delta uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", errs.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	var amount uint64
	err = tx.QueryRowContext(ctx,
		`SELECT amount FROM inventory WHERE rid = ? AND pid = ?`, rid, pid,
	).Scan(&amount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (rid, pid, amount) VALUES (?, ?, 0)`, rid, pid); err != nil {
			return fmt.Errorf("create inventory record: %w", err)
		}
	case err != nil:
		return fmt.Errorf("query inventory: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE inventory SET amount = amount + ? WHERE rid = ? AND pid = ?`,
		delta, rid, pid); err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", errs.ErrTransactionFailed, err)
	}
	return nil
}

// Reduce decrements the stock for (rid, pid) by delta inside one transaction.
// Returns ErrNotFound when no record exists and ErrInsufficientStock when the
// decrement would take the amount below zero. The UPDATE carries its own
// amount >= delta guard so a concurrent reducer that slips between the read
// and the write cannot overdraw the record.
func (s *Inventory) Reduce(ctx context.Context, rid, pid, delta uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", errs.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	var amount uint64
	err = tx.QueryRowContext(ctx,
		`SELECT amount FROM inventory WHERE rid = ? AND pid = ?`, rid, pid,
	).Scan(&amount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return errs.ErrNotFound
	case err != nil:
		return fmt.Errorf("query inventory: %w", err)
	}
	if amount < delta {
		return errs.ErrInsufficientStock
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE inventory SET amount = amount - ?
		 WHERE rid = ? AND pid = ? AND amount >= ?`,
		delta, rid, pid, delta)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errs.ErrInsufficientStock
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", errs.ErrTransactionFailed, err)
	}
	return nil
}
