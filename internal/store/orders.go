package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"depot-rest-api/internal/errs"
	"depot-rest-api/internal/model"
	"depot-rest-api/pkg/orderid"
)

// Orders provides order and line-item data access.
type Orders struct {
	db *sql.DB
}

// NewOrders creates the orders accessor.
func NewOrders(db *sql.DB) *Orders {
	return &Orders{db: db}
}

// Create inserts an order header and all its line items in one transaction.
// Amount and unit price are stored verbatim from the request so later catalog
// price changes never affect existing orders. Any single insert failure rolls
// back the whole order.
func (s *Orders) Create(ctx context.Context, cid uint64, items []model.InsertOrderItem) (uint64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", errs.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO orders (order_id, cid, order_time, status) VALUES (?, ?, ?, ?)`,
		orderid.New(), cid, time.Now().UTC(), model.StatusUnpaid)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order id: %w", err)
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, pid, amount, unit_price) VALUES (?, ?, ?, ?)`,
			id, item.Pid, item.Amount, item.UnitPrice); err != nil {
			return 0, fmt.Errorf("insert order item: %w", wrapConstraint(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", errs.ErrTransactionFailed, err)
	}
	return uint64(id), nil
}

// Get returns one order with its line items and derived total.
func (s *Orders) Get(ctx context.Context, id uint64) (model.OrderDTO, error) {
	var order model.Order
	err := s.db.QueryRowContext(ctx,
		`SELECT id, order_id, cid, order_time, status FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.OrderID, &order.Cid, &order.OrderTime, &order.Status)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.OrderDTO{}, errs.ErrNotFound
	case err != nil:
		return model.OrderDTO{}, fmt.Errorf("query order: %w", err)
	}

	items, err := s.itemsOf(ctx, order.ID)
	if err != nil {
		return model.OrderDTO{}, err
	}
	return model.NewOrderDTO(order, items), nil
}

// PageOfClient returns one page of a client's orders, each with line items and
// derived total.
func (s *Orders) PageOfClient(ctx context.Context, cid uint64, q model.PageQuery) (model.PageResponse[model.OrderDTO], error) {
	var zero model.PageResponse[model.OrderDTO]

	var total uint64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE cid = ?`, cid,
	).Scan(&total); err != nil {
		return zero, fmt.Errorf("count orders: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, order_id, cid, order_time, status FROM orders
		 WHERE cid = ? ORDER BY id LIMIT ? OFFSET ?`,
		cid, q.PageSize, q.Offset())
	if err != nil {
		return zero, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.OrderID, &o.Cid, &o.OrderTime, &o.Status); err != nil {
			return zero, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return zero, err
	}

	dtos := make([]model.OrderDTO, 0, len(orders))
	for _, o := range orders {
		items, err := s.itemsOf(ctx, o.ID)
		if err != nil {
			return zero, err
		}
		dtos = append(dtos, model.NewOrderDTO(o, items))
	}
	return model.NewPageResponse(dtos, total, q), nil
}

// UpdateStatus writes the given status unconditionally. Transitions are not
// validated; any status may overwrite any other (operator override semantics).
func (s *Orders) UpdateStatus(ctx context.Context, id uint64, status model.OrderStatus) (uint64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return 0, fmt.Errorf("update order: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return uint64(rows), nil
}

func (s *Orders) itemsOf(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, order_id, pid, amount, unit_price FROM order_items WHERE order_id = ?`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Pid, &it.Amount, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
