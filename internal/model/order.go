package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// OrderStatus is the payment state of an order. StatusUnknown is the fallback
// for unrecognized persisted values, not a real state.
type OrderStatus string

const (
	StatusUnpaid   OrderStatus = "unpaid"
	StatusPaid     OrderStatus = "paid"
	StatusFinished OrderStatus = "finished"
	StatusUnknown  OrderStatus = "unknown"
)

// ParseOrderStatus maps a stored value to an OrderStatus, falling back to StatusUnknown.
func ParseOrderStatus(s string) OrderStatus {
	switch s {
	case "unpaid":
		return StatusUnpaid
	case "paid":
		return StatusPaid
	case "finished":
		return StatusFinished
	default:
		return StatusUnknown
	}
}

// Scan implements sql.Scanner.
func (s *OrderStatus) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*s = ParseOrderStatus(v)
	case []byte:
		*s = ParseOrderStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Order is an order header. OrderID is the externally visible identifier;
// ID is the surrogate key that line items reference.
type Order struct {
	ID        uint64      `json:"id"`
	OrderID   string      `json:"order_id"`
	Cid       uint64      `json:"cid"`
	OrderTime time.Time   `json:"order_time"`
	Status    OrderStatus `json:"status"`
}

// OrderItem is one line of an order. UnitPrice is the price at order time.
type OrderItem struct {
	ID        uint64 `json:"id"`
	OrderID   uint64 `json:"order_id"`
	Pid       uint64 `json:"pid"`
	Amount    uint64 `json:"amount"`
	UnitPrice uint64 `json:"unit_price"`
}

// OrderItemDTO is the outward-facing shape of a line item.
type OrderItemDTO struct {
	Pid       uint64 `json:"pid"`
	Amount    uint64 `json:"amount"`
	UnitPrice uint64 `json:"unit_price"`
}

// OrderDTO bundles an order with its line items and the derived total.
type OrderDTO struct {
	Order      Order          `json:"order"`
	OrderItems []OrderItemDTO `json:"order_items"`
	Total      uint64         `json:"total"`
}

// NewOrderDTO builds the response shape, deriving the total as Σ amount × unit price.
func NewOrderDTO(order Order, items []OrderItem) OrderDTO {
	dto := OrderDTO{
		Order:      order,
		OrderItems: make([]OrderItemDTO, 0, len(items)),
	}
	for _, it := range items {
		dto.Total += it.Amount * it.UnitPrice
		dto.OrderItems = append(dto.OrderItems, OrderItemDTO{
			Pid:       it.Pid,
			Amount:    it.Amount,
			UnitPrice: it.UnitPrice,
		})
	}
	return dto
}

// InsertOrderItem is one requested line of a new order. Amount and UnitPrice
// are stored verbatim.
type InsertOrderItem struct {
	Pid       uint64 `json:"pid"`
	Amount    uint64 `json:"amount"`
	UnitPrice uint64 `json:"unit_price"`
}

// InsertOrder is the body for creating an order with its line items.
type InsertOrder struct {
	Cid        uint64            `json:"cid"`
	OrderItems []InsertOrderItem `json:"order_items"`
}

// UpdateOrder is the body for setting an order's status.
type UpdateOrder struct {
	ID     uint64      `json:"id"`
	Status OrderStatus `json:"status"`
}
