package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusPaid    OrderStatus = "paid"
	StatusDone    OrderStatus = "done"
)

// validTransitions defines the allowed state machine transitions.
// done is terminal; no transition ever moves backward.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusPaid},
	StatusPaid:    {StatusDone},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrOrderNotFound = errors.New("order not found")
var ErrOrderNotPending = errors.New("order is no longer pending")
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is the core aggregate. Total is stored, not recomputed on read: it is
// quantity × unit price as of the last write, and survives later price changes
// to the referenced menu item. Every quantity edit must rewrite Total in the
// same operation.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	MenuID    string          `json:"menu_id"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
