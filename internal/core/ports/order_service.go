package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kusina/canteen-api/internal/core/domain"
)

// OrderView is an order joined with its catalog row for display. ItemName
// falls back to a placeholder when the referenced menu item has been deleted.
type OrderView struct {
	ID        string
	ItemName  string
	ImageURL  string
	Quantity  int
	Total     decimal.Decimal
	Status    domain.OrderStatus
	CreatedAt time.Time
	// OwnerEmail is populated only in the admin view.
	OwnerEmail string
}

// OrderService defines use-case operations for the order lifecycle.
type OrderService interface {
	// Place creates a pending order priced at the current catalog price.
	Place(ctx context.Context, userID, menuItemID string, quantity int) (*domain.Order, error)
	// EditQuantity rewrites quantity and total in the same write. Owner only,
	// pending only.
	EditQuantity(ctx context.Context, userID, orderID string, quantity int) (*domain.Order, error)
	// Delete removes a pending order. Owner only.
	Delete(ctx context.Context, userID, orderID string) error
	// MarkDone transitions a paid order to done. Admin only, enforced at the
	// API boundary.
	MarkDone(ctx context.Context, orderID string) (*domain.Order, error)
	// ListForUser returns the owner-scoped order history, newest first.
	ListForUser(ctx context.Context, userID string) ([]OrderView, error)
	// ListAll returns every principal's orders with owner emails joined.
	ListAll(ctx context.Context) ([]OrderView, error)
}
