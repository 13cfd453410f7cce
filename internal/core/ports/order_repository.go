package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kusina/canteen-api/internal/core/domain"
)

// OrderListFilter carries the query parameters for listing orders.
// UserID is enforced by the service layer: empty means no owner filter (admin).
type OrderListFilter struct {
	UserID string
	Status domain.OrderStatus // optional
}

// OrderRepository defines persistence operations for orders. All guarded
// mutations evaluate their predicate server-side in a single storage command
// so that a racing write can never move a status backward.
type OrderRepository interface {
	Insert(ctx context.Context, o *domain.Order) (*domain.Order, error)
	// FindByID retrieves an order. When userID is non-empty the query is
	// additionally scoped to that owner.
	FindByID(ctx context.Context, id string, userID string) (*domain.Order, error)
	// List returns orders matching filter, ordered by created_at descending.
	List(ctx context.Context, filter OrderListFilter) ([]*domain.Order, error)
	// UpdatePendingQuantity rewrites quantity and total in one write, guarded
	// by (owner AND status=pending). Returns the order as written, or
	// domain.ErrOrderNotPending when the guard matched nothing but the order
	// exists.
	UpdatePendingQuantity(ctx context.Context, id, userID string, quantity int, total decimal.Decimal) (*domain.Order, error)
	// DeletePending removes an order guarded by (owner AND status=pending).
	DeletePending(ctx context.Context, id, userID string) error
	// SettlePending transitions every (userID, pending, created_at <= before)
	// order to paid in a single bulk command and returns the orders it
	// settled. The predicate runs server-side; a pending order created after
	// the cutoff stays pending for the next settlement cycle.
	SettlePending(ctx context.Context, userID string, before time.Time) ([]*domain.Order, error)
	// MarkDone transitions a single order from paid to done, guarded by
	// status=paid.
	MarkDone(ctx context.Context, id string) (*domain.Order, error)
}
