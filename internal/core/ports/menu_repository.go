package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kusina/canteen-api/internal/core/domain"
)

// MenuItemPatch carries the mutable fields of a catalog row. Nil fields are
// left unchanged by the update.
type MenuItemPatch struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	ImageURL    *string
}

// MenuRepository defines persistence operations for the menu catalog.
type MenuRepository interface {
	// List returns the full catalog ordered by created_at descending.
	List(ctx context.Context) ([]*domain.MenuItem, error)
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
	// FindByIDs resolves catalog rows for order rendering. Deleted ids are
	// simply absent from the result map, never an error.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.MenuItem, error)
	Insert(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, id string, patch MenuItemPatch) (*domain.MenuItem, error)
	// Delete removes a catalog row. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
