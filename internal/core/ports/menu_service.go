package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kusina/canteen-api/internal/core/domain"
)

// CreateMenuItemInput carries all data needed to create a catalog entry.
// Image bytes are optional; when present they are uploaded to object storage
// before the row is inserted.
type CreateMenuItemInput struct {
	Name             string
	Price            decimal.Decimal
	Description      string
	ImageBytes       []byte
	ImageContentType string
}

// UpdateMenuItemInput mirrors CreateMenuItemInput for edits. A nil ImageBytes
// keeps the existing image_url untouched.
type UpdateMenuItemInput struct {
	Name             string
	Price            decimal.Decimal
	Description      string
	ImageBytes       []byte
	ImageContentType string
}

// MenuService defines use-case operations for the menu catalog.
type MenuService interface {
	List(ctx context.Context) ([]*domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, input CreateMenuItemInput) (*domain.MenuItem, error)
	Update(ctx context.Context, id string, input UpdateMenuItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}
