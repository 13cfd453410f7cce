package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrMenuItemNotFound = errors.New("menu item not found")
var ErrInvalidMenuItem = errors.New("invalid menu item")
var ErrImageUpload = errors.New("image upload failed")

// UnavailableItemName is rendered in order views whose menu item has been
// deleted from the catalog. Historical orders keep their stored totals.
const UnavailableItemName = "item unavailable"

// MenuItem is a single orderable catalog entry.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ValidateMenuInput checks name and price before any network call is made.
func ValidateMenuInput(name string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMenuItem)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidMenuItem)
	}
	return nil
}
