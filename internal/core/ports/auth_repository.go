package ports

import (
	"context"

	"github.com/kusina/canteen-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindEmailsByIDs resolves owner emails for the admin order view.
	// Unknown ids are simply absent from the result map.
	FindEmailsByIDs(ctx context.Context, ids []string) (map[string]string, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
