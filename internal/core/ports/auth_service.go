package ports

import (
	"context"

	"github.com/kusina/canteen-api/internal/core/domain"
)

// Session describes an authenticated principal together with its derived role.
type Session struct {
	User *domain.User
	Role domain.Role
}

type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*domain.User, error)
	// SignIn verifies credentials and returns a signed token plus the session.
	SignIn(ctx context.Context, email, password string) (string, *Session, error)
	// SignOut revokes the given token until its natural expiry.
	SignOut(ctx context.Context, token string) error
	// CurrentSession resolves the principal behind a user id, re-deriving the
	// role on every call.
	CurrentSession(ctx context.Context, userID string) (*Session, error)
}
