package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kusina/canteen-api/internal/core/domain"
	"github.com/kusina/canteen-api/internal/core/ports"
)

// TokenDenylist abstracts the revocation store (Redis). A revoked token stays
// listed until its natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// AuthService implements sign-up, sign-in, and sign-out.
type AuthService struct {
	repo       ports.UserRepository
	denylist   TokenDenylist
	jwtSecret  string
	tokenTTL   time.Duration
	adminEmail string
}

func NewAuthService(repo ports.UserRepository, denylist TokenDenylist, jwtSecret, adminEmail string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		denylist:   denylist,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		adminEmail: adminEmail,
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *ports.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, s.session(user), nil
}

// SignOut places the token on the denylist for its remaining lifetime. An
// unparsable or already-expired token is treated as signed out.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return nil
	}

	return s.denylist.Revoke(ctx, token, ttl)
}

func (s *AuthService) CurrentSession(ctx context.Context, userID string) (*ports.Session, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.session(user), nil
}

// session derives the role fresh on every call; it is never baked into the
// token, so demoting the configured admin address takes effect immediately.
func (s *AuthService) session(user *domain.User) *ports.Session {
	return &ports.Session{
		User: user,
		Role: domain.ResolveRole(user.Email, s.adminEmail),
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
