package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "token:denylist:"

// Denylist records revoked access tokens until their natural expiry. A token
// present in the denylist is refused even though its signature still checks
// out.
type Denylist struct {
	client *redis.Client
}

func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks the token as invalid for ttl. Re-revoking an already revoked
// token just refreshes the entry.
func (d *Denylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := d.client.Set(ctx, denylistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist set: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token was revoked by a sign-out.
func (d *Denylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := d.client.Exists(ctx, denylistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist exists: %w", err)
	}
	return n > 0, nil
}

// Tokens are hashed before use as keys so raw JWTs never land in Redis.
func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return denylistKeyPrefix + hex.EncodeToString(sum[:])
}
