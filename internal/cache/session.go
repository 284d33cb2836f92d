package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// sessionPrefix is the Redis key prefix for admin sessions.
	sessionPrefix = "admin:session:"
	// SessionTTL is how long an admin session stays valid.
	SessionTTL = 12 * time.Hour
)

// CreateSession stores a session token with the standard TTL.
func (c *Cache) CreateSession(ctx context.Context, token string) error {
	if err := c.client.Set(ctx, sessionPrefix+token, "1", SessionTTL).Err(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// SessionExists reports whether the token is a live session.
func (c *Cache) SessionExists(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, sessionPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}

// DeleteSession revokes a session token. Deleting a missing token is not
// an error.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
