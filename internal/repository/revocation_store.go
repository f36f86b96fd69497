package repository

import (
	"context"
	"time"
)

// RevocationStore remembers revoked token IDs until the token would have
// expired anyway.
// Implementations: Redis (production) or in-memory (local dev / single instance).
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedKeyPrefix = "voucherhub:revoked:"

func revokedKey(tokenID string) string { return revokedKeyPrefix + tokenID }
