package session

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type revocationStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

type revocationKeyer interface {
	RevokedTokenKey(jti string) string
}

// RevocationChecker exposes the read-only surface needed by middleware.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Revoker records access tokens that were logged out before they expired.
// Entries live only until the token's own expiry, so the store never grows past
// the set of currently valid tokens.
type Revoker struct {
	store revocationStore
	keyer revocationKeyer
	now   func() time.Time
}

// RevokerStore is satisfied by *redis.Client.
type RevokerStore interface {
	revocationStore
	revocationKeyer
}

// NewRevoker constructs a revocation list backed by the provided store.
func NewRevoker(store RevokerStore) (*Revoker, error) {
	if store == nil {
		return nil, fmt.Errorf("revocation store is required")
	}
	return &Revoker{store: store, keyer: store, now: time.Now}, nil
}

// Revoke marks the token id as unusable until expiresAt.
func (r *Revoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if strings.TrimSpace(jti) == "" {
		return fmt.Errorf("token id is required")
	}
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.store.Set(ctx, r.keyer.RevokedTokenKey(jti), "1", ttl)
}

// IsRevoked reports whether the token id was revoked.
func (r *Revoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	return r.store.Exists(ctx, r.keyer.RevokedTokenKey(jti))
}
