package session

import (
	"context"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
)

// Record is the authenticated identity kept alive between requests. Deleting
// it revokes the matching token before its expiry.
type Record struct {
	TokenID  string      `json:"token_id"`
	UserID   common.UUID `json:"user_id"`
	Role     user.Role   `json:"role"`
	FullName string      `json:"full_name"`
}

// Store holds no business logic: read session, write session, clear session.
type Store interface {
	Get(ctx context.Context, tokenID string) (*Record, error)
	Set(ctx context.Context, rec Record, ttl time.Duration) error
	Clear(ctx context.Context, tokenID string) error
}
