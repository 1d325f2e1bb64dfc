package revokedtokens

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, token string, validity time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
