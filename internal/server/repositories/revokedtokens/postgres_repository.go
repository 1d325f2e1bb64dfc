package revokedtokens

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/flowspace/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token string, validity time.Duration) error {

	query :=
		`INSERT INTO revoked_tokens (token, expires_at)
         VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, token, time.Now().Add(validity))

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// IsRevoked reports blacklist membership. Entries past their stored expiry
// do not count even before the sweep removes them.
func (r *PostgresRepository) IsRevoked(ctx context.Context, token string) (bool, error) {

	query :=
		`SELECT EXISTS (
			SELECT 1 FROM revoked_tokens WHERE token = $1 AND expires_at > now()
		 )`

	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&revoked); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return revoked, nil
}

// DeleteExpired removes entries whose expiry is strictly in the past and
// returns how many were deleted.
func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {

	query := `DELETE FROM revoked_tokens WHERE expires_at <= now()`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}

	return n, nil
}
