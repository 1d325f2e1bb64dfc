package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/flowspace/internal/logging"
	"github.com/dmitrijs2005/flowspace/internal/server/repositories/repomanager"
)

// CleanupService periodically sweeps expired entries out of the revocation
// blacklist. Sweep failures are logged and retried on the next tick, never
// surfaced to request handling.
type CleanupService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	interval    time.Duration
	logger      logging.Logger
}

func NewCleanupService(db *sql.DB, m repomanager.RepositoryManager, interval time.Duration, logger logging.Logger) *CleanupService {
	return &CleanupService{
		db:          db,
		repomanager: m,
		interval:    interval,
		logger:      logger.With("module", "cleanup"),
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (s *CleanupService) Run(ctx context.Context) {
	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping cleanup...")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep deletes blacklist entries whose expiry is in the past.
func (s *CleanupService) Sweep(ctx context.Context) {
	n, err := s.repomanager.RevokedTokens(s.db).DeleteExpired(ctx)
	if err != nil {
		s.logger.Error(ctx, "cleanup failed", "error", err)
		return
	}
	s.logger.Info(ctx, "Cleaned up expired tokens", "deleted", n)
}
