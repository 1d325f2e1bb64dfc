package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/flowspace/internal/dbx"
	"github.com/dmitrijs2005/flowspace/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/flowspace/internal/server/repositories/users"
)

// RepositoryManager hands out per-entity repositories bound to a DB handle
// (or transaction) and runs schema migrations.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}
