package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cocreate/internal/dbx"
	"github.com/dmitrijs2005/cocreate/internal/server/repositories/generations"
	"github.com/dmitrijs2005/cocreate/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so that services can
// compose them inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Generations(db dbx.DBTX) generations.Repository
}
