package pgsql

import (
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewSplitConfigRepository returns the Postgres-backed split configuration repository.
func NewSplitConfigRepository(dbPool *pgxpool.Pool) portsrepo.SplitConfigRepositoryFacade {
	return newPgxSplitConfigRepository(dbPool)
}
