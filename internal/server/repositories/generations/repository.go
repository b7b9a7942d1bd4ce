// Package generations stores immutable AI-produced artifacts in PostgreSQL.
package generations

import (
	"context"

	"github.com/dmitrijs2005/cocreate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, kind models.GenerationType, content string) (int64, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*models.Generation, error)
	GetByID(ctx context.Context, id int64) (*models.Generation, error)
}
