package generations

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/dbx"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
)

// PostgresRepository implements generation storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a generation and returns its id.
func (r *PostgresRepository) Create(ctx context.Context, kind models.GenerationType, content string) (int64, error) {
	query :=
		`INSERT INTO generations (type, content)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	var id int64
	if err := r.db.QueryRowContext(ctx, query, string(kind), content).Scan(&id); err != nil {
		return 0, common.StorageError(err)
	}
	return id, nil
}

// ListByIDs returns every generation whose id is in ids, in storage order.
// Ids with no row are skipped.
func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.Generation, error) {
	result := make([]*models.Generation, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query :=
		`SELECT id, type, content, created_at
		 FROM generations
		 WHERE id = ANY($1)
		 `

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, common.StorageError(err)
	}
	defer rows.Close()

	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, common.StorageError(err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StorageError(err)
	}
	return result, nil
}

// GetByID returns a single generation or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Generation, error) {
	query :=
		`SELECT id, type, content, created_at
		 FROM generations
		 WHERE id = $1
		 `

	g, err := scanGeneration(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.StorageError(err)
	}
	return g, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(s scanner) (*models.Generation, error) {
	var (
		g    models.Generation
		kind string
	)
	if err := s.Scan(&g.ID, &kind, &g.Content, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.Type = models.ParseGenerationType(kind)
	return &g, nil
}
