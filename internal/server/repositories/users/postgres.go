package users

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/dbx"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, password_hash, content_type, target_audience, additional_context)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.PasswordHash, user.ContentType, user.TargetAudience, user.AdditionalContext,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrUsernameTaken
		}
		return nil, common.StorageError(err)
	}

	user.Generations = []int64{}
	user.FavoriteGenerations = []int64{}
	return user, nil
}

const selectUser = `SELECT id, username, password_hash, content_type, target_audience, additional_context, created_at
		 FROM users
		 `

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, selectUser+`WHERE id = $1`, id)
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, selectUser+`WHERE username = $1`, username)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.UserName, &user.PasswordHash,
		&user.ContentType, &user.TargetAudience, &user.AdditionalContext, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.StorageError(err)
	}

	if err := r.loadLedgers(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// loadLedgers materializes both ordered ledgers from the join table in one
// read.
func (r *PostgresRepository) loadLedgers(ctx context.Context, user *models.User) error {
	query :=
		`SELECT generation_id, favorite_seq
		 FROM user_generations
		 WHERE user_id = $1
		 ORDER BY seq
		 `

	rows, err := r.db.QueryContext(ctx, query, user.ID)
	if err != nil {
		return common.StorageError(err)
	}
	defer rows.Close()

	type favorite struct {
		genID int64
		seq   int64
	}

	user.Generations = []int64{}
	var favorites []favorite

	for rows.Next() {
		var genID int64
		var favSeq sql.NullInt64
		if err := rows.Scan(&genID, &favSeq); err != nil {
			return common.StorageError(err)
		}
		user.Generations = append(user.Generations, genID)
		if favSeq.Valid {
			favorites = append(favorites, favorite{genID: genID, seq: favSeq.Int64})
		}
	}
	if err := rows.Err(); err != nil {
		return common.StorageError(err)
	}

	slices.SortFunc(favorites, func(a, b favorite) int {
		return cmp.Compare(a.seq, b.seq)
	})
	user.FavoriteGenerations = make([]int64, 0, len(favorites))
	for _, f := range favorites {
		user.FavoriteGenerations = append(user.FavoriteGenerations, f.genID)
	}
	return nil
}

func (r *PostgresRepository) GetPasswordHash(ctx context.Context, id int64) ([]byte, error) {
	query := `SELECT password_hash FROM users WHERE id = $1`

	var hash []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.StorageError(err)
	}
	return hash, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, hash []byte) error {
	return r.execOne(ctx, common.ErrNotFound, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
}

func (r *PostgresRepository) UpdateContentType(ctx context.Context, id int64, value string) error {
	return r.execOne(ctx, common.ErrNotFound, `UPDATE users SET content_type = $2 WHERE id = $1`, id, value)
}

func (r *PostgresRepository) UpdateTargetAudience(ctx context.Context, id int64, value string) error {
	return r.execOne(ctx, common.ErrNotFound, `UPDATE users SET target_audience = $2 WHERE id = $1`, id, value)
}

func (r *PostgresRepository) UpdateAdditionalContext(ctx context.Context, id int64, value string) error {
	return r.execOne(ctx, common.ErrNotFound, `UPDATE users SET additional_context = $2 WHERE id = $1`, id, value)
}

// Delete removes the user. Ledger rows cascade; generation rows stay.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, common.ErrNotFound, `DELETE FROM users WHERE id = $1`, id)
}

// AppendGeneration adds genID to the end of the user's generation ledger.
// Appending a pair that is already present is a no-op.
func (r *PostgresRepository) AppendGeneration(ctx context.Context, userID, genID int64) error {
	query :=
		`INSERT INTO user_generations (user_id, generation_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, generation_id) DO NOTHING
		 `

	_, err := r.db.ExecContext(ctx, query, userID, genID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrNotFound
		}
		return common.StorageError(err)
	}
	return nil
}

func (r *PostgresRepository) AddFavorite(ctx context.Context, userID, genID int64) error {
	query :=
		`UPDATE user_generations
		 SET is_favorite = TRUE, favorite_seq = nextval('user_generations_favorite_seq')
		 WHERE user_id = $1 AND generation_id = $2 AND NOT is_favorite
		 `

	res, err := r.db.ExecContext(ctx, query, userID, genID)
	if err != nil {
		return common.StorageError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.StorageError(err)
	}
	if n == 1 {
		return nil
	}

	// Nothing changed: either the pair is missing or it is already a favorite.
	var isFavorite bool
	err = r.db.QueryRowContext(ctx,
		`SELECT is_favorite FROM user_generations WHERE user_id = $1 AND generation_id = $2`,
		userID, genID).Scan(&isFavorite)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrGenerationNotOwned
		}
		return common.StorageError(err)
	}
	return common.ErrAlreadyFavorited
}

func (r *PostgresRepository) RemoveFavorite(ctx context.Context, userID, genID int64) error {
	query :=
		`UPDATE user_generations
		 SET is_favorite = FALSE, favorite_seq = NULL
		 WHERE user_id = $1 AND generation_id = $2 AND is_favorite
		 `
	return r.execOne(ctx, common.ErrNotFavorited, query, userID, genID)
}

// execOne runs a statement expected to touch exactly one row and returns
// onZero when it touched none.
func (r *PostgresRepository) execOne(ctx context.Context, onZero error, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return common.StorageError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.StorageError(err)
	}
	if n == 0 {
		return onZero
	}
	return nil
}
