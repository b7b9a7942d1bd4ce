package users

import (
	"context"

	"github.com/dmitrijs2005/cocreate/internal/server/models"
)

// Repository stores user accounts and their generation ledgers.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	GetPasswordHash(ctx context.Context, id int64) ([]byte, error)
	UpdatePassword(ctx context.Context, id int64, hash []byte) error
	UpdateContentType(ctx context.Context, id int64, value string) error
	UpdateTargetAudience(ctx context.Context, id int64, value string) error
	UpdateAdditionalContext(ctx context.Context, id int64, value string) error
	Delete(ctx context.Context, id int64) error

	AppendGeneration(ctx context.Context, userID, genID int64) error
	AddFavorite(ctx context.Context, userID, genID int64) error
	RemoveFavorite(ctx context.Context, userID, genID int64) error
}
