package client

import (
	"context"

	"github.com/dmitrijs2005/cocreate/internal/client/models"
)

type Client interface {
	SetToken(token string)
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, password string) (*models.Session, error)
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Profile(ctx context.Context) (*models.Profile, error)
	ChangePassword(ctx context.Context, current, next string) error
	DeleteAccount(ctx context.Context, password string) error
	UpdateSetting(ctx context.Context, setting models.Setting, value string) error
	Generate(ctx context.Context, kind models.Kind, prompt string) (*models.GenerateResult, error)
	ChangeTone(ctx context.Context, text, tone string) (string, error)
	History(ctx context.Context) ([]*models.Generation, error)
	Saved(ctx context.Context) ([]*models.Generation, error)
	Generation(ctx context.Context, id int64) (*models.Generation, error)
	Save(ctx context.Context, id int64) error
	Unsave(ctx context.Context, id int64) error
	ExportDownload(ctx context.Context, format string, saved bool) (*models.ExportFile, error)
	ExportUpload(ctx context.Context, format string, saved bool) (*models.Upload, error)
}
