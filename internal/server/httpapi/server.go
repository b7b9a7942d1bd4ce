// Package httpapi exposes the cocreate services over HTTP with chi.
//
// Every JSON response uses the envelope {"success", "message", ...payload};
// errors are mapped to status codes once, in respondError.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cocreate/internal/logging"
	"github.com/dmitrijs2005/cocreate/internal/server/exports"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"github.com/dmitrijs2005/cocreate/internal/server/services"
)

// Users is the account side of the API.
type Users interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.Session, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
	UpdateContentType(ctx context.Context, userID int64, value string) error
	UpdateTargetAudience(ctx context.Context, userID int64, value string) error
	UpdateAdditionalContext(ctx context.Context, userID int64, value string) error
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	DeleteAccount(ctx context.Context, userID int64, password string) error
}

// Generations is the content side of the API.
type Generations interface {
	Generate(ctx context.Context, user *models.User, kind models.GenerationType, topic string) (*models.Generation, error)
	ChangeTone(ctx context.Context, text, tone string) (string, error)
	History(ctx context.Context, user *models.User) ([]*models.Generation, error)
	Saved(ctx context.Context, user *models.User) ([]*models.Generation, error)
	Get(ctx context.Context, user *models.User, id int64) (*models.Generation, error)
	Save(ctx context.Context, user *models.User, id int64) error
	Unsave(ctx context.Context, user *models.User, id int64) error
	Export(ctx context.Context, user *models.User, format exports.Format, saved bool) (*services.ExportFile, error)
	ExportToStorage(ctx context.Context, user *models.User, format exports.Format, saved bool) (*exports.Upload, error)
}

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Validate(ctx context.Context, token string) (*models.User, error)
}

type Server struct {
	address     string
	users       Users
	generations Generations
	auth        Authenticator
	logger      logging.Logger
	origins     []string
}

func NewServer(address string, l logging.Logger, us Users, gs Generations, a Authenticator) *Server {
	return &Server{
		address:     address,
		users:       us,
		generations: gs,
		auth:        a,
		logger:      l.With("module", "http_server"),
		origins:     []string{"*"},
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "http shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
