// Package server wires configuration, storage, the text generation provider
// and the two APIs (HTTP and gRPC) into a runnable application, and handles
// graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/cocreate/internal/logging"
	"github.com/dmitrijs2005/cocreate/internal/server/auth"
	"github.com/dmitrijs2005/cocreate/internal/server/config"
	"github.com/dmitrijs2005/cocreate/internal/server/exports"
	"github.com/dmitrijs2005/cocreate/internal/server/httpapi"
	"github.com/dmitrijs2005/cocreate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cocreate/internal/server/services"
	"github.com/dmitrijs2005/cocreate/internal/server/textgen"

	gs "github.com/dmitrijs2005/cocreate/internal/server/grpc"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	tokens            *auth.TokenService
	userService       *services.UserService
	generationService *services.GenerationService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	provider, err := textgen.NewGemini(ctx, c.GenAIAPIKey, c.GenAIModel, c.GenAITimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	// A nil *S3Store must not reach the service as a non-nil interface.
	var exporter services.Exporter
	if c.ExportUploadsEnabled() {
		store, err := exports.NewS3Store(ctx, exports.S3Config{
			User:        c.S3RootUser,
			Password:    c.S3RootPassword,
			Bucket:      c.S3Bucket,
			Region:      c.S3Region,
			Endpoint:    c.S3BaseEndpoint,
			URLValidity: c.ExportURLValidity,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		exporter = store
	} else {
		logger.Info(ctx, "S3 bucket not configured, export uploads disabled")
	}

	if c.TokenValidityDuration <= 0 {
		logger.Warn(ctx, "token validity is zero, issued tokens never expire")
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration, rm.Users(db))
	us := services.NewUserService(db, rm, tokens)
	gens := services.NewGenerationService(db, rm, provider, textgen.Prompts{Language: c.GenerationLanguage}, exporter)

	return &App{
		config:            c,
		logger:            logger,
		db:                db,
		tokens:            tokens,
		userService:       us,
		generationService: gens,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.generationService, app.tokens)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.generationService, app.tokens)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both APIs until a signal arrives or one of them fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")

	if z, ok := app.logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}
}
