package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/cocreate/internal/client/client"
	"github.com/dmitrijs2005/cocreate/internal/client/config"
	"github.com/dmitrijs2005/cocreate/internal/client/services"
	"github.com/dmitrijs2005/cocreate/internal/client/store"
	"github.com/dmitrijs2005/cocreate/internal/filex"
)

type App struct {
	config      *config.Config
	client      client.Client
	authService services.AuthService
	db          *sql.DB
	reader      *bufio.Reader
	out         io.Writer
	userName    string
}

func NewApp(c *config.Config) *App {
	return &App{config: c, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// open connects the session store and the API client. It runs after flags
// are parsed so --server and --session-db take effect.
func (a *App) open(ctx context.Context) error {
	if a.client != nil {
		return nil
	}

	path := a.config.SessionDB
	if path == "" {
		dir, err := filex.EnsureSubdDir(config.DefaultSessionDir)
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "session.db")
	}

	db, err := store.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("error initializing session store: %w", err)
	}

	c := client.NewHTTPClient(a.config.ServerURL, a.config.RequestTimeout)
	a.db = db
	a.client = c
	a.authService = services.NewAuthService(c, db, a.config.ServerURL)
	return nil
}

// Close releases the session store.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// requireSession restores the saved token; commands that need a user call it
// before talking to the server.
func (a *App) requireSession(ctx context.Context) error {
	name, err := a.authService.Restore(ctx)
	if err != nil {
		return fmt.Errorf("%w: run 'cocreate login' first", err)
	}
	a.userName = name
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
