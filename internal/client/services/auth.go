// Package services contains application services for the cocreate CLI.
// This file defines the session service: register, login and logout against
// the server, and persistence of the bearer token in the local session store.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cocreate/internal/client/client"
	"github.com/dmitrijs2005/cocreate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cocreate/internal/dbx"
)

// Metadata keys of the session store.
const (
	KeyUsername  = "username"
	KeyToken     = "token"
	KeyServerURL = "server_url"
)

// AuthService defines session operations for the CLI.
//
// Contract:
//   - Register / Login: authenticate against the server and persist the session.
//   - Restore: load a saved session for serverURL into the API client.
//   - Logout: forget the saved session.
//   - Ping: check server liveness.
type AuthService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Restore(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client    client.Client
	db        *sql.DB
	serverURL string
}

// NewAuthService binds the API client and the session database. Sessions are
// scoped to serverURL: a token saved for another server is not restored.
func NewAuthService(c client.Client, db *sql.DB, serverURL string) AuthService {
	return &authService{client: c, db: db, serverURL: strings.TrimRight(serverURL, "/")}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (a *authService) Register(ctx context.Context, username, password string) (string, error) {
	sess, err := a.client.Register(ctx, username, password)
	if err != nil {
		return "", err
	}
	if err := a.saveSession(ctx, sess.Username, sess.Token); err != nil {
		return "", fmt.Errorf("session saving error: %w", err)
	}
	a.client.SetToken(sess.Token)
	return sess.Username, nil
}

func (a *authService) Login(ctx context.Context, username, password string) (string, error) {
	sess, err := a.client.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	if err := a.saveSession(ctx, sess.Username, sess.Token); err != nil {
		return "", fmt.Errorf("session saving error: %w", err)
	}
	a.client.SetToken(sess.Token)
	return sess.Username, nil
}

// saveSession writes username, token and server URL in one transaction.
func (a *authService) saveSession(ctx context.Context, username, token string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getMetadataRepo(tx)
		if err := repo.Set(ctx, KeyUsername, username); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, KeyServerURL, a.serverURL)
	})
}

// Restore loads the saved token into the client and returns the username.
// It returns client.ErrNotLoggedIn when there is no usable session.
func (a *authService) Restore(ctx context.Context) (string, error) {
	values, err := a.getMetadataRepo(a.db).List(ctx)
	if err != nil {
		return "", err
	}
	token := values[KeyToken]
	if token == "" || values[KeyServerURL] != a.serverURL {
		return "", client.ErrNotLoggedIn
	}
	a.client.SetToken(token)
	return values[KeyUsername], nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return a.getMetadataRepo(a.db).Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
