package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/cocreate/internal/client/client"
	"github.com/dmitrijs2005/cocreate/internal/client/models"
	"github.com/dmitrijs2005/cocreate/internal/client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) string {
	t.Helper()
	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, k).Scan(&v))
	return v
}

// fakeClient implements client.Client for AuthService tests. Only the
// session calls are meaningful.
type fakeClient struct {
	client.Client

	token   string
	err     error
	pingErr error
}

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) Register(_ context.Context, username, _ string) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Session{Username: username, Token: "reg-token"}, nil
}

func (f *fakeClient) Login(_ context.Context, username, _ string) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Session{Username: username, Token: "login-token"}, nil
}

func TestRegister_SavesSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	svc := NewAuthService(fc, db, "http://localhost:8080/")

	name, err := svc.Register(context.Background(), "alice1", "Passw0rd")
	require.NoError(t, err)
	assert.Equal(t, "alice1", name)
	assert.Equal(t, "reg-token", fc.token)
	assert.Equal(t, "reg-token", getMeta(t, db, KeyToken))
	assert.Equal(t, "http://localhost:8080", getMeta(t, db, KeyServerURL))
}

func TestLogin_ErrorSavesNothing(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{err: &client.APIError{Status: 401, Message: "invalid username or password"}}
	svc := NewAuthService(fc, db, "http://localhost:8080")

	_, err := svc.Login(context.Background(), "alice1", "nope")
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, err = svc.Restore(context.Background())
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)
	assert.Empty(t, fc.token)
}

func TestRestore(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := NewAuthService(&fakeClient{}, db, "http://localhost:8080").Login(ctx, "alice1", "Passw0rd")
	require.NoError(t, err)

	fc := &fakeClient{}
	name, err := NewAuthService(fc, db, "http://localhost:8080").Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice1", name)
	assert.Equal(t, "login-token", fc.token)
}

func TestRestore_OtherServer(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := NewAuthService(&fakeClient{}, db, "http://localhost:8080").Login(ctx, "alice1", "Passw0rd")
	require.NoError(t, err)

	_, err = NewAuthService(&fakeClient{}, db, "https://cocreate.example.com").Restore(ctx)
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)
}

func TestLogout(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fc := &fakeClient{}
	svc := NewAuthService(fc, db, "http://localhost:8080")

	_, err := svc.Login(ctx, "alice1", "Passw0rd")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	assert.Empty(t, fc.token)
	_, err = svc.Restore(ctx)
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)
}

func TestPing(t *testing.T) {
	fc := &fakeClient{pingErr: client.ErrUnavailable}
	svc := NewAuthService(fc, setupDB(t), "http://localhost:8080")
	assert.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
}
