package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/logging"
	"github.com/dmitrijs2005/cocreate/internal/server/exports"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"github.com/dmitrijs2005/cocreate/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testToken = "good-token"

type fakeAuth struct {
	user *models.User
}

func (f *fakeAuth) Validate(_ context.Context, token string) (*models.User, error) {
	if token != testToken {
		return nil, common.ErrMalformedToken
	}
	return f.user, nil
}

type fakeUsers struct {
	err        error
	lastID     int64
	lastValue  string
	registered services.RegisterInput
}

func (f *fakeUsers) Register(_ context.Context, in services.RegisterInput) (*services.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = in
	return &services.Session{User: &models.User{ID: 1, UserName: strings.ToLower(in.Username)}, Token: "tok"}, nil
}

func (f *fakeUsers) Login(_ context.Context, username, _ string) (*services.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.Session{User: &models.User{ID: 1, UserName: username}, Token: "tok"}, nil
}

func (f *fakeUsers) set(id int64, v string) error {
	f.lastID, f.lastValue = id, v
	return f.err
}

func (f *fakeUsers) UpdateContentType(_ context.Context, id int64, v string) error {
	return f.set(id, v)
}

func (f *fakeUsers) UpdateTargetAudience(_ context.Context, id int64, v string) error {
	return f.set(id, v)
}

func (f *fakeUsers) UpdateAdditionalContext(_ context.Context, id int64, v string) error {
	return f.set(id, v)
}

func (f *fakeUsers) ChangePassword(_ context.Context, id int64, _, next string) error {
	return f.set(id, next)
}

func (f *fakeUsers) DeleteAccount(_ context.Context, id int64, password string) error {
	return f.set(id, password)
}

type fakeGenerations struct {
	err      error
	content  string
	gens     []*models.Generation
	lastKind models.GenerationType
	lastID   int64
	lastFmt  exports.Format
	saved    bool
}

func (f *fakeGenerations) Generate(_ context.Context, _ *models.User, kind models.GenerationType, _ string) (*models.Generation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastKind = kind
	return &models.Generation{ID: 42, Type: kind, Content: f.content}, nil
}

func (f *fakeGenerations) ChangeTone(_ context.Context, text, tone string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return tone + ": " + text, nil
}

func (f *fakeGenerations) History(context.Context, *models.User) ([]*models.Generation, error) {
	return f.gens, f.err
}

func (f *fakeGenerations) Saved(context.Context, *models.User) ([]*models.Generation, error) {
	return f.gens, f.err
}

func (f *fakeGenerations) Get(_ context.Context, u *models.User, id int64) (*models.Generation, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !u.Owns(id) {
		return nil, common.ErrNotFound
	}
	return &models.Generation{ID: id, Type: models.GenerationVideoScript, Content: "script"}, nil
}

func (f *fakeGenerations) Save(_ context.Context, _ *models.User, id int64) error {
	f.lastID = id
	return f.err
}

func (f *fakeGenerations) Unsave(_ context.Context, _ *models.User, id int64) error {
	f.lastID = id
	return f.err
}

func (f *fakeGenerations) Export(_ context.Context, _ *models.User, format exports.Format, saved bool) (*services.ExportFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastFmt, f.saved = format, saved
	return &services.ExportFile{Name: "cocreate-alice1-generations-20250101." + format.Extension(), ContentType: format.ContentType(), Body: []byte("body")}, nil
}

func (f *fakeGenerations) ExportToStorage(_ context.Context, _ *models.User, format exports.Format, saved bool) (*exports.Upload, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastFmt, f.saved = format, saved
	return &exports.Upload{Key: "exports/1/x.json", URL: "https://s3.local/x", ExpiresAt: time.Date(2025, 1, 1, 0, 15, 0, 0, time.UTC)}, nil
}

type fixture struct {
	users   *fakeUsers
	gens    *fakeGenerations
	user    *models.User
	handler http.Handler
}

func newFixture() *fixture {
	user := &models.User{ID: 7, UserName: "alice1", Generations: []int64{1, 2}, FavoriteGenerations: []int64{2}}
	f := &fixture{users: &fakeUsers{}, gens: &fakeGenerations{}, user: user}
	l := logging.NewJSONSlogLogger(io.Discard, "error")
	f.handler = NewServer(":0", l, f.users, f.gens, &fakeAuth{user: user}).Router()
	return f
}

// do sends a request with an optional JSON body and the test bearer token.
func (f *fixture) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
