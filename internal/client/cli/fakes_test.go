package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/cocreate/internal/client/client"
	"github.com/dmitrijs2005/cocreate/internal/client/config"
	"github.com/dmitrijs2005/cocreate/internal/client/models"
	"github.com/dmitrijs2005/cocreate/internal/client/services"
	"github.com/dmitrijs2005/cocreate/internal/client/store"
	"github.com/stretchr/testify/require"
)

const testServer = "http://cocreate.test"

type fakeClient struct {
	token string
	err   error
	calls []string

	password string
	setting  models.Setting
	value    string
	kind     models.Kind
	prompt   string
	tone     string
	id       int64
	format   string
	saved    bool

	gens []*models.Generation
}

func (f *fakeClient) call(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Ping(context.Context) error { return f.call("ping") }

func (f *fakeClient) Register(_ context.Context, username, password string) (*models.Session, error) {
	f.password = password
	if err := f.call("register"); err != nil {
		return nil, err
	}
	return &models.Session{Username: username, Token: "tok-" + username}, nil
}

func (f *fakeClient) Login(_ context.Context, username, password string) (*models.Session, error) {
	f.password = password
	if err := f.call("login"); err != nil {
		return nil, err
	}
	return &models.Session{Username: username, Token: "tok-" + username}, nil
}

func (f *fakeClient) Profile(context.Context) (*models.Profile, error) {
	if err := f.call("profile"); err != nil {
		return nil, err
	}
	return &models.Profile{
		ID: 1, Username: "alice1", ContentType: "videos",
		CreatedAt:   time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC),
		Generations: []int64{1, 2, 3}, FavoriteGenerations: []int64{2},
	}, nil
}

func (f *fakeClient) ChangePassword(_ context.Context, _, next string) error {
	f.password = next
	return f.call("passwd")
}

func (f *fakeClient) DeleteAccount(_ context.Context, password string) error {
	f.password = password
	return f.call("delete")
}

func (f *fakeClient) UpdateSetting(_ context.Context, s models.Setting, v string) error {
	f.setting, f.value = s, v
	return f.call("setting")
}

func (f *fakeClient) Generate(_ context.Context, kind models.Kind, prompt string) (*models.GenerateResult, error) {
	f.kind, f.prompt = kind, prompt
	if err := f.call("generate"); err != nil {
		return nil, err
	}
	msg, _ := json.Marshal([]string{"first", "second"})
	return &models.GenerateResult{ID: 9, Message: msg}, nil
}

func (f *fakeClient) ChangeTone(_ context.Context, text, tone string) (string, error) {
	f.tone = tone
	if err := f.call("tone"); err != nil {
		return "", err
	}
	return "rewritten: " + text, nil
}

func (f *fakeClient) History(context.Context) ([]*models.Generation, error) {
	return f.gens, f.call("history")
}

func (f *fakeClient) Saved(context.Context) ([]*models.Generation, error) {
	return f.gens, f.call("saved")
}

func (f *fakeClient) Generation(_ context.Context, id int64) (*models.Generation, error) {
	f.id = id
	if err := f.call("show"); err != nil {
		return nil, err
	}
	return &models.Generation{ID: id, Type: "newsletter", Content: `{"subject":"S","title":"T","content":["p1"]}`}, nil
}

func (f *fakeClient) Save(_ context.Context, id int64) error {
	f.id = id
	return f.call("save")
}

func (f *fakeClient) Unsave(_ context.Context, id int64) error {
	f.id = id
	return f.call("unsave")
}

func (f *fakeClient) ExportDownload(_ context.Context, format string, saved bool) (*models.ExportFile, error) {
	f.format, f.saved = format, saved
	if err := f.call("export"); err != nil {
		return nil, err
	}
	return &models.ExportFile{Name: "cocreate-alice1-generations-20250101.json", Body: []byte(`{"generations":[]}`)}, nil
}

func (f *fakeClient) ExportUpload(_ context.Context, format string, saved bool) (*models.Upload, error) {
	f.format, f.saved = format, saved
	if err := f.call("upload"); err != nil {
		return nil, err
	}
	return &models.Upload{Key: "exports/1/x.json", URL: "https://s3.test/x", ExpiresAt: time.Now().Add(15 * time.Minute)}, nil
}

var _ client.Client = (*fakeClient)(nil)

// newTestApp wires an App to fc and an in-memory session store; input feeds
// interactive prompts.
func newTestApp(t *testing.T, fc *fakeClient, input string) *App {
	t.Helper()
	db, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerURL = testServer

	return &App{
		config:      cfg,
		client:      fc,
		authService: services.NewAuthService(fc, db, testServer),
		reader:      rdr(input),
	}
}

// run executes args against a and returns what the command printed.
func run(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(a)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// login stores a session for alice1 without prompting.
func login(t *testing.T, a *App) {
	t.Helper()
	_, err := a.authService.Login(context.Background(), "alice1", "Passw0rd")
	require.NoError(t, err)
}

// stubPasswords makes getPassword return answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := getPassword
	t.Cleanup(func() { getPassword = old })
	i := 0
	getPassword = func(string, io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
}
