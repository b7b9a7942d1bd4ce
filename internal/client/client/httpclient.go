package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/cocreate/internal/client/models"
	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/google/uuid"
)

// RequestIDHeader is read by the server's request id middleware.
const RequestIDHeader = "X-Request-Id"

type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Success bool            `json:"success"`
	Message json.RawMessage `json:"message"`
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}
	return req, nil
}

func (c *HTTPClient) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

// apiError builds the error for a failed response from its envelope.
func apiError(status int, body []byte) error {
	var env envelope
	msg := http.StatusText(status)
	if err := json.Unmarshal(body, &env); err == nil {
		var s string
		if json.Unmarshal(env.Message, &s) == nil && s != "" {
			msg = s
		}
	}
	return &APIError{Status: status, Message: msg}
}

// do sends body as JSON and decodes the response envelope into out (which
// may be nil). Payload keys are decoded from the same object.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var env envelope
	if resp.StatusCode != http.StatusOK || json.Unmarshal(data, &env) != nil || !env.Success {
		return apiError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*models.Session, error) {
	var out models.Session
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.Session, error) {
	var out models.Session
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.Profile, error) {
	var out struct {
		User *models.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/user", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, next string) error {
	return c.do(ctx, http.MethodPost, "/user/password", map[string]string{
		"current_password": current,
		"new_password":     next,
	}, nil)
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, password string) error {
	return c.do(ctx, http.MethodDelete, "/user", map[string]string{"password": password}, nil)
}

func (c *HTTPClient) UpdateSetting(ctx context.Context, setting models.Setting, value string) error {
	return c.do(ctx, http.MethodPost, "/settings/"+string(setting), map[string]string{setting.Field(): value}, nil)
}

func (c *HTTPClient) Generate(ctx context.Context, kind models.Kind, prompt string) (*models.GenerateResult, error) {
	var out models.GenerateResult
	if err := c.do(ctx, http.MethodPost, "/generate/"+string(kind), map[string]string{"prompt": prompt}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChangeTone(ctx context.Context, text, tone string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/generate/change-tone", map[string]string{"text": text, "tone": tone}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) History(ctx context.Context) ([]*models.Generation, error) {
	var out struct {
		Generations []*models.Generation `json:"generations"`
	}
	if err := c.do(ctx, http.MethodGet, "/generations", nil, &out); err != nil {
		return nil, err
	}
	return out.Generations, nil
}

func (c *HTTPClient) Saved(ctx context.Context) ([]*models.Generation, error) {
	var out struct {
		Generations []*models.Generation `json:"saved_generations"`
	}
	if err := c.do(ctx, http.MethodGet, "/generations/saved", nil, &out); err != nil {
		return nil, err
	}
	return out.Generations, nil
}

func (c *HTTPClient) Generation(ctx context.Context, id int64) (*models.Generation, error) {
	var out struct {
		Generation *models.Generation `json:"generation"`
	}
	if err := c.do(ctx, http.MethodGet, "/generations/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return out.Generation, nil
}

func (c *HTTPClient) Save(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, "/generations/save", map[string]int64{"gen_id": id}, nil)
}

func (c *HTTPClient) Unsave(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, "/generations/unsave", map[string]int64{"gen_id": id}, nil)
}

// ExportDownload fetches a rendered export. The file name comes from the
// Content-Disposition header.
func (c *HTTPClient) ExportDownload(ctx context.Context, format string, saved bool) (*models.ExportFile, error) {
	q := url.Values{}
	q.Set("format", format)
	q.Set("saved", strconv.FormatBool(saved))

	req, err := c.newRequest(ctx, http.MethodGet, "/generations/export?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}

	name := "export"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return &models.ExportFile{Name: name, ContentType: resp.Header.Get("Content-Type"), Body: body}, nil
}

func (c *HTTPClient) ExportUpload(ctx context.Context, format string, saved bool) (*models.Upload, error) {
	var out models.Upload
	err := c.do(ctx, http.MethodPost, "/generations/export", map[string]any{"format": format, "saved": saved}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// IsUnavailable reports whether err means the server could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
