package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/auranotes/aura/internal/note"
)

// Session cookie name used by the Aura server.
const sessionCookie = "session"

// Sentinel errors surfaced to the UI. ErrUnauthenticated means the
// session is gone and the client must return to the login screen; it is
// never treated as a generic request failure.
var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Client is the typed proxy for the Aura note API. It owns no state
// beyond the base URL and the session cookie.
type Client struct {
	base    *url.URL
	http    *http.Client
	session string
	log     zerolog.Logger
}

// New builds a client for the given server base URL.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse server url")
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		log:  log.With().Str("component", "api").Logger(),
	}, nil
}

// SetSession installs a previously stored session cookie.
func (c *Client) SetSession(cookie string) { c.session = cookie }

// Session returns the current session cookie, empty when logged out.
func (c *Client) Session() string { return c.session }

// List fetches note snapshots, optionally filtered by a free-text query.
// Locked notes arrive with their content redacted by the server.
func (c *Client) List(ctx context.Context, query string) ([]note.Note, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}

	var dtos []noteDTO
	if err := c.doQuery(ctx, http.MethodGet, "/api/notes", q, nil, &dtos); err != nil {
		return nil, err
	}

	notes := make([]note.Note, 0, len(dtos))
	for _, d := range dtos {
		n, err := d.toModel()
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Create persists a new note and returns the server's snapshot of it.
func (c *Client) Create(ctx context.Context, p note.Payload) (note.Note, error) {
	var d noteDTO
	if err := c.do(ctx, http.MethodPost, "/api/notes", toPayloadDTO(p), &d); err != nil {
		return note.Note{}, err
	}
	return d.toModel()
}

// Update persists changes to an existing note.
func (c *Client) Update(ctx context.Context, id string, p note.Payload) (note.Note, error) {
	var d noteDTO
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+id, toPayloadDTO(p), &d); err != nil {
		return note.Note{}, err
	}
	return d.toModel()
}

// Delete removes a note.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+id, nil, nil)
}

// Unlock submits the password challenge for a locked note. On success the
// server returns the full, revealed snapshot. Any rejection reads as
// ErrInvalidPassword; retry limits are the server's concern.
func (c *Client) Unlock(ctx context.Context, id, password string) (note.Note, error) {
	body := map[string]string{"password": password}

	var d noteDTO
	err := c.do(ctx, http.MethodPost, "/api/notes/"+id+"/unlock", body, &d)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) || isStatusError(err) {
			return note.Note{}, ErrInvalidPassword
		}
		return note.Note{}, err
	}
	return d.toModel()
}

// Login authenticates and captures the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}

	resp, err := c.roundTrip(ctx, http.MethodPost, "/api/auth/login", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrInvalidCredentials
	}
	if resp.StatusCode >= 300 {
		return errors.Errorf("login: unexpected status %d", resp.StatusCode)
	}

	for _, ck := range resp.Cookies() {
		if ck.Name == sessionCookie {
			c.session = ck.Value
		}
	}
	if c.session == "" {
		return errors.New("login: no session cookie in response")
	}
	return nil
}

// Logout ends the session server-side and drops the local cookie either way.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.session = ""
	if errors.Is(err, ErrUnauthenticated) {
		return nil
	}
	return err
}

// statusError carries a non-2xx status that is not the 401 sentinel.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return "unexpected status " + http.StatusText(e.status)
}

func isStatusError(err error) bool {
	var se *statusError
	return errors.As(err, &se)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return c.roundTripQuery(ctx, method, path, nil, body)
}

func (c *Client) roundTripQuery(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		rd = bytes.NewReader(buf)
	}

	u := c.base.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.session})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("request")
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doQuery(ctx, method, path, nil, body, out)
}

func (c *Client) doQuery(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.roundTripQuery(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	if resp.StatusCode >= 300 {
		return errors.Wrapf(&statusError{status: resp.StatusCode}, "%s %s", method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "decode %s %s response", method, path)
		}
	}
	return nil
}
