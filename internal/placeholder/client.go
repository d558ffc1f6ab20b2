// Package placeholder provides a client for a JSONPlaceholder-style users
// API: a read-only user collection plus a mock create endpoint.
package placeholder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zarlcorp/zdir/internal/user"
)

const defaultBaseURL = "https://jsonplaceholder.typicode.com"

// ErrNotFound is returned when the API has no user with the requested id.
var ErrNotFound = errors.New("user not found")

// Config holds client settings.
type Config struct {
	// BaseURL overrides the default API endpoint. Optional.
	BaseURL string
	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration
}

// Client communicates with the users API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a users API client.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}
}

// Users fetches the full remote user collection.
func (c *Client) Users(ctx context.Context) ([]user.User, error) {
	body, err := c.doGet(ctx, c.baseURL+"/users")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var users []user.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("list users: unmarshal: %w", err)
	}

	return users, nil
}

// User fetches a single user by id. Unknown ids yield ErrNotFound.
func (c *Client) User(ctx context.Context, id user.ID) (user.User, error) {
	body, err := c.doGet(ctx, c.baseURL+"/users/"+string(id))
	if err != nil {
		return user.User{}, fmt.Errorf("get user %s: %w", id, err)
	}

	var u user.User
	if err := json.Unmarshal(body, &u); err != nil {
		return user.User{}, fmt.Errorf("get user %s: unmarshal: %w", id, err)
	}
	if u.ID == "" {
		return user.User{}, fmt.Errorf("get user %s: %w", id, ErrNotFound)
	}

	return u, nil
}

// Create posts a candidate user. The endpoint returns a mock id that callers
// must not treat as durable; locally created users get their real id from
// the local id generator.
func (c *Client) Create(ctx context.Context, u user.User) (user.ID, error) {
	u.ID = ""
	payload, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("create user: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	var created struct {
		ID user.ID `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("create user: unmarshal: %w", err)
	}

	return created.ID, nil
}

func (c *Client) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
