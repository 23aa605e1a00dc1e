// Package client is a Go client for the employee admin API. A Session holds
// the token, attaches it to every request and clears it on any 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client calls the API on behalf of a Session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a Client for the API rooted at baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession(nil)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the returned token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	if err := c.session.SetToken(out.Token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	return &out, nil
}

// Logout forgets the token. Tokens are stateless so the server is not called.
func (c *Client) Logout() error {
	return c.session.Logout()
}

func (c *Client) Me(ctx context.Context) (*Principal, error) {
	var out Principal
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	var out Employee
	if err := c.do(ctx, http.MethodPost, "/employees", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	out := []Employee{}
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	var out Employee
	if err := c.do(ctx, http.MethodGet, "/employees/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (*Employee, error) {
	var out Employee
	if err := c.do(ctx, http.MethodPut, "/employees/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEmployee removes the record and returns the server confirmation message.
func (c *Client) DeleteEmployee(ctx context.Context, id string) (string, error) {
	var out messageResponse
	if err := c.do(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.session.Token()
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			if err := c.session.unauthorized(); err != nil {
				return errors.Join(apiErr, fmt.Errorf("clear token: %w", err))
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var env errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&env); err == nil && env.Error != "" {
		apiErr.Message = env.Error
	}
	return apiErr
}
