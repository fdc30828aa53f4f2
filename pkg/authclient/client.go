// Package authclient is the session-state container a UI drives the
// frontend's auth endpoints through. It owns the authenticated/loading
// distinction so consumers never render authenticated-only affordances
// before the initial profile fetch resolves.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
)

// Status is the container's lifecycle state.
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusAuthenticated
	StatusUnauthenticated
)

// Profile is the authenticated user's client-visible record.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
	Avatar      string `json:"avatar,omitempty"`
}

// AuthError is the structured sign-in failure: a human message plus the
// machine-readable code the UI keys targeted guidance off, with an
// optional retry-after hint.
type AuthError struct {
	Message    string `json:"error"`
	Code       string `json:"code"`
	RetryAfter string `json:"retry_after,omitempty"`
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Paths navigated to after state changes.
const (
	HomePath  = "/home"
	LoginPath = "/login"
)

type Client struct {
	mu      sync.Mutex
	base    string
	http    *http.Client
	status  Status
	profile *Profile
}

// New builds a client against the frontend's base URL with its own cookie
// jar, standing in for the browser's cookie store.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		base:   baseURL,
		http:   &http.Client{Jar: jar},
		status: StatusUninitialized,
	}, nil
}

// Initialize performs the mount-time profile fetch. A failure is the
// expected "no session" outcome, not an error; the container just lands in
// StatusUnauthenticated.
func (c *Client) Initialize(ctx context.Context) {
	c.setStatus(StatusLoading)

	profile, err := c.fetchProfile(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = StatusUnauthenticated
		c.profile = nil
		return
	}
	c.status = StatusAuthenticated
	c.profile = profile
}

// SignIn authenticates and, on success, loads the profile. Returns the path
// to navigate to. On failure the structured *AuthError is returned for the
// caller to render.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})

	resp, err := c.post(ctx, "/api/auth/signin", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var authErr AuthError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&authErr); decodeErr != nil || authErr.Message == "" {
			authErr = AuthError{Message: "sign-in failed", Code: "unknown"}
		}
		return "", &authErr
	}

	profile, err := c.fetchProfile(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = StatusUnauthenticated
		return "", err
	}
	c.status = StatusAuthenticated
	c.profile = profile
	return HomePath, nil
}

// SignOut clears the server-side credentials and local state. Returns the
// path to navigate to.
func (c *Client) SignOut(ctx context.Context) (string, error) {
	resp, err := c.post(ctx, "/api/auth/signout", nil)
	if err != nil {
		return "", err
	}
	resp.Body.Close()

	c.mu.Lock()
	c.status = StatusUnauthenticated
	c.profile = nil
	c.mu.Unlock()
	return LoginPath, nil
}

// RefreshUser re-fetches the profile, used after profile edits.
func (c *Client) RefreshUser(ctx context.Context) (*Profile, error) {
	profile, err := c.fetchProfile(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.status = StatusAuthenticated
	c.profile = profile
	c.mu.Unlock()
	return profile, nil
}

// Status returns the current lifecycle state.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// User returns the cached profile, or nil outside StatusAuthenticated.
func (c *Client) User() *Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

func (c *Client) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

func (c *Client) fetchProfile(ctx context.Context) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/profile", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile fetch returned %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}
