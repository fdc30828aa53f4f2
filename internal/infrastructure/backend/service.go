// Package backend is the HTTP client for the backend of record, which owns
// user records, password hashing and email delivery. Every response is
// mapped onto the autherr taxonomy here so nothing above this package sees
// raw transport errors or status codes.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/readbacklabs/readback-web/internal/autherr"
	"github.com/readbacklabs/readback-web/internal/config"
	"github.com/rs/zerolog/log"
)

type Service struct {
	client  *http.Client
	baseURL string
}

func NewService(cfg config.BackendConfig) *Service {
	return &Service{
		client:  &http.Client{},
		baseURL: cfg.BaseURL,
	}
}

// Tokens is the credential pair minted at sign-in.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Profile is the user's public-facing record, owned by the backend.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
	Avatar      string `json:"avatar,omitempty"`
	LastLogin   string `json:"last_login,omitempty"`
	DateJoined  string `json:"date_joined,omitempty"`
}

// SignUpRequest is the new-account payload relayed to the backend.
type SignUpRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// OAuthExchange is the result of redeeming a one-time OAuth hand-off token
// minted by the backend's provider callback.
type OAuthExchange struct {
	Access      string `json:"access"`
	Provider    string `json:"provider"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
}

type errorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// SignIn exchanges email/password for a fresh credential pair.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Tokens, error) {
	body := map[string]string{"email": email, "password": password}

	resp, err := s.do(ctx, http.MethodPost, "/sign-in", "", jsonBody(body))
	if err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.signInError(resp)
	}

	var tokens Tokens
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	return &tokens, nil
}

// Renew exchanges a renewal credential for a fresh bearer credential. Any
// rejection is terminal for that renewal credential.
func (s *Service) Renew(ctx context.Context, refresh string) (string, error) {
	body := map[string]string{"refresh": refresh}

	resp, err := s.do(ctx, http.MethodPost, "/renew", "", jsonBody(body))
	if err != nil {
		return "", autherr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "", autherr.UpstreamUnavailable(fmt.Errorf("renew returned %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return "", autherr.RenewalInvalid()
	}

	var result struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", autherr.UpstreamUnavailable(err)
	}
	return result.Access, nil
}

// FetchProfile returns the authenticated user's profile.
func (s *Service) FetchProfile(ctx context.Context, bearer string) (*Profile, error) {
	resp, err := s.do(ctx, http.MethodGet, "/profile", bearer, nil)
	if err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.authedError(resp)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	return &profile, nil
}

// UpdateProfile relays a partial profile update and returns the updated
// record. The patch body is treated as opaque JSON.
func (s *Service) UpdateProfile(ctx context.Context, bearer string, patch json.RawMessage) (*Profile, error) {
	resp, err := s.do(ctx, http.MethodPatch, "/profile", bearer, bytes.NewReader(patch))
	if err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.authedError(resp)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	return &profile, nil
}

// UploadAvatar streams an avatar payload to the backend unchanged.
func (s *Service) UploadAvatar(ctx context.Context, bearer, contentType string, body []byte) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+"/profile/avatar", bytes.NewReader(body))
	if err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.authedError(resp)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	return &profile, nil
}

// SignUp relays a new-account registration. The account stays pending until
// the activation email is confirmed.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) error {
	return s.relay(ctx, "/sign-up", req)
}

// Activate confirms an email activation token.
func (s *Service) Activate(ctx context.Context, token string) error {
	return s.relay(ctx, "/activate", map[string]string{"token": token})
}

// ResendActivation requests a fresh activation email.
func (s *Service) ResendActivation(ctx context.Context, email string) error {
	return s.relay(ctx, "/activate/resend", map[string]string{"email": email})
}

// RequestPasswordReset triggers the reset email for an account.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	return s.relay(ctx, "/password-reset", map[string]string{"email": email})
}

// ConfirmPasswordReset completes a reset with the emailed token.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	return s.relay(ctx, "/password-reset/confirm", map[string]string{"token": token, "password": password})
}

// ExchangeOAuthToken redeems the one-time hand-off token the backend's
// provider callback appends to the landing redirect.
func (s *Service) ExchangeOAuthToken(ctx context.Context, token string) (*OAuthExchange, error) {
	resp, err := s.do(ctx, http.MethodPost, "/oauth/exchange", "", jsonBody(map[string]string{"token": token}))
	if err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.authedError(resp)
	}

	var result OAuthExchange
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	return &result, nil
}

// ListUsers returns the raw admin user listing. Query is passed through
// unmodified (pagination, search).
func (s *Service) ListUsers(ctx context.Context, bearer, rawQuery string) (json.RawMessage, error) {
	path := "/admin/users"
	if rawQuery != "" {
		path += "?" + rawQuery
	}

	resp, err := s.do(ctx, http.MethodGet, path, bearer, nil)
	if err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.authedError(resp)
	}
	return readRaw(resp.Body)
}

// UpdateUser relays an admin update for a single user.
func (s *Service) UpdateUser(ctx context.Context, bearer, id string, patch json.RawMessage) (json.RawMessage, error) {
	resp, err := s.do(ctx, http.MethodPatch, "/admin/users/"+id, bearer, bytes.NewReader(patch))
	if err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.authedError(resp)
	}
	return readRaw(resp.Body)
}

func (s *Service) relay(ctx context.Context, path string, body interface{}) error {
	resp, err := s.do(ctx, http.MethodPost, path, "", jsonBody(body))
	if err != nil {
		return autherr.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return s.authedError(resp)
}

func (s *Service) do(ctx context.Context, method, path, bearer string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	log.Debug().Str("method", method).Str("path", path).Msg("Backend request")
	return s.client.Do(req)
}

// signInError maps a non-200 sign-in response onto the structured error
// contract the UI renders targeted guidance from.
func (s *Service) signInError(resp *http.Response) *autherr.Error {
	if resp.StatusCode >= 500 {
		return autherr.UpstreamUnavailable(fmt.Errorf("sign-in returned %d", resp.StatusCode))
	}

	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)

	e := autherr.CredentialRejected(body.Detail)
	e.Code = body.Code

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		if e.Code == "" {
			e.Code = "rate-limited"
		}
		if retry := resp.Header.Get("Retry-After"); retry != "" {
			e.Details = map[string]string{"retry_after": retry}
		}
	case e.Code == "":
		e.Code = "invalid-credentials"
	}

	if e.Message == "credential rejected" {
		e.Message = "invalid email or password"
	}
	return e
}

// authedError maps a non-2xx response on a bearer-authenticated or relay
// endpoint onto the taxonomy.
func (s *Service) authedError(resp *http.Response) *autherr.Error {
	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return autherr.CredentialRejected(body.Detail)
	case resp.StatusCode == http.StatusForbidden:
		return autherr.PermissionDenied(body.Detail)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		e := autherr.ValidationError(body.Detail)
		if e.Message == "" {
			e.Message = "invalid request"
		}
		if body.Code != "" {
			e.Code = body.Code
		}
		return e
	default:
		return autherr.UpstreamUnavailable(fmt.Errorf("backend returned %d", resp.StatusCode))
	}
}

func jsonBody(v interface{}) io.Reader {
	data, err := json.Marshal(v)
	if err != nil {
		return bytes.NewReader(nil)
	}
	return bytes.NewReader(data)
}

func readRaw(r io.Reader) (json.RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, autherr.UpstreamUnavailable(err)
	}
	return json.RawMessage(data), nil
}
