// Package credentials is the cookie-backed store for the two first-party
// secrets: the short-lived bearer credential and the long-lived renewal
// credential. Pure storage; no validation happens here.
package credentials

import (
	"net/http"

	"github.com/readbacklabs/readback-web/internal/config"
)

type Service struct {
	cfg config.SessionConfig
}

func NewService(cfg config.SessionConfig) *Service {
	return &Service{cfg: cfg}
}

// Set writes both credentials. Each cookie's max-age equals the
// credential's nominal lifetime.
func (s *Service) Set(w http.ResponseWriter, bearer, renewal string) {
	s.write(w, s.cfg.BearerCookieName, bearer, int(s.cfg.BearerLifetime.Seconds()))
	s.write(w, s.cfg.RenewalCookieName, renewal, int(s.cfg.RenewalLifetime.Seconds()))
}

// SetBearer replaces only the bearer credential, as after a renewal. The
// lifetime matches a fresh sign-in.
func (s *Service) SetBearer(w http.ResponseWriter, bearer string) {
	s.write(w, s.cfg.BearerCookieName, bearer, int(s.cfg.BearerLifetime.Seconds()))
}

// Bearer returns the stored bearer credential or an empty string.
func (s *Service) Bearer(r *http.Request) string {
	return s.read(r, s.cfg.BearerCookieName)
}

// Renewal returns the stored renewal credential or an empty string.
func (s *Service) Renewal(r *http.Request) string {
	return s.read(r, s.cfg.RenewalCookieName)
}

// Clear overwrites both cookies with empty values and a negative max-age.
func (s *Service) Clear(w http.ResponseWriter) {
	s.write(w, s.cfg.BearerCookieName, "", -1)
	s.write(w, s.cfg.RenewalCookieName, "", -1)
}

func (s *Service) write(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Service) read(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
