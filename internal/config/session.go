package config

import (
	"time"
)

// SessionConfig holds the cookie names and lifetimes for the two credential
// cookies and the third-party session cookie.
type SessionConfig struct {
	BearerCookieName  string
	RenewalCookieName string
	SessionCookieName string

	BearerLifetime  time.Duration
	RenewalLifetime time.Duration
	SessionLifetime time.Duration

	// SecureCookies is enabled in production so the cookies are only sent
	// over HTTPS.
	SecureCookies bool
}

func loadSessionConfig() SessionConfig {
	return SessionConfig{
		BearerCookieName:  GetEnvOrDefault("BEARER_COOKIE_NAME", "bearer"),
		RenewalCookieName: GetEnvOrDefault("RENEWAL_COOKIE_NAME", "renewal"),
		SessionCookieName: GetEnvOrDefault("SESSION_COOKIE_NAME", "readback_session"),
		BearerLifetime:    time.Hour,
		RenewalLifetime:   7 * 24 * time.Hour,
		SessionLifetime:   30 * 24 * time.Hour,
		SecureCookies:     GetEnvOrDefault("ENV", "development") == "production",
	}
}
