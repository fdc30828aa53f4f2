package config

import (
	"errors"
)

// AuthConfig carries the signing key shared out-of-band with the backend of
// record. The key is used only to read claims out of bearer credentials; the
// backend remains the authority on their validity.
type AuthConfig struct {
	SigningKey []byte
}

func loadAuthConfig() (AuthConfig, error) {
	secret := GetEnvOrDefault("JWT_SECRET", "")
	if secret == "" {
		return AuthConfig{}, errors.New("JWT_SECRET is required")
	}
	return AuthConfig{SigningKey: []byte(secret)}, nil
}
