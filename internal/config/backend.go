package config

import (
	"errors"
	"strings"
)

// BackendConfig points at the backend of record, which owns user storage,
// password hashing and email delivery.
type BackendConfig struct {
	BaseURL string
}

func loadBackendConfig() (BackendConfig, error) {
	url := GetEnvOrDefault("BACKEND_URL", "")
	if url == "" {
		return BackendConfig{}, errors.New("BACKEND_URL is required")
	}
	return BackendConfig{BaseURL: strings.TrimRight(url, "/")}, nil
}
