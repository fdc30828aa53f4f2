package config

import (
	"fmt"
)

// Config is the process-wide configuration, loaded once at startup and
// injected into every service constructor. Nothing reads the environment
// after Load returns.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Backend   BackendConfig
	OAuth     OAuthConfig
	Session   SessionConfig
	Redis     RedisConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
}

// Load reads the full configuration from the environment.
func Load() (*Config, error) {
	auth, err := loadAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("auth config: %w", err)
	}

	backend, err := loadBackendConfig()
	if err != nil {
		return nil, fmt.Errorf("backend config: %w", err)
	}

	return &Config{
		Server:    loadServerConfig(),
		Auth:      auth,
		Backend:   backend,
		OAuth:     loadOAuthConfig(),
		Session:   loadSessionConfig(),
		Redis:     loadRedisConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
	}, nil
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Addr: GetEnvOrDefault("LISTEN_ADDR", ":8080"),
	}
}
