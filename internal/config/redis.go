package config

// RedisConfig is optional; when the URL is empty the third-party session
// store falls back to in-memory storage.
type RedisConfig struct {
	URL      string
	Password string
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:      GetEnvOrDefault("REDIS_URL", ""),
		Password: GetEnvOrDefault("REDIS_PASSWORD", ""),
	}
}
