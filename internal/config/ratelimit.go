package config

import (
	"strconv"
	"time"
)

// RateLimitConfig controls the sign-in attempt limiter.
type RateLimitConfig struct {
	Enabled bool
	Window  time.Duration
	MaxHits int
}

func loadRateLimitConfig() RateLimitConfig {
	maxHits, err := strconv.Atoi(GetEnvOrDefault("SIGNIN_RATELIMIT_MAX", "10"))
	if err != nil || maxHits <= 0 {
		maxHits = 10
	}

	windowSecs, err := strconv.Atoi(GetEnvOrDefault("SIGNIN_RATELIMIT_WINDOW", "60"))
	if err != nil || windowSecs <= 0 {
		windowSecs = 60
	}

	return RateLimitConfig{
		Enabled: GetEnvOrDefault("SIGNIN_RATELIMIT_ENABLED", "true") == "true",
		Window:  time.Duration(windowSecs) * time.Second,
		MaxHits: maxHits,
	}
}
