package config

// LoggingConfig gates verbose diagnostic output. Default is silent.
type LoggingConfig struct {
	Debug bool
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Debug: GetEnvOrDefault("DEBUG", "") == "true",
	}
}
