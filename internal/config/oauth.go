package config

// ProviderConfig is the OAuth client registration for one identity provider.
// The redirect URI points at the backend of record's own callback; this
// frontend only builds the authorization URL.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	Scopes       []string
}

// OAuthConfig holds the supported identity providers keyed by name.
type OAuthConfig struct {
	Providers   map[string]ProviderConfig
	RedirectURL string
}

func loadOAuthConfig() OAuthConfig {
	providers := make(map[string]ProviderConfig)

	if id := GetEnvOrDefault("GOOGLE_CLIENT_ID", ""); id != "" {
		providers["google"] = ProviderConfig{
			ClientID:     id,
			ClientSecret: GetEnvOrDefault("GOOGLE_CLIENT_SECRET", ""),
			AuthURL:      "https://accounts.google.com/o/oauth2/auth",
			TokenURL:     "https://oauth2.googleapis.com/token",
			Scopes:       []string{"openid", "email", "profile"},
		}
	}

	if id := GetEnvOrDefault("DISCORD_CLIENT_ID", ""); id != "" {
		providers["discord"] = ProviderConfig{
			ClientID:     id,
			ClientSecret: GetEnvOrDefault("DISCORD_CLIENT_SECRET", ""),
			AuthURL:      "https://discord.com/oauth2/authorize",
			TokenURL:     "https://discord.com/api/oauth2/token",
			Scopes:       []string{"identify", "email"},
		}
	}

	return OAuthConfig{
		Providers:   providers,
		RedirectURL: GetEnvOrDefault("OAUTH_REDIRECT_URL", ""),
	}
}
