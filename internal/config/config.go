package config

import (
	"os"
	"strings"

	"github.com/mediatekformation/internal/constants"
)

// Config holds the application configuration
type Config struct {
	ServerAddress string
	DatabasePath  string
	Environment   string
	BaseURL       string // Public base URL, used to build the OAuth redirect URI
	OAuth         OAuthConfig
}

// OAuthConfig holds the OAuth2 delegated login configuration
type OAuthConfig struct {
	Keycloak     KeycloakConfig
	SecureCookie bool
}

// KeycloakConfig holds the Keycloak client registration
type KeycloakConfig struct {
	URL          string // Server root, e.g. https://sso.example.com
	Realm        string
	ClientID     string
	ClientSecret string
}

// Enabled reports whether enough of the registration is present to start a login
func (k KeycloakConfig) Enabled() bool {
	return k.URL != "" && k.Realm != "" && k.ClientID != ""
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "./data/formations.db"),
		Environment:   getEnv("ENVIRONMENT", constants.EnvDevelopment),
		BaseURL:       strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		OAuth: OAuthConfig{
			SecureCookie: getEnv("OAUTH_SECURE_COOKIE", "false") == "true",
			Keycloak: KeycloakConfig{
				URL:          strings.TrimRight(os.Getenv("KEYCLOAK_URL"), "/"),
				Realm:        os.Getenv("KEYCLOAK_REALM"),
				ClientID:     os.Getenv("KEYCLOAK_CLIENT_ID"),
				ClientSecret: os.Getenv("KEYCLOAK_CLIENT_SECRET"),
			},
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
