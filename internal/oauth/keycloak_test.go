package oauth

import (
	"net/url"
	"testing"

	"github.com/mediatekformation/internal/config"
	"github.com/mediatekformation/internal/constants"
	"github.com/mediatekformation/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseURL: "https://formations.example.com",
		OAuth: config.OAuthConfig{
			Keycloak: config.KeycloakConfig{
				URL:          "https://sso.example.com",
				Realm:        "mediatek",
				ClientID:     "formations-admin",
				ClientSecret: "s3cret",
			},
		},
	}
}

func TestKeycloak_AuthCodeURL(t *testing.T) {
	cfg := testConfig()
	kc := NewKeycloak(cfg.OAuth.Keycloak, cfg.BaseURL)

	raw, err := kc.AuthCodeURL("state-123")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "sso.example.com", u.Host)
	assert.Equal(t, "/realms/mediatek/protocol/openid-connect/auth", u.Path)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "formations-admin", q.Get("client_id"))
	assert.Equal(t, "https://formations.example.com/oauth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "openid", q.Get("scope"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Empty(t, q.Get("client_secret"))
}

func TestKeycloak_EscapesRealm(t *testing.T) {
	cfg := testConfig()
	cfg.OAuth.Keycloak.URL = "https://sso.example.com/"
	cfg.OAuth.Keycloak.Realm = "médiatek formations/../master?x=1"
	kc := NewKeycloak(cfg.OAuth.Keycloak, cfg.BaseURL)

	raw, err := kc.AuthCodeURL("state-123")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "sso.example.com", u.Host)
	assert.Equal(t, "/realms/m%C3%A9diatek%20formations%2F..%2Fmaster%3Fx=1/protocol/openid-connect/auth", u.EscapedPath())
	assert.Equal(t, "/realms/médiatek formations/../master?x=1/protocol/openid-connect/auth", u.Path)
	assert.Equal(t, "state-123", u.Query().Get("state"))
	assert.Empty(t, u.Query().Get("x"))

	token, err := url.Parse(kc.cfg.Endpoint.TokenURL)
	require.NoError(t, err)
	assert.Equal(t, "/realms/m%C3%A9diatek%20formations%2F..%2Fmaster%3Fx=1/protocol/openid-connect/token", token.EscapedPath())
}

func TestKeycloak_AuthCodeURL_RequiresState(t *testing.T) {
	cfg := testConfig()
	_, err := NewKeycloak(cfg.OAuth.Keycloak, cfg.BaseURL).AuthCodeURL("")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(testConfig())
	delegate, err := r.Client(constants.KeycloakClientName)
	require.NoError(t, err)
	assert.IsType(t, &Keycloak{}, delegate)

	empty := NewRegistry(&config.Config{BaseURL: "http://localhost:8080"})
	_, err = empty.Client(constants.KeycloakClientName)
	assert.ErrorIs(t, err, domain.ErrOAuthNotConfigured)
}
