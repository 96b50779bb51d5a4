package oauth

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/mediatekformation/internal/config"
	"github.com/mediatekformation/internal/constants"
	"github.com/mediatekformation/internal/domain"
	"golang.org/x/oauth2"
)

// Keycloak starts an authorization-code login against a Keycloak realm
type Keycloak struct {
	cfg *oauth2.Config
}

// NewKeycloak builds the client registration for a realm. Nothing is
// contacted until the browser follows the authorization URL.
func NewKeycloak(kc config.KeycloakConfig, baseURL string) *Keycloak {
	// The realm is a single path segment
	realmURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect", strings.TrimRight(kc.URL, "/"), url.PathEscape(kc.Realm))
	return &Keycloak{
		cfg: &oauth2.Config{
			ClientID:     kc.ClientID,
			ClientSecret: kc.ClientSecret,
			RedirectURL:  baseURL + "/oauth/callback",
			Scopes:       []string{"openid"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  realmURL + "/auth",
				TokenURL: realmURL + "/token",
			},
		},
	}
}

// AuthCodeURL returns the Keycloak authorization URL carrying state
func (k *Keycloak) AuthCodeURL(state string) (string, error) {
	if state == "" {
		return "", fmt.Errorf("empty oauth state")
	}
	return k.cfg.AuthCodeURL(state), nil
}

// Registry resolves login delegates by client name
type Registry struct {
	mu      sync.RWMutex
	clients map[string]domain.LoginDelegate
}

// NewRegistry registers the Keycloak client when its configuration is complete
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{clients: make(map[string]domain.LoginDelegate)}
	if cfg.OAuth.Keycloak.Enabled() {
		r.Add(constants.KeycloakClientName, NewKeycloak(cfg.OAuth.Keycloak, cfg.BaseURL))
	}
	return r
}

// Add registers a delegate under name, replacing any previous one
func (r *Registry) Add(name string, delegate domain.LoginDelegate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = delegate
}

// Client returns the delegate registered under name
func (r *Registry) Client(name string) (domain.LoginDelegate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	delegate, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("oauth client %q: %w", name, domain.ErrOAuthNotConfigured)
	}
	return delegate, nil
}
