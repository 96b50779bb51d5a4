package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mediatekformation/internal/constants"
	"github.com/mediatekformation/internal/domain"
)

// oauthLogin redirects the browser to the identity provider. The state is kept
// in a short-lived HttpOnly cookie for the callback to compare against.
func (s *Server) oauthLogin(c *gin.Context) {
	client, err := s.oauthClients.Client(constants.KeycloakClientName)
	if err != nil {
		s.handleServiceError(c, "oauth login", err)
		return
	}

	state := uuid.NewString()
	authURL, err := client.AuthCodeURL(state)
	if err != nil {
		s.handleServiceError(c, "oauth login", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.OAuthStateCookie, state, int(constants.OAuthStateTTL.Seconds()), "/oauth", "", s.config.OAuth.SecureCookie, true)

	s.logger.InfoContext(c.Request.Context(), "redirecting to identity provider", "client", constants.KeycloakClientName)
	c.Redirect(http.StatusFound, authURL)
}

// oauthCallback answers the provider redirect. No code exchange happens yet.
func (s *Server) oauthCallback(c *gin.Context) {
	s.handleServiceError(c, "oauth callback", domain.WrapNotImplemented("oauth callback"))
}

func (s *Server) logout(c *gin.Context) {
	s.handleServiceError(c, "logout", domain.WrapNotImplemented("logout"))
}
