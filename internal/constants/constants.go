package constants

import "time"

// Sort directions accepted by the listing routes
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// Table aliases accepted by the sort and search routes
const (
	TableNone       = "" // Empty string means the formation table itself
	TablePlaylist   = "playlist"
	TableCategories = "categories"
)

// Field names accepted by the sort and search routes
const (
	FieldTitle       = "title"
	FieldPublishedAt = "publishedAt"
	FieldName        = "name"
	FieldID          = "id"
)

// Form and query parameter names
const (
	SearchParam = "recherche"
)

// Formation field limits
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 5000
	MaxVideoIDLength     = 20
)

// DateLayout is the layout used by the formation form for the publication date
const DateLayout = "2006-01-02"

// OAuth constants
const (
	// KeycloakClientName is the name the login route resolves in the client registry
	KeycloakClientName = "keycloak"

	// OAuthStateCookie holds the state parameter between login and callback
	OAuthStateCookie = "oauth_state"

	// OAuthStateTTL bounds how long a login attempt may take
	OAuthStateTTL = 10 * time.Minute
)

// Environment names
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)
