package domain

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mediatekformation/internal/constants"
	"github.com/mediatekformation/internal/db"
)

// ============================================================================
// Primary Ports (Application Use Cases)
// ============================================================================

// FormationService defines the primary port for the formations admin pages
type FormationService interface {
	List(ctx context.Context) (*Listing, error)
	Sort(ctx context.Context, field, order, table string) (*Listing, error)
	Search(ctx context.Context, field, value, table string) (*Listing, error)
	Get(ctx context.Context, id int64) (*db.Formation, error)
	Create(ctx context.Context, input FormationInput) (*db.Formation, error)
	Update(ctx context.Context, id int64, input FormationInput) (*db.Formation, error)
	Delete(ctx context.Context, id int64) error
	FormOptions(ctx context.Context) (*FormOptions, error)
}

// LoginDelegate defines the port to the external identity provider
type LoginDelegate interface {
	// AuthCodeURL returns the provider authorization URL carrying state
	AuthCodeURL(state string) (string, error)
}

// ============================================================================
// Request/Response Types
// ============================================================================

// Listing is everything the list page renders
type Listing struct {
	Formations []*db.Formation
	Categories []*db.Categorie
	Field      string // Echoed search field, empty for plain listings
	Table      string // Echoed table alias
	Value      string // Echoed search value
}

// FormOptions holds the choices offered by the add/edit forms
type FormOptions struct {
	Playlists  []*db.Playlist
	Categories []*db.Categorie
}

// FormationInput is the explicit shape of a submitted formation form. Every
// field arrives as text and is validated before a Formation is built.
type FormationInput struct {
	Title        string   `form:"title"`
	PublishedAt  string   `form:"published_at"`
	Description  string   `form:"description"`
	VideoID      string   `form:"video_id"`
	PlaylistID   string   `form:"playlist_id"`
	CategorieIDs []string `form:"categories"`
}

// HasCategorie reports whether the categorie is selected in the form
func (in FormationInput) HasCategorie(id int64) bool {
	want := formatID(id)
	for _, got := range in.CategorieIDs {
		if got == want {
			return true
		}
	}
	return false
}

// FieldErrors maps a form field name to its validation message
type FieldErrors map[string]string

// Add records the first message for a field
func (fe FieldErrors) Add(field, message string) {
	if _, exists := fe[field]; !exists {
		fe[field] = message
	}
}

// Encode renders the errors as a stable, human readable string
func (fe FieldErrors) Encode() string {
	v := url.Values{}
	for field, msg := range fe {
		v.Set(field, msg)
	}
	return v.Encode()
}

// FormValidationError carries per-field messages so the form can be re-rendered
type FormValidationError struct {
	Fields FieldErrors
}

func (e *FormValidationError) Error() string {
	return "invalid form: " + e.Fields.Encode()
}

// InputFromFormation pre-fills a form from a stored formation
func InputFromFormation(f *db.Formation) FormationInput {
	input := FormationInput{
		Title:       f.Title,
		Description: f.Description,
		VideoID:     f.VideoID,
	}
	if !f.PublishedAt.IsZero() {
		input.PublishedAt = f.PublishedAt.Format(constants.DateLayout)
	}
	if f.PlaylistID != 0 {
		input.PlaylistID = formatID(f.PlaylistID)
	}
	for _, id := range f.CategorieIDs() {
		input.CategorieIDs = append(input.CategorieIDs, formatID(id))
	}
	return input
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
