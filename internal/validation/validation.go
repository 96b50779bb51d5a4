package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mediatekformation/internal/constants"
	"github.com/mediatekformation/internal/db"
	"github.com/mediatekformation/internal/domain"
)

var (
	// videoIDRegex allows the characters found in YouTube video ids
	videoIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Form field names, as posted by the add/edit templates
const (
	FieldTitle       = "title"
	FieldPublishedAt = "published_at"
	FieldDescription = "description"
	FieldVideoID     = "video_id"
	FieldPlaylist    = "playlist_id"
	FieldCategories  = "categories"
)

// ValidateTitle checks the formation title
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return fmt.Errorf("title must be %d characters or less", constants.MaxTitleLength)
	}
	return nil
}

// ValidatePublishedAt parses the publication date and rejects future dates.
// now is the reference instant; dates are compared at day granularity in UTC.
func ValidatePublishedAt(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("publication date cannot be empty")
	}

	date, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("publication date must be formatted as YYYY-MM-DD")
	}

	today := now.UTC()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return time.Time{}, fmt.Errorf("publication date cannot be in the future")
	}

	return date, nil
}

// ValidateDescription checks the description size
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > constants.MaxDescriptionLength {
		return fmt.Errorf("description must be %d characters or less", constants.MaxDescriptionLength)
	}
	return nil
}

// ValidateVideoID checks an optional video id
func ValidateVideoID(videoID string) error {
	if videoID == "" {
		return nil
	}
	if len(videoID) > constants.MaxVideoIDLength {
		return fmt.Errorf("video id must be %d characters or less", constants.MaxVideoIDLength)
	}
	if !videoIDRegex.MatchString(videoID) {
		return fmt.Errorf("video id must contain only letters, numbers, hyphens, and underscores")
	}
	return nil
}

// ParseID parses a positive database identifier
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid identifier %q", value)
	}
	return id, nil
}

// ValidateFormationInput checks every field of a submitted form and builds the
// formation it describes. References to playlists and categories are only
// checked for shape here; their existence is the caller's business. The
// returned formation is nil whenever errors is non-empty.
func ValidateFormationInput(input domain.FormationInput, now time.Time) (*db.Formation, domain.FieldErrors) {
	errs := domain.FieldErrors{}
	formation := &db.Formation{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		VideoID:     strings.TrimSpace(input.VideoID),
		Categories:  []db.Categorie{},
	}

	if err := ValidateTitle(formation.Title); err != nil {
		errs.Add(FieldTitle, err.Error())
	}

	publishedAt, err := ValidatePublishedAt(strings.TrimSpace(input.PublishedAt), now)
	if err != nil {
		errs.Add(FieldPublishedAt, err.Error())
	}
	formation.PublishedAt = publishedAt

	if err := ValidateDescription(formation.Description); err != nil {
		errs.Add(FieldDescription, err.Error())
	}

	if err := ValidateVideoID(formation.VideoID); err != nil {
		errs.Add(FieldVideoID, err.Error())
	}

	if strings.TrimSpace(input.PlaylistID) == "" {
		errs.Add(FieldPlaylist, "playlist is required")
	} else if id, err := ParseID(input.PlaylistID); err != nil {
		errs.Add(FieldPlaylist, "playlist is invalid")
	} else {
		formation.PlaylistID = id
	}

	seen := make(map[int64]bool, len(input.CategorieIDs))
	for _, raw := range input.CategorieIDs {
		id, err := ParseID(raw)
		if err != nil {
			errs.Add(FieldCategories, "categories contain an invalid value")
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		formation.Categories = append(formation.Categories, db.Categorie{ID: id})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return formation, nil
}
