package db

import (
	"time"
)

// Formation represents a training course record
type Formation struct {
	ID          int64       `json:"id" db:"id" yaml:"id"`
	PublishedAt time.Time   `json:"published_at" db:"published_at" yaml:"published_at"`
	Title       string      `json:"title" db:"title" yaml:"title"`
	Description string      `json:"description" db:"description" yaml:"description"`
	VideoID     string      `json:"video_id" db:"video_id" yaml:"video_id"`
	PlaylistID  int64       `json:"playlist_id" db:"playlist_id" yaml:"playlist_id"`
	Playlist    *Playlist   `json:"playlist,omitempty" db:"-" yaml:"-"`
	Categories  []Categorie `json:"categories" db:"-" yaml:"-"`
}

// CategorieIDs returns the ids of the categories attached to the formation
func (f *Formation) CategorieIDs() []int64 {
	ids := make([]int64, 0, len(f.Categories))
	for _, c := range f.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// Categorie is a lookup entity formations are tagged with
type Categorie struct {
	ID   int64  `json:"id" db:"id" yaml:"id"`
	Name string `json:"name" db:"name" yaml:"name"`
}

// Playlist groups formations; every formation belongs to exactly one
type Playlist struct {
	ID          int64  `json:"id" db:"id" yaml:"id"`
	Name        string `json:"name" db:"name" yaml:"name"`
	Description string `json:"description" db:"description" yaml:"description"`
}

// NewFormation creates an empty formation, published today
func NewFormation() *Formation {
	now := time.Now().UTC()
	return &Formation{
		PublishedAt: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Categories:  []Categorie{},
	}
}
