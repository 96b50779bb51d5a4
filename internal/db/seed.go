package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mediatekformation/internal/constants"
	"gopkg.in/yaml.v3"
)

// Fixtures is the YAML document accepted by the seed command
type Fixtures struct {
	Playlists  []Playlist         `yaml:"playlists"`
	Categories []Categorie        `yaml:"categories"`
	Formations []FormationFixture `yaml:"formations"`
}

// FormationFixture references its playlist and categories by name
type FormationFixture struct {
	Title       string   `yaml:"title"`
	PublishedAt string   `yaml:"published_at"`
	Description string   `yaml:"description"`
	VideoID     string   `yaml:"video_id"`
	Playlist    string   `yaml:"playlist"`
	Categories  []string `yaml:"categories"`
}

// SeedResult counts the rows inserted by Seed
type SeedResult struct {
	Playlists  int
	Categories int
	Formations int
}

// ParseFixtures decodes a fixtures document
func ParseFixtures(r io.Reader) (*Fixtures, error) {
	var fixtures Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fixtures); err != nil {
		if err == io.EOF {
			return &fixtures, nil
		}
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}
	return &fixtures, nil
}

// Seed inserts the fixtures in a single transaction
func (db *DB) Seed(ctx context.Context, fixtures *Fixtures) (SeedResult, error) {
	var result SeedResult

	err := db.withTx(ctx, func(tx *sql.Tx) error {
		playlistIDs := make(map[string]int64, len(fixtures.Playlists))
		for _, p := range fixtures.Playlists {
			res, err := tx.ExecContext(ctx, "INSERT INTO playlist (name, description) VALUES (?, ?)", p.Name, p.Description)
			if err != nil {
				return fmt.Errorf("insert playlist %q: %w", p.Name, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			playlistIDs[p.Name] = id
			result.Playlists++
		}

		categorieIDs := make(map[string]int64, len(fixtures.Categories))
		for _, c := range fixtures.Categories {
			res, err := tx.ExecContext(ctx, "INSERT INTO categorie (name) VALUES (?)", c.Name)
			if err != nil {
				return fmt.Errorf("insert categorie %q: %w", c.Name, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			categorieIDs[c.Name] = id
			result.Categories++
		}

		for _, f := range fixtures.Formations {
			playlistID, ok := playlistIDs[f.Playlist]
			if !ok {
				return fmt.Errorf("formation %q references unknown playlist %q", f.Title, f.Playlist)
			}

			publishedAt, err := time.Parse(constants.DateLayout, f.PublishedAt)
			if err != nil {
				return fmt.Errorf("formation %q: invalid published_at: %w", f.Title, err)
			}

			res, err := tx.ExecContext(ctx,
				"INSERT INTO formation (playlist_id, published_at, title, description, video_id) VALUES (?, ?, ?, ?, ?)",
				playlistID, publishedAt.UTC(), f.Title, f.Description, f.VideoID,
			)
			if err != nil {
				return fmt.Errorf("insert formation %q: %w", f.Title, err)
			}
			formationID, err := res.LastInsertId()
			if err != nil {
				return err
			}

			ids := make([]int64, 0, len(f.Categories))
			for _, name := range f.Categories {
				id, ok := categorieIDs[name]
				if !ok {
					return fmt.Errorf("formation %q references unknown categorie %q", f.Title, name)
				}
				ids = append(ids, id)
			}
			if err := replaceCategories(ctx, tx, formationID, ids); err != nil {
				return err
			}
			result.Formations++
		}

		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	slog.InfoContext(ctx, "fixtures loaded",
		"playlists", result.Playlists,
		"categories", result.Categories,
		"formations", result.Formations,
	)
	return result, nil
}
