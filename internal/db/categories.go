package db

import (
	"context"
	"fmt"
	"strings"
)

// ListCategories retrieves all categories ordered by name
func (db *DB) ListCategories(ctx context.Context) ([]*Categorie, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, name FROM categorie ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*Categorie{}
	for rows.Next() {
		c := &Categorie{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetCategoriesByIDs returns the categories matching ids. Unknown ids are
// simply absent from the result.
func (db *DB) GetCategoriesByIDs(ctx context.Context, ids []int64) ([]Categorie, error) {
	if len(ids) == 0 {
		return []Categorie{}, nil
	}

	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}

	query := fmt.Sprintf("SELECT id, name FROM categorie WHERE id IN (%s) ORDER BY name ASC", strings.Join(placeholders, ", "))
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Categorie{}
	for rows.Next() {
		var c Categorie
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// CreateCategorie inserts a categorie, setting its ID
func (db *DB) CreateCategorie(ctx context.Context, c *Categorie) error {
	res, err := db.ExecContext(ctx, "INSERT INTO categorie (name) VALUES (?)", c.Name)
	if err != nil {
		return fmt.Errorf("insert categorie %q: %w", c.Name, err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

// ListPlaylists retrieves all playlists ordered by name
func (db *DB) ListPlaylists(ctx context.Context) ([]*Playlist, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, name, description FROM playlist ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	playlists := []*Playlist{}
	for rows.Next() {
		p := &Playlist{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}

	return playlists, rows.Err()
}

// GetPlaylist retrieves a playlist by ID; a missing row wraps sql.ErrNoRows
func (db *DB) GetPlaylist(ctx context.Context, id int64) (*Playlist, error) {
	p := &Playlist{}
	err := db.QueryRowContext(ctx, "SELECT id, name, description FROM playlist WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Description)
	if err != nil {
		return nil, fmt.Errorf("get playlist %d: %w", id, err)
	}
	return p, nil
}

// CreatePlaylist inserts a playlist, setting its ID
func (db *DB) CreatePlaylist(ctx context.Context, p *Playlist) error {
	res, err := db.ExecContext(ctx, "INSERT INTO playlist (name, description) VALUES (?, ?)", p.Name, p.Description)
	if err != nil {
		return fmt.Errorf("insert playlist %q: %w", p.Name, err)
	}
	p.ID, err = res.LastInsertId()
	return err
}
