package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Table aliases the repository knows how to join. Kept in sync with the
// listing allow-list of the domain package.
const (
	aliasPlaylist   = "playlist"
	aliasCategories = "categories"
)

// columnRegex guards the identifiers interpolated into ORDER BY and WHERE clauses
var columnRegex = regexp.MustCompile(`^[a-z]\.[a-z_]+$`)

const formationSelect = `SELECT f.id, f.published_at, f.title, f.description, f.video_id, f.playlist_id,
	p.id, p.name, p.description
	FROM formation f
	JOIN playlist p ON p.id = f.playlist_id`

const categoriesJoin = `
	JOIN formation_categorie fc ON fc.formation_id = f.id
	JOIN categorie c ON c.id = fc.categorie_id`

func checkColumn(column string) error {
	if !columnRegex.MatchString(column) {
		return fmt.Errorf("invalid column identifier %q", column)
	}
	return nil
}

// textColumns are ordered with the french collation instead of byte order
var textColumns = map[string]bool{
	"f.title": true,
	"p.name":  true,
	"c.name":  true,
}

func orderExpr(column string) string {
	if textColumns[column] {
		return column + " COLLATE " + collationFrench
	}
	return column
}

func checkDirection(dir string) (string, error) {
	switch strings.ToUpper(dir) {
	case "ASC":
		return "ASC", nil
	case "DESC":
		return "DESC", nil
	}
	return "", fmt.Errorf("invalid sort direction %q", dir)
}

// escapeLike escapes LIKE wildcards so the value matches literally
func escapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}

// FindAllFormationsOrderBy lists every formation ordered by a formation column
func (db *DB) FindAllFormationsOrderBy(ctx context.Context, column, dir string) ([]*Formation, error) {
	return db.FindAllFormationsOrderByTable(ctx, column, dir, "")
}

// FindAllFormationsOrderByTable lists every formation ordered by a column of
// a joined table. Only the playlist alias can be ordered on since it is
// many-to-one; ordering through categories would repeat rows.
func (db *DB) FindAllFormationsOrderByTable(ctx context.Context, column, dir, table string) ([]*Formation, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	direction, err := checkDirection(dir)
	if err != nil {
		return nil, err
	}
	if table != "" && table != aliasPlaylist {
		return nil, fmt.Errorf("cannot order formations through table %q", table)
	}

	query := fmt.Sprintf("%s ORDER BY %s %s, f.id ASC", formationSelect, orderExpr(column), direction)
	return db.queryFormations(ctx, query)
}

// FindFormationsByContainValue lists formations whose formation column
// contains value. An empty value lists everything.
func (db *DB) FindFormationsByContainValue(ctx context.Context, column, value string) ([]*Formation, error) {
	return db.FindFormationsByContainValueTable(ctx, column, value, "")
}

// FindFormationsByContainValueTable lists formations whose column in the
// joined table contains value, case-insensitively, most recent first. An
// empty value lists everything in the default order.
func (db *DB) FindFormationsByContainValueTable(ctx context.Context, column, value, table string) ([]*Formation, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if value == "" {
		return db.FindAllFormationsOrderBy(ctx, "f.title", "ASC")
	}

	join, err := joinFor(table)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`%s%s WHERE %s(%s) LIKE ? ESCAPE '\' GROUP BY f.id ORDER BY f.published_at DESC, f.id ASC`,
		formationSelect, join, foldFunction, column)
	return db.queryFormations(ctx, query, "%"+escapeLike(foldString(value))+"%")
}

// FindFormationsByExactValueTable lists formations whose column in the joined
// table equals value, most recent first. Used for identifier columns.
func (db *DB) FindFormationsByExactValueTable(ctx context.Context, column, value, table string) ([]*Formation, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if value == "" {
		return db.FindAllFormationsOrderBy(ctx, "f.title", "ASC")
	}

	join, err := joinFor(table)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`%s%s WHERE %s = ? GROUP BY f.id ORDER BY f.published_at DESC, f.id ASC`,
		formationSelect, join, column)
	return db.queryFormations(ctx, query, value)
}

func joinFor(table string) (string, error) {
	switch table {
	case "", aliasPlaylist:
		return "", nil
	case aliasCategories:
		return categoriesJoin, nil
	}
	return "", fmt.Errorf("unknown table alias %q", table)
}

// GetFormation retrieves a formation with its playlist and categories. A
// missing row yields an error wrapping sql.ErrNoRows.
func (db *DB) GetFormation(ctx context.Context, id int64) (*Formation, error) {
	row := db.QueryRowContext(ctx, formationSelect+" WHERE f.id = ?", id)

	formation, err := scanFormation(row)
	if err != nil {
		return nil, fmt.Errorf("get formation %d: %w", id, err)
	}

	if err := db.attachCategories(ctx, []*Formation{formation}); err != nil {
		return nil, err
	}

	return formation, nil
}

// CountFormations returns the number of stored formations
func (db *DB) CountFormations(ctx context.Context) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM formation").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CreateFormation inserts a formation and its category links, setting its ID
func (db *DB) CreateFormation(ctx context.Context, formation *Formation) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO formation (playlist_id, published_at, title, description, video_id) VALUES (?, ?, ?, ?, ?)",
			formation.PlaylistID, formation.PublishedAt.UTC(), formation.Title, formation.Description, formation.VideoID,
		)
		if err != nil {
			return fmt.Errorf("insert formation: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert formation: %w", err)
		}
		formation.ID = id

		return replaceCategories(ctx, tx, formation.ID, formation.CategorieIDs())
	})
}

// UpdateFormation rewrites a formation row and its category links in place
func (db *DB) UpdateFormation(ctx context.Context, formation *Formation) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE formation SET playlist_id = ?, published_at = ?, title = ?, description = ?, video_id = ? WHERE id = ?",
			formation.PlaylistID, formation.PublishedAt.UTC(), formation.Title, formation.Description, formation.VideoID, formation.ID,
		)
		if err != nil {
			return fmt.Errorf("update formation %d: %w", formation.ID, err)
		}
		if err := requireAffected(res, formation.ID); err != nil {
			return err
		}

		return replaceCategories(ctx, tx, formation.ID, formation.CategorieIDs())
	})
}

// DeleteFormation removes one formation; its category links cascade
func (db *DB) DeleteFormation(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM formation WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete formation %d: %w", id, err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("formation %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

func replaceCategories(ctx context.Context, tx *sql.Tx, formationID int64, categorieIDs []int64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM formation_categorie WHERE formation_id = ?", formationID); err != nil {
		return fmt.Errorf("clear categories of formation %d: %w", formationID, err)
	}

	for _, categorieID := range categorieIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO formation_categorie (formation_id, categorie_id) VALUES (?, ?)",
			formationID, categorieID,
		); err != nil {
			return fmt.Errorf("link categorie %d to formation %d: %w", categorieID, formationID, err)
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFormation(row rowScanner) (*Formation, error) {
	f := &Formation{Playlist: &Playlist{}, Categories: []Categorie{}}
	var publishedAt time.Time
	if err := row.Scan(
		&f.ID, &publishedAt, &f.Title, &f.Description, &f.VideoID, &f.PlaylistID,
		&f.Playlist.ID, &f.Playlist.Name, &f.Playlist.Description,
	); err != nil {
		return nil, err
	}
	f.PublishedAt = publishedAt.UTC()
	return f, nil
}

func (db *DB) queryFormations(ctx context.Context, query string, args ...any) ([]*Formation, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	formations := []*Formation{}
	for rows.Next() {
		f, err := scanFormation(rows)
		if err != nil {
			return nil, err
		}
		formations = append(formations, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.attachCategories(ctx, formations); err != nil {
		return nil, err
	}

	return formations, nil
}

// attachCategories loads the categories of the given formations in one query
func (db *DB) attachCategories(ctx context.Context, formations []*Formation) error {
	if len(formations) == 0 {
		return nil
	}

	byID := make(map[int64]*Formation, len(formations))
	placeholders := make([]string, 0, len(formations))
	args := make([]any, 0, len(formations))
	for _, f := range formations {
		byID[f.ID] = f
		placeholders = append(placeholders, "?")
		args = append(args, f.ID)
	}

	query := fmt.Sprintf(`SELECT fc.formation_id, c.id, c.name
		FROM formation_categorie fc
		JOIN categorie c ON c.id = fc.categorie_id
		WHERE fc.formation_id IN (%s)
		ORDER BY c.name ASC`, strings.Join(placeholders, ", "))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("load formation categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var formationID int64
		var c Categorie
		if err := rows.Scan(&formationID, &c.ID, &c.Name); err != nil {
			return err
		}
		if f, ok := byID[formationID]; ok {
			f.Categories = append(f.Categories, c)
		}
	}

	return rows.Err()
}
