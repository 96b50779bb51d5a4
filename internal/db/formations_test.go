package db

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalog struct {
	java, php       *Categorie
	poo, android    *Playlist
	eclipse, sf, as *Formation
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedCatalog inserts three formations across two playlists and two categories
func seedCatalog(t *testing.T, database *DB) catalog {
	t.Helper()
	ctx := context.Background()

	c := catalog{
		java:    &Categorie{Name: "Java"},
		php:     &Categorie{Name: "PHP"},
		poo:     &Playlist{Name: "Programmation objet"},
		android: &Playlist{Name: "Android"},
	}
	require.NoError(t, database.CreateCategorie(ctx, c.java))
	require.NoError(t, database.CreateCategorie(ctx, c.php))
	require.NoError(t, database.CreatePlaylist(ctx, c.poo))
	require.NoError(t, database.CreatePlaylist(ctx, c.android))

	c.eclipse = &Formation{
		Title:       "Eclipse n°1 : installation",
		PublishedAt: day(2021, 1, 4),
		PlaylistID:  c.poo.ID,
		Categories:  []Categorie{*c.java},
	}
	c.sf = &Formation{
		Title:       "Symfony 5 : 100% en ligne",
		PublishedAt: day(2022, 3, 10),
		PlaylistID:  c.poo.ID,
		Categories:  []Categorie{*c.php},
	}
	c.as = &Formation{
		Title:       "Android Studio : premiers pas",
		PublishedAt: day(2020, 6, 1),
		PlaylistID:  c.android.ID,
		Categories:  []Categorie{*c.java, *c.php},
	}
	for _, f := range []*Formation{c.eclipse, c.sf, c.as} {
		require.NoError(t, database.CreateFormation(ctx, f))
	}

	return c
}

func titles(formations []*Formation) []string {
	out := make([]string, 0, len(formations))
	for _, f := range formations {
		out = append(out, f.Title)
	}
	return out
}

func TestFindAllFormationsOrderBy(t *testing.T) {
	database := newTestDB(t)
	c := seedCatalog(t, database)
	ctx := context.Background()

	asc, err := database.FindAllFormationsOrderBy(ctx, "f.title", "ASC")
	require.NoError(t, err)
	assert.Equal(t, []string{c.as.Title, c.eclipse.Title, c.sf.Title}, titles(asc))

	desc, err := database.FindAllFormationsOrderBy(ctx, "f.published_at", "desc")
	require.NoError(t, err)
	assert.Equal(t, []string{c.sf.Title, c.eclipse.Title, c.as.Title}, titles(desc))

	// Playlist and categories are loaded alongside
	require.NotNil(t, asc[0].Playlist)
	assert.Equal(t, "Android", asc[0].Playlist.Name)
	assert.Len(t, asc[0].Categories, 2)
}

func TestFindAllFormationsOrderByTable_Playlist(t *testing.T) {
	database := newTestDB(t)
	c := seedCatalog(t, database)

	got, err := database.FindAllFormationsOrderByTable(context.Background(), "p.name", "ASC", "playlist")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, c.as.Title, got[0].Title)
	assert.Equal(t, "Programmation objet", got[2].Playlist.Name)
}

func TestFindAllFormationsOrderBy_RejectsUnsafeInput(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	_, err := database.FindAllFormationsOrderBy(ctx, "f.title; DROP TABLE formation", "ASC")
	assert.Error(t, err)

	_, err = database.FindAllFormationsOrderBy(ctx, "f.title", "sideways")
	assert.Error(t, err)

	_, err = database.FindAllFormationsOrderByTable(ctx, "c.name", "ASC", "categories")
	assert.Error(t, err)

	assert.True(t, tableExists(t, database, "formation"))
}

func TestFindFormationsByContainValue(t *testing.T) {
	database := newTestDB(t)
	c := seedCatalog(t, database)
	ctx := context.Background()

	got, err := database.FindFormationsByContainValue(ctx, "f.title", "ECLIPSE")
	require.NoError(t, err)
	assert.Equal(t, []string{c.eclipse.Title}, titles(got))

	// Wildcards in the value match literally
	got, err = database.FindFormationsByContainValue(ctx, "f.title", "100%")
	require.NoError(t, err)
	assert.Equal(t, []string{c.sf.Title}, titles(got))

	got, err = database.FindFormationsByContainValue(ctx, "f.title", "%")
	require.NoError(t, err)
	assert.Equal(t, []string{c.sf.Title}, titles(got))

	// Empty value lists everything in the default order
	got, err = database.FindFormationsByContainValue(ctx, "f.title", "")
	require.NoError(t, err)
	assert.Equal(t, []string{c.as.Title, c.eclipse.Title, c.sf.Title}, titles(got))
}

func TestFindFormationsByContainValueTable(t *testing.T) {
	database := newTestDB(t)
	c := seedCatalog(t, database)
	ctx := context.Background()

	// Most recent first
	got, err := database.FindFormationsByContainValueTable(ctx, "p.name", "objet", "playlist")
	require.NoError(t, err)
	assert.Equal(t, []string{c.sf.Title, c.eclipse.Title}, titles(got))

	// A formation in two matching categories is listed once
	got, err = database.FindFormationsByContainValueTable(ctx, "c.name", "p", "categories")
	require.NoError(t, err)
	assert.Equal(t, []string{c.sf.Title, c.as.Title}, titles(got))
	assert.Len(t, got[1].Categories, 2, "all categories are loaded, not only the matching one")

	_, err = database.FindFormationsByContainValueTable(ctx, "x.name", "p", "user")
	assert.Error(t, err)
}

func TestFindFormationsByExactValueTable(t *testing.T) {
	database := newTestDB(t)
	c := seedCatalog(t, database)

	got, err := database.FindFormationsByExactValueTable(context.Background(), "c.id", strconv.FormatInt(c.java.ID, 10), "categories")
	require.NoError(t, err)
	assert.Equal(t, []string{c.eclipse.Title, c.as.Title}, titles(got))
}

func TestGetFormation(t *testing.T) {
	database := newTestDB(t)
	c := seedCatalog(t, database)
	ctx := context.Background()

	got, err := database.GetFormation(ctx, c.eclipse.ID)
	require.NoError(t, err)
	assert.Equal(t, c.eclipse.Title, got.Title)
	assert.True(t, got.PublishedAt.Equal(day(2021, 1, 4)))
	assert.Equal(t, c.poo.ID, got.PlaylistID)
	assert.Equal(t, []int64{c.java.ID}, got.CategorieIDs())

	_, err = database.GetFormation(ctx, 9999)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestUpdateFormation(t *testing.T) {
	database := newTestDB(t)
	c := seedCatalog(t, database)
	ctx := context.Background()

	before, err := database.CountFormations(ctx)
	require.NoError(t, err)

	c.eclipse.Title = "Eclipse n°1 : installation de l'IDE"
	c.eclipse.PlaylistID = c.android.ID
	c.eclipse.Categories = []Categorie{*c.php}
	require.NoError(t, database.UpdateFormation(ctx, c.eclipse))

	after, err := database.CountFormations(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	got, err := database.GetFormation(ctx, c.eclipse.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eclipse n°1 : installation de l'IDE", got.Title)
	assert.Equal(t, "Android", got.Playlist.Name)
	assert.Equal(t, []int64{c.php.ID}, got.CategorieIDs())

	missing := &Formation{ID: 9999, Title: "x", PublishedAt: day(2020, 1, 1), PlaylistID: c.poo.ID}
	err = database.UpdateFormation(ctx, missing)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestDeleteFormation_RemovesOnlyThatRecord(t *testing.T) {
	database := newTestDB(t)
	c := seedCatalog(t, database)
	ctx := context.Background()

	require.NoError(t, database.DeleteFormation(ctx, c.as.ID))

	remaining, err := database.FindAllFormationsOrderBy(ctx, "f.title", "ASC")
	require.NoError(t, err)
	assert.Equal(t, []string{c.eclipse.Title, c.sf.Title}, titles(remaining))

	// Links cascade, categories themselves stay
	var links int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM formation_categorie WHERE formation_id = ?", c.as.ID).Scan(&links))
	assert.Zero(t, links)

	categories, err := database.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	err = database.DeleteFormation(ctx, c.as.ID)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestCreateFormation_UnknownPlaylistFails(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	err := database.CreateFormation(ctx, &Formation{Title: "orphan", PublishedAt: day(2020, 1, 1), PlaylistID: 42})
	assert.Error(t, err)

	count, err := database.CountFormations(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFormations_FrenchCollationAndCaseFolding(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	playlist := &Playlist{Name: "Bases de données"}
	require.NoError(t, database.CreatePlaylist(ctx, playlist))
	for i, title := range []string{"Zend", "android", "Écrire du SQL", "eclipse"} {
		f := &Formation{Title: title, PublishedAt: day(2021, 1, i+1), PlaylistID: playlist.ID}
		require.NoError(t, database.CreateFormation(ctx, f))
	}

	asc, err := database.FindAllFormationsOrderBy(ctx, "f.title", "ASC")
	require.NoError(t, err)
	assert.Equal(t, []string{"android", "eclipse", "Écrire du SQL", "Zend"}, titles(asc))

	desc, err := database.FindAllFormationsOrderBy(ctx, "f.title", "DESC")
	require.NoError(t, err)
	assert.Equal(t, []string{"Zend", "Écrire du SQL", "eclipse", "android"}, titles(desc))

	got, err := database.FindFormationsByContainValue(ctx, "f.title", "écrire")
	require.NoError(t, err)
	assert.Equal(t, []string{"Écrire du SQL"}, titles(got))

	got, err = database.FindFormationsByContainValue(ctx, "f.title", "ÉCRIRE DU sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"Écrire du SQL"}, titles(got))

	got, err = database.FindFormationsByContainValueTable(ctx, "p.name", "DONNÉES", "playlist")
	require.NoError(t, err)
	assert.Len(t, got, 4)
}
