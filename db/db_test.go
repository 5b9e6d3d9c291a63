package db_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/amonks/musiclib/data"
	"github.com/amonks/musiclib/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(db.Config{DSN: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := db.Open(db.Config{Driver: "mysql", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported db driver 'mysql'")
}

func TestOpenTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		d, err := db.Open(db.Config{Driver: "sqlite", DSN: path})
		require.NoError(t, err)
		require.NoError(t, d.Close())
	}
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	artists := db.NewTable[data.Artist](open(t))

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := data.Artist{Name: "Nina Simone", Bio: "pianist", CreatedAt: created}
	require.NoError(t, artists.Create(ctx, &a))
	assert.Greater(t, a.ID, int64(0))

	got, err := artists.Find(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nina Simone", got.Name)
	assert.True(t, created.Equal(got.CreatedAt))

	got.Bio = "singer"
	require.NoError(t, artists.Save(ctx, got))
	got, err = artists.Find(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "singer", got.Bio)

	require.NoError(t, artists.Delete(ctx, got))
	_, err = artists.Find(ctx, a.ID)
	assert.True(t, errors.Is(err, db.ErrNotFound))
}

func TestSaveAfterDelete(t *testing.T) {
	ctx := context.Background()
	artists := db.NewTable[data.Artist](open(t))

	a := data.Artist{Name: "n", Bio: "b"}
	require.NoError(t, artists.Create(ctx, &a))
	row, err := artists.Find(ctx, a.ID)
	require.NoError(t, err)
	require.NoError(t, artists.Delete(ctx, &a))

	row.Name = "updated"
	err = artists.Save(ctx, row)
	assert.True(t, errors.Is(err, db.ErrNotFound), "got %v", err)

	_, err = artists.Find(ctx, a.ID)
	assert.True(t, errors.Is(err, db.ErrNotFound))
	rows, err := artists.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSaveClearsNullableColumns(t *testing.T) {
	ctx := context.Background()
	d := open(t)
	artists := db.NewTable[data.Artist](d)
	albums := db.NewTable[data.Album](d)
	songs := db.NewTable[data.Song](d)

	artist := data.Artist{Name: "n", Bio: "b"}
	require.NoError(t, artists.Create(ctx, &artist))
	album := data.Album{Title: "t", ArtistID: artist.ID}
	require.NoError(t, albums.Create(ctx, &album))
	song := data.Song{Title: "s", ArtistID: artist.ID, AlbumID: &album.ID, Genre: "jazz"}
	require.NoError(t, songs.Create(ctx, &song))

	song.AlbumID = nil
	song.Genre = ""
	require.NoError(t, songs.Save(ctx, &song))

	got, err := songs.Find(ctx, song.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AlbumID)
	assert.Empty(t, got.Genre)
	assert.Equal(t, "s", got.Title)
}

func TestCreatedAtDefaultsToNow(t *testing.T) {
	ctx := context.Background()
	artists := db.NewTable[data.Artist](open(t))

	a := data.Artist{Name: "n", Bio: "b"}
	require.NoError(t, artists.Create(ctx, &a))
	assert.WithinDuration(t, time.Now(), a.CreatedAt, time.Minute)
}

func TestListOrderAndEmpty(t *testing.T) {
	ctx := context.Background()
	artists := db.NewTable[data.Artist](open(t))

	rows, err := artists.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, artists.Create(ctx, &data.Artist{Name: name, Bio: "bio"}))
	}
	rows, err = artists.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
}

func TestRequiredColumns(t *testing.T) {
	ctx := context.Background()
	artists := db.NewTable[data.Artist](open(t))
	assert.Error(t, artists.Create(ctx, &data.Artist{Name: "", Bio: "b"}))
}

func TestForeignKeys(t *testing.T) {
	ctx := context.Background()
	d := open(t)
	artists := db.NewTable[data.Artist](d)
	albums := db.NewTable[data.Album](d)
	songs := db.NewTable[data.Song](d)

	assert.Error(t, albums.Create(ctx, &data.Album{Title: "orphan", ArtistID: 999}))
	n, err := d.Count(ctx, "albums")
	require.NoError(t, err)
	assert.Zero(t, n)

	artist := data.Artist{Name: "n", Bio: "b"}
	require.NoError(t, artists.Create(ctx, &artist))
	album := data.Album{Title: "t", ArtistID: artist.ID}
	require.NoError(t, albums.Create(ctx, &album))
	single := data.Song{Title: "single", ArtistID: artist.ID}
	track := data.Song{Title: "track", ArtistID: artist.ID, AlbumID: &album.ID}
	require.NoError(t, songs.Create(ctx, &single))
	require.NoError(t, songs.Create(ctx, &track))

	byAlbum, err := songs.ListBy(ctx, "album_id", album.ID)
	require.NoError(t, err)
	require.Len(t, byAlbum, 1)
	assert.Equal(t, "track", byAlbum[0].Title)

	// Deleting an album keeps its songs but detaches them.
	require.NoError(t, albums.Delete(ctx, &album))
	got, err := songs.Find(ctx, track.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AlbumID)
	orphans, err := d.CountSongsWithoutAlbum(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, orphans)

	// Deleting an artist takes everything of theirs with it.
	album2 := data.Album{Title: "t2", ArtistID: artist.ID}
	require.NoError(t, albums.Create(ctx, &album2))
	require.NoError(t, artists.Delete(ctx, &artist))

	counts, err := d.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"artists": 0, "albums": 0, "songs": 0}, counts)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	artists := db.NewTable[data.Artist](open(t))

	ok, err := artists.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, artists.Create(ctx, &data.Artist{Name: "n", Bio: "b"}))
	ok, err = artists.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
