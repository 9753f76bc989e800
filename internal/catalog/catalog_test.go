package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/netlee/internal/library"
	"github.com/vmunix/netlee/internal/media"
	"github.com/vmunix/netlee/internal/migrations"
	"github.com/vmunix/netlee/internal/tmdb"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T {
	return &v
}

func setupStore(t *testing.T) *library.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Apply(db))
	return library.NewStore(db)
}

// tmdbServer serves /3/movie/{id} from movies; other ids get 404.
func tmdbServer(t *testing.T, movies map[string]tmdb.Movie) *tmdb.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, ok := movies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(m)
	}))
	t.Cleanup(srv.Close)
	return tmdb.NewClient("test-key", tmdb.WithBaseURL(srv.URL))
}

func TestLocalSource(t *testing.T) {
	store := setupStore(t)
	m := &library.Movie{ID: "42", Title: "Home Movie", Description: "Summer", StreamURL: ptr("hls://x")}
	require.NoError(t, store.AddMovie(m))

	src := NewLocalSource(store)
	p, err := src.LocalMovie(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "Home Movie", p.Title)
	assert.Equal(t, "Summer", p.Description)
	assert.Equal(t, "hls://x", *p.StreamURL)
	assert.Nil(t, p.DirectURL)

	_, err = src.LocalMovie(context.Background(), "nope")
	assert.ErrorIs(t, err, media.ErrNotFound)
}

type brokenStore struct{}

func (brokenStore) GetMovie(string) (*library.Movie, error) {
	return nil, errors.New("database is locked")
}

func (brokenStore) GetCatalogAsset(int64) (*library.CatalogAsset, error) {
	return nil, errors.New("database is locked")
}

func TestLocalSource_StoreErrorIsTransport(t *testing.T) {
	_, err := NewLocalSource(brokenStore{}).LocalMovie(context.Background(), "1")
	assert.ErrorIs(t, err, media.ErrTransport)
	assert.Equal(t, media.KindTransport, media.KindOf(err))
}

func TestTMDBSource(t *testing.T) {
	client := tmdbServer(t, map[string]tmdb.Movie{
		"/3/movie/550": {
			ID:           550,
			Title:        "Fight Club",
			Overview:     "Mischief. Mayhem. Soap.",
			BackdropPath: "/back.jpg",
			ReleaseDate:  "1999-10-15",
			Runtime:      139,
			VoteAverage:  8.4,
			Genres:       []tmdb.Genre{{ID: 18, Name: "Drama"}},
			Videos: tmdb.Videos{Results: []tmdb.Video{
				{Type: "Teaser", Site: "YouTube", Key: "t1"},
				{Type: "Trailer", Site: "YouTube", Key: "abc"},
			}},
		},
	})
	store := setupStore(t)
	src := NewTMDBSource(client, store, testLogger())

	p, err := src.CatalogMovie(context.Background(), "550")
	require.NoError(t, err)
	assert.Equal(t, "550", p.ID)
	assert.Equal(t, "Fight Club", p.Title)
	assert.Equal(t, "Mischief. Mayhem. Soap.", p.Description)
	assert.Equal(t, "/back.jpg", p.BackdropPath)
	assert.Equal(t, "1999-10-15", p.ReleaseDate)
	assert.Equal(t, 139, p.Runtime)
	assert.Equal(t, []string{"Drama"}, p.Genres)
	assert.Equal(t, []media.Video{
		{Type: "Teaser", Site: "YouTube", Key: "t1"},
		{Type: "Trailer", Site: "YouTube", Key: "abc"},
	}, p.Videos)
	assert.Nil(t, p.FullMovieStreamURL)
	assert.Nil(t, p.FullMovieDirectURL)
}

func TestTMDBSource_WithFullAsset(t *testing.T) {
	client := tmdbServer(t, map[string]tmdb.Movie{"/3/movie/7": {ID: 7, Title: "Seven"}})
	store := setupStore(t)
	require.NoError(t, store.SetCatalogAsset(&library.CatalogAsset{TMDBID: 7, DirectURL: ptr("https://cdn/7.mp4")}))

	p, err := NewTMDBSource(client, store, testLogger()).CatalogMovie(context.Background(), "7")
	require.NoError(t, err)
	assert.Nil(t, p.FullMovieStreamURL)
	assert.Equal(t, "https://cdn/7.mp4", *p.FullMovieDirectURL)
	assert.NotNil(t, p.Videos, "videos is always a list")
}

func TestTMDBSource_Errors(t *testing.T) {
	client := tmdbServer(t, map[string]tmdb.Movie{"/3/movie/7": {ID: 7, Title: "Seven"}})

	src := NewTMDBSource(client, nil, testLogger())
	for _, id := range []string{"999", "abc", "-1", "0"} {
		_, err := src.CatalogMovie(context.Background(), id)
		assert.ErrorIs(t, err, media.ErrNotFound, id)
	}

	_, err := NewTMDBSource(client, brokenStore{}, testLogger()).CatalogMovie(context.Background(), "7")
	assert.ErrorIs(t, err, media.ErrTransport)
}

func TestTMDBSource_UpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewTMDBSource(tmdb.NewClient("k", tmdb.WithBaseURL(srv.URL)), nil, testLogger())
	_, err := src.CatalogMovie(context.Background(), "550")
	assert.ErrorIs(t, err, media.ErrTransport)
}
