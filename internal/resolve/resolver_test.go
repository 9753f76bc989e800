package resolve_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/netlee/internal/media"
	"github.com/vmunix/netlee/internal/resolve"
	"github.com/vmunix/netlee/internal/resolve/mocks"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T {
	return &v
}

func TestResolver_MissingIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalSource(ctrl)
	catalog := mocks.NewMockCatalogSource(ctrl)
	// No EXPECT calls: any source call fails the test.

	r := resolve.New(local, catalog, resolve.WithLogger(testLogger()))

	for _, origin := range []media.Origin{media.OriginLocal, media.OriginCatalog} {
		rec, err := r.Resolve(context.Background(), media.ContentRef{ID: "", Origin: origin})
		assert.Nil(t, rec)
		assert.ErrorIs(t, err, resolve.ErrMissingIdentifier)
		assert.Equal(t, media.KindMissingIdentifier, media.KindOf(err))
	}
}

func TestResolver_Local(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalSource(ctrl)
	local.EXPECT().
		LocalMovie(gomock.Any(), "42").
		Return(&media.LocalPayload{
			ID:          "42",
			Title:       "Home Movie",
			Description: "Summer 2019",
			StreamURL:   ptr("hls://x"),
			DirectURL:   ptr("file://y"),
		}, nil)

	r := resolve.New(local, nil, resolve.WithLogger(testLogger()))
	rec, err := r.Resolve(context.Background(), media.ContentRef{ID: "42", Origin: media.OriginLocal})
	require.NoError(t, err)

	assert.Equal(t, media.OriginLocal, rec.Origin)
	assert.Equal(t, "Home Movie", rec.Title)
	assert.Equal(t, "Summer 2019", rec.Description)
	require.NotNil(t, rec.PrimaryAsset)
	assert.Equal(t, "hls://x", *rec.PrimaryAsset.StreamURL)
	assert.Equal(t, "file://y", *rec.PrimaryAsset.DirectURL)

	// Local never carries catalog-only fields.
	assert.Nil(t, rec.Trailer)
	assert.Nil(t, rec.Presentation)
	assert.Nil(t, rec.FullAsset)
}

func TestResolver_Local_AbsentURLsStayAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalSource(ctrl)
	local.EXPECT().
		LocalMovie(gomock.Any(), "7").
		Return(&media.LocalPayload{ID: "7", Title: "Clip", DirectURL: ptr("")}, nil)

	r := resolve.New(local, nil, resolve.WithLogger(testLogger()))
	rec, err := r.Resolve(context.Background(), media.ContentRef{ID: "7", Origin: media.OriginLocal})
	require.NoError(t, err)

	require.NotNil(t, rec.PrimaryAsset)
	assert.Nil(t, rec.PrimaryAsset.StreamURL, "absent stream URL must not be defaulted")
	require.NotNil(t, rec.PrimaryAsset.DirectURL, "empty direct URL is present, not absent")
	assert.Equal(t, "", *rec.PrimaryAsset.DirectURL)
	assert.False(t, rec.PrimaryAsset.Playable())
}

func TestResolver_Catalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogSource(ctrl)
	catalog.EXPECT().
		CatalogMovie(gomock.Any(), "7").
		Return(&media.CatalogPayload{
			ID:           "7",
			Title:        "Catalog Title",
			Description:  "An overview",
			BackdropPath: "/back.jpg",
			ReleaseDate:  "1999-10-15",
			Runtime:      139,
			VoteAverage:  8.4,
			Genres:       []string{"Drama", "Thriller"},
			Videos: []media.Video{
				{Type: "Featurette", Site: "YouTube", Key: "feat"},
				{Type: "Trailer", Site: "Vimeo", Key: "vim"},
				{Type: "Trailer", Site: "YouTube", Key: "abc"},
				{Type: "Trailer", Site: "YouTube", Key: "second"},
			},
		}, nil)

	r := resolve.New(nil, catalog,
		resolve.WithLogger(testLogger()),
		resolve.WithImageBaseURL("https://img.example/t/p/w780/"))
	rec, err := r.Resolve(context.Background(), media.ContentRef{ID: "7", Origin: media.OriginCatalog})
	require.NoError(t, err)

	assert.Equal(t, media.OriginCatalog, rec.Origin)
	assert.Nil(t, rec.PrimaryAsset, "catalog never produces a primary asset")
	assert.Nil(t, rec.FullAsset)

	require.NotNil(t, rec.Trailer)
	assert.Equal(t, "abc", rec.Trailer.Key, "first YouTube trailer wins")
	assert.Equal(t, media.TrailerProviderYouTube, rec.Trailer.Provider)

	require.NotNil(t, rec.Presentation)
	assert.Equal(t, "https://img.example/t/p/w780/back.jpg", rec.Presentation.BackdropURL)
	assert.Equal(t, 1999, rec.Presentation.ReleaseYear)
	assert.Equal(t, 139, rec.Presentation.RuntimeMinutes)
	assert.InDelta(t, 8.4, rec.Presentation.Rating, 0.001)
	assert.Equal(t, []string{"Drama", "Thriller"}, rec.Presentation.Genres)
}

func TestResolver_Catalog_FullAsset(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogSource(ctrl)
	catalog.EXPECT().
		CatalogMovie(gomock.Any(), "550").
		Return(&media.CatalogPayload{
			ID:                 "550",
			Title:              "Full",
			FullMovieDirectURL: ptr("https://cdn.example/full.mp4"),
		}, nil)

	r := resolve.New(nil, catalog, resolve.WithLogger(testLogger()))
	rec, err := r.Resolve(context.Background(), media.ContentRef{ID: "550", Origin: media.OriginCatalog})
	require.NoError(t, err)

	require.NotNil(t, rec.FullAsset)
	assert.Nil(t, rec.FullAsset.StreamURL)
	assert.Equal(t, []string{"https://cdn.example/full.mp4"}, rec.FullAsset.Candidates())
	assert.Nil(t, rec.Trailer)
}

func TestResolver_Errors(t *testing.T) {
	tests := []struct {
		name      string
		sourceErr error
		wantErr   error
		wantKind  media.ErrorKind
	}{
		{"not found", media.ErrNotFound, resolve.ErrNotFound, media.KindNotFound},
		{"transport", errors.New("dial tcp: connection refused"), resolve.ErrTransport, media.KindTransport},
		{"already transport", media.ErrTransport, resolve.ErrTransport, media.KindTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			local := mocks.NewMockLocalSource(ctrl)
			// Exactly one call: the resolver never retries.
			local.EXPECT().LocalMovie(gomock.Any(), "1").Return(nil, tt.sourceErr).Times(1)

			r := resolve.New(local, nil, resolve.WithLogger(testLogger()))
			rec, err := r.Resolve(context.Background(), media.ContentRef{ID: "1", Origin: media.OriginLocal})
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantKind, media.KindOf(err))
		})
	}
}

func TestResolver_NilPayloadIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogSource(ctrl)
	catalog.EXPECT().CatalogMovie(gomock.Any(), "9").Return(nil, nil)

	r := resolve.New(nil, catalog, resolve.WithLogger(testLogger()))
	_, err := r.Resolve(context.Background(), media.ContentRef{ID: "9", Origin: media.OriginCatalog})
	assert.ErrorIs(t, err, resolve.ErrNotFound)
}

func TestResolver_MissingSource(t *testing.T) {
	r := resolve.New(nil, nil, resolve.WithLogger(testLogger()))
	_, err := r.Resolve(context.Background(), media.ContentRef{ID: "1", Origin: media.OriginCatalog})
	assert.ErrorIs(t, err, resolve.ErrNoSource)
}

func TestResolver_InvalidOrigin(t *testing.T) {
	r := resolve.New(nil, nil, resolve.WithLogger(testLogger()))
	_, err := r.Resolve(context.Background(), media.ContentRef{ID: "1", Origin: "imdb"})
	assert.ErrorIs(t, err, media.ErrInvalidOrigin)
}

func TestResolver_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalogSource(ctrl)
	catalog.EXPECT().
		CatalogMovie(gomock.Any(), "7").
		DoAndReturn(func(ctx context.Context, id string) (*media.CatalogPayload, error) {
			// Fresh payload each call, like a decoded HTTP response.
			return &media.CatalogPayload{
				ID:                 id,
				Title:              "Same",
				Genres:             []string{"Drama"},
				Videos:             []media.Video{{Type: "Trailer", Site: "YouTube", Key: "abc"}},
				FullMovieStreamURL: ptr("hls://full"),
			}, nil
		}).
		Times(2)

	r := resolve.New(nil, catalog, resolve.WithLogger(testLogger()))
	ref := media.ContentRef{ID: "7", Origin: media.OriginCatalog}

	first, err := r.Resolve(context.Background(), ref)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFirstTrailer(t *testing.T) {
	tests := []struct {
		name   string
		videos []media.Video
		want   *media.TrailerRef
	}{
		{"none", nil, nil},
		{"no youtube trailer", []media.Video{{Type: "Teaser", Site: "YouTube", Key: "t"}, {Type: "Trailer", Site: "Vimeo", Key: "v"}}, nil},
		{"case insensitive", []media.Video{{Type: "TRAILER", Site: "youtube", Key: "k"}}, &media.TrailerRef{Provider: "youtube", Key: "k"}},
		{"first match in order", []media.Video{{Type: "Trailer", Site: "YouTube", Key: "1"}, {Type: "Trailer", Site: "YouTube", Key: "2"}}, &media.TrailerRef{Provider: "youtube", Key: "1"}},
		{"skips empty key", []media.Video{{Type: "Trailer", Site: "YouTube"}, {Type: "Trailer", Site: "YouTube", Key: "2"}}, &media.TrailerRef{Provider: "youtube", Key: "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve.FirstTrailer(tt.videos))
		})
	}
}
