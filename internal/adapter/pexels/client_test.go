package pexels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/augcode13-glitch/paapimg/internal/apperr"
	"github.com/augcode13-glitch/paapimg/internal/config"
	"github.com/augcode13-glitch/paapimg/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *PexelsAPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPexelsAPIClient(srv.URL, "test-key", srv.Client(), logger.Discard())
}

func TestSearch(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "mountains", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "30", r.URL.Query().Get("per_page"))

		_ = json.NewEncoder(w).Encode(PexelsListResponse{
			Page:         2,
			PerPage:      30,
			TotalResults: 100,
			Photos: []PexelsPhotoResponse{{
				ID:              2014422,
				Width:           3024,
				Height:          3024,
				URL:             "https://www.pexels.com/photo/2014422/",
				Photographer:    "Joey Farina",
				PhotographerURL: "https://www.pexels.com/@joey",
				AvgColor:        "#978E82",
				Src:             PexelsPhotoSrc{Large: "large.jpg", Medium: "medium.jpg", Tiny: "tiny.jpg"},
				Alt:             "Brown rocks",
			}},
			NextPage: "https://api.pexels.com/v1/search/?page=3&per_page=30&query=mountains",
		})
	})

	page, err := client.Search(context.Background(), "mountains", 2, 30)
	require.NoError(t, err)
	require.Len(t, page.Photos, 1)
	assert.True(t, page.HasNext)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 100, page.Total)

	photo := page.Photos[0]
	assert.Equal(t, int64(2014422), photo.ID)
	assert.Equal(t, "Joey Farina", photo.Photographer)
	assert.Equal(t, "#978E82", photo.AvgColor)
	assert.Equal(t, "medium.jpg", photo.Src.Medium)
	assert.Equal(t, "tiny.jpg", photo.Src.Tiny)
}

func TestCurated_LastPage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/curated", r.URL.Path)
		_ = json.NewEncoder(w).Encode(PexelsListResponse{Page: 1, PerPage: 30, Photos: []PexelsPhotoResponse{{ID: 1}, {ID: 2}}})
	})

	page, err := client.Curated(context.Background(), 1, 30)
	require.NoError(t, err)
	assert.Len(t, page.Photos, 2)
	assert.False(t, page.HasNext)
}

func TestFetchPage_Non200(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})

	_, err := client.Curated(context.Background(), 1, 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "401")
}

func TestFetchPage_BadJSON(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := client.Search(context.Background(), "cats", 1, 30)
	assert.ErrorIs(t, err, apperr.ErrSourceUnavailable)
}

func TestNewFromConfig(t *testing.T) {
	_, ok := NewFromConfig(&config.Config{}, logger.Discard())
	assert.False(t, ok)

	client, ok := NewFromConfig(&config.Config{PexelsAPIKey: "k", PexelsBaseURL: "http://localhost/v1/"}, logger.Discard())
	require.True(t, ok)
	assert.Equal(t, "http://localhost/v1", client.baseURL)
}
