package catapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleResponse = `[
  {"id":"a1","url":"https://cdn2.thecatapi.com/images/a1.jpg","width":800,"height":600,
   "breeds":[{"id":"abys","name":"Abyssinian","description":"Active cat","origin":"Egypt","life_span":"14 - 15"},
             {"id":"beng","name":"Bengal"}]},
  {"id":"b2","url":"https://cdn2.thecatapi.com/images/b2.jpg","breeds":[]}
]`

func TestSearchImagesSendsQueryAndKey(t *testing.T) {
	var gotPath, gotLimit, gotHasBreeds, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		gotHasBreeds = r.URL.Query().Get("has_breeds")
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "secret-key"})
	require.NoError(t, err)

	images, err := client.SearchImages(context.Background(), SearchParams{Limit: 100, HasBreeds: true})
	require.NoError(t, err)

	require.Equal(t, "/v1/images/search", gotPath)
	require.Equal(t, "100", gotLimit)
	require.Equal(t, "1", gotHasBreeds)
	require.Equal(t, "secret-key", gotKey)

	require.Len(t, images, 2)
	breed, ok := images[0].PrimaryBreed()
	require.True(t, ok)
	require.Equal(t, "Abyssinian", breed.Name)
	require.Equal(t, "14 - 15", breed.LifeSpan)
	require.Equal(t, "Egypt", breed.Origin)

	_, ok = images[1].PrimaryBreed()
	require.False(t, ok)
}

func TestSearchImagesClampsLimit(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	images, err := client.SearchImages(context.Background(), SearchParams{Limit: 500})
	require.NoError(t, err)
	require.Empty(t, images)
	require.Equal(t, "100", gotLimit)
}

func TestSearchImagesNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "bad"})
	require.NoError(t, err)

	_, err = client.SearchImages(context.Background(), SearchParams{Limit: 10, HasBreeds: true})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUpstream))
	require.Contains(t, err.Error(), "401")
}

func TestSearchImagesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	_, err = client.SearchImages(context.Background(), SearchParams{})
	require.ErrorIs(t, err, ErrUpstream)
}

func TestSearchImagesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := NewClient(Config{BaseURL: url, APIKey: "k", Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.SearchImages(context.Background(), SearchParams{})
	require.ErrorIs(t, err, ErrUpstream)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://api.thecatapi.com"})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "not a url", APIKey: "k"})
	require.Error(t, err)

	client, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, client.baseURL.String())
	require.Equal(t, DefaultTimeout, client.http.Timeout)
}
