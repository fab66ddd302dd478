package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNormalizeProductName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Banana", "banana"},
		{"Maçã", "maca"},
		{"Feijão Preto", "feijao-preto"},
		{"  Couve   Flor  ", "couve-flor"},
		{"Açúcar!!", "acucar"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeProductName(tt.in), "input %q", tt.in)
	}
}

func TestSearchProductImages_StaticTableSkipsAPI(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	// No API key configured: known produce must still resolve.
	s := NewGoogleImageSearch("", "", logger)

	images, err := s.SearchProductImages(context.Background(), "Maçã")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Contains(t, images[0].URL, "unsplash.com")
}

func TestSearchProductImages_UnconfiguredFailsForUnknownName(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	s := NewGoogleImageSearch("", "", logger)

	_, err := s.SearchProductImages(context.Background(), "jabuticaba")
	assert.Error(t, err)
}

func TestSearchProductImages_ParsesAPIResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "jabuticaba", r.URL.Query().Get("q"))
		assert.Equal(t, "image", r.URL.Query().Get("searchType"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"title":"Jabuticabas maduras","link":"https://example.com/full.jpg","image":{"thumbnailLink":"https://example.com/thumb.jpg"}},
			{"title":"Outra foto","link":"https://example.com/full2.jpg","image":{}}
		]}`))
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	s := NewGoogleImageSearch("test-key", "test-cx", logger)
	s.baseURL = server.URL

	images, err := s.SearchProductImages(context.Background(), "jabuticaba")
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "https://example.com/full.jpg", images[0].URL)
	assert.Equal(t, "https://example.com/thumb.jpg", images[0].Thumbnail)
	assert.Equal(t, "Jabuticabas maduras", images[0].Alt)
	assert.Equal(t, "https://example.com/full2.jpg", images[1].Thumbnail, "missing thumbnail falls back to the full link")
}

func TestSearchProductImages_APIErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	s := NewGoogleImageSearch("test-key", "test-cx", logger)
	s.baseURL = server.URL

	_, err := s.SearchProductImages(context.Background(), "jabuticaba")
	assert.Error(t, err)
}

func TestPlaceholderImage(t *testing.T) {
	image := PlaceholderImage("Couve Flor")
	assert.Contains(t, image.URL, "placeholder")
	assert.Contains(t, image.URL, "Couve+Flor")
	assert.Equal(t, "Couve Flor", image.Alt)

	empty := PlaceholderImage("")
	assert.Equal(t, "Produto", empty.Alt)
}
