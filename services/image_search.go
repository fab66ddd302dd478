package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"colheita-backend/models"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const googleSearchAPIURL = "https://www.googleapis.com/customsearch/v1"

// ImageSearcher resolves display images for a product name.
type ImageSearcher interface {
	SearchProductImages(ctx context.Context, productName string) ([]models.ProductImage, error)
}

// staticProductImages maps common produce names to curated photos, so the
// usual donations resolve without hitting the search API.
var staticProductImages = map[string]models.ProductImage{
	"banana":  {URL: "https://images.unsplash.com/photo-1571771894286-0a3f5694e744?w=800&q=80", Thumbnail: "https://images.unsplash.com/photo-1571771894286-0a3f5694e744?w=200&q=80", Alt: "Bananas"},
	"laranja": {URL: "https://images.unsplash.com/photo-1611080626919-7cf5a9041d75?w=800&q=80", Thumbnail: "https://images.unsplash.com/photo-1611080626919-7cf5a9041d75?w=200&q=80", Alt: "Laranjas"},
	"maca":    {URL: "https://images.unsplash.com/photo-1570913149827-d2ac84ab3f9a?w=800&q=80", Thumbnail: "https://images.unsplash.com/photo-1570913149827-d2ac84ab3f9a?w=200&q=80", Alt: "Maçãs"},
	"tomate":  {URL: "https://images.unsplash.com/photo-1561136594-7860db70183d?w=800&q=80", Thumbnail: "https://images.unsplash.com/photo-1561136594-7860db70183d?w=200&q=80", Alt: "Tomates"},
	"cenoura": {URL: "https://images.unsplash.com/photo-1522184216316-3c25379f9760?w=800&q=80", Thumbnail: "https://images.unsplash.com/photo-1522184216316-3c25379f9760?w=200&q=80", Alt: "Cenouras"},
	"batata":  {URL: "https://images.unsplash.com/photo-1518977676601-b53f82aba655?w=800&q=80", Thumbnail: "https://images.unsplash.com/photo-1518977676601-b53f82aba655?w=200&q=80", Alt: "Batatas"},
	"alface":  {URL: "https://images.unsplash.com/photo-1622206151242-8f5e7028e2c2?w=800&q=80", Thumbnail: "https://images.unsplash.com/photo-1622206151242-8f5e7028e2c2?w=200&q=80", Alt: "Alface"},
	"milho":   {URL: "https://images.unsplash.com/photo-1551754655-cd27e38d2076?w=800&q=80", Thumbnail: "https://images.unsplash.com/photo-1551754655-cd27e38d2076?w=200&q=80", Alt: "Milho"},
	"feijao":  {URL: "https://images.unsplash.com/photo-1604228741406-a789d5d37bc0?w=800&q=80", Thumbnail: "https://images.unsplash.com/photo-1604228741406-a789d5d37bc0?w=200&q=80", Alt: "Feijão"},
	"arroz":   {URL: "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=800&q=80", Thumbnail: "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=200&q=80", Alt: "Arroz"},
}

// GoogleImageSearch queries the Google Custom Search API for product
// photos, preferring the static table for known produce.
type GoogleImageSearch struct {
	apiKey     string
	cx         string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGoogleImageSearch(apiKey, cx string, logger *zap.Logger) *GoogleImageSearch {
	return &GoogleImageSearch{
		apiKey:     apiKey,
		cx:         cx,
		baseURL:    googleSearchAPIURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

type googleSearchResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
		Image struct {
			ThumbnailLink string `json:"thumbnailLink"`
		} `json:"image"`
	} `json:"items"`
}

// SearchProductImages returns candidate images for the product name, best
// match first.
func (s *GoogleImageSearch) SearchProductImages(ctx context.Context, productName string) ([]models.ProductImage, error) {
	if static, ok := staticProductImages[NormalizeProductName(productName)]; ok {
		return []models.ProductImage{static}, nil
	}

	if s.apiKey == "" || s.cx == "" {
		return nil, fmt.Errorf("image search not configured")
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("cx", s.cx)
	params.Set("q", productName)
	params.Set("searchType", "image")
	params.Set("num", "3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image search returned %d", resp.StatusCode)
	}

	var searchResp googleSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, err
	}

	images := make([]models.ProductImage, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		thumbnail := item.Image.ThumbnailLink
		if thumbnail == "" {
			thumbnail = item.Link
		}
		images = append(images, models.ProductImage{
			URL:       item.Link,
			Thumbnail: thumbnail,
			Alt:       item.Title,
		})
	}
	return images, nil
}

// PlaceholderImage is the last-resort image when no lookup succeeds.
func PlaceholderImage(productName string) models.ProductImage {
	if productName == "" {
		productName = "Produto"
	}
	encoded := url.QueryEscape(productName)
	return models.ProductImage{
		URL:       "https://via.placeholder.com/800x600?text=" + encoded,
		Thumbnail: "https://via.placeholder.com/200x150?text=" + encoded,
		Alt:       productName,
	}
}

// NormalizeProductName lowercases the name, strips accents and replaces
// every non-alphanumeric run with a single hyphen, producing a stable
// lookup key.
func NormalizeProductName(name string) string {
	decomposed := norm.NFD.String(strings.ToLower(name))

	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}

	normalized := b.String()
	for strings.Contains(normalized, "--") {
		normalized = strings.ReplaceAll(normalized, "--", "-")
	}
	return strings.Trim(normalized, "-")
}
