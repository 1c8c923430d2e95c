package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Skotchmaster/moviehub/internal/logging"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

// CatalogMovie is one entry of the provider's popular listing.
type CatalogMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
}

type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, language string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		language: language,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// FetchPopular returns one page of popular movies. Any failure, including a
// non-200 answer, yields an empty page.
func (c *Client) FetchPopular(ctx context.Context, page int) []CatalogMovie {
	movies, err := c.fetchPopular(ctx, page)
	if err != nil {
		logging.FromContext(ctx).Warn("tmdb_fetch_error", "page", page, "error", err)
		return []CatalogMovie{}
	}
	return movies
}

func (c *Client) fetchPopular(ctx context.Context, page int) ([]CatalogMovie, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	if c.language != "" {
		q.Set("language", c.language)
	}
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/movie/popular?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("popular failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Results []CatalogMovie `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result.Results == nil {
		return []CatalogMovie{}, nil
	}
	return result.Results, nil
}
