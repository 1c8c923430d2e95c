package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/moviehub/internal/models"
)

// MovieIndex keeps a searchable copy of the catalog.
type MovieIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewMovieIndex(client *elasticsearch.Client, index string) *MovieIndex {
	return &MovieIndex{client: client, index: index}
}

func (m *MovieIndex) IndexMovies(ctx context.Context, movies []models.Movie) error {
	for i := range movies {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(movies[i]); err != nil {
			return fmt.Errorf("es: encode movie %d: %w", movies[i].ID, err)
		}
		res, err := m.client.Index(
			m.index,
			&buf,
			m.client.Index.WithContext(ctx),
			m.client.Index.WithDocumentID(strconv.FormatInt(movies[i].ID, 10)),
		)
		if err != nil {
			return fmt.Errorf("es: index movie %d: %w", movies[i].ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("es: index movie %d: %s", movies[i].ID, res.Status())
		}
	}
	return nil
}

// DeleteMovie removes the document. A document that is not indexed is not
// an error.
func (m *MovieIndex) DeleteMovie(ctx context.Context, id int64) error {
	res, err := m.client.Delete(m.index, strconv.FormatInt(id, 10), m.client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es: delete movie %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es: delete movie %d: %s", id, res.Status())
	}
	return nil
}

func (m *MovieIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.Movie, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "overview"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := m.client.Search(
		m.client.Search.WithContext(ctx),
		m.client.Search.WithIndex(m.index),
		m.client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("es: search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Movie `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("es: decode: %w", err)
	}

	movies := make([]models.Movie, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		movies[i] = hit.Source
	}
	return r.Hits.Total.Value, movies, nil
}
