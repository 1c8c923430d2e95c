package es

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/moviehub/internal/models"
)

type recorded struct {
	method, path string
	body         string
}

func fakeCluster(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handle(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client, &calls
}

func TestMovieIndex_Search(t *testing.T) {
	client, calls := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":2},"hits":[
			{"_source":{"id":603,"title":"The Matrix","rating":8.2}},
			{"_source":{"id":604,"title":"The Matrix Reloaded","rating":7}}]}}`))
	})

	total, movies, err := NewMovieIndex(client, "movies").Search(context.Background(), "matrix", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(603), movies[0].ID)
	assert.Equal(t, "The Matrix Reloaded", movies[1].Title)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/movies/_search", call.path)

	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(call.body), &q))
	mm := q["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "matrix", mm["query"])
	assert.EqualValues(t, 10, q["size"])
}

func TestMovieIndex_SearchErrorStatus(t *testing.T) {
	client, _ := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	_, _, err := NewMovieIndex(client, "movies").Search(context.Background(), "x", 0, 10)
	assert.Error(t, err)
}

func TestMovieIndex_IndexAndDelete(t *testing.T) {
	client, calls := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/2") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})
	idx := NewMovieIndex(client, "movies")
	ctx := context.Background()

	require.NoError(t, idx.IndexMovies(ctx, []models.Movie{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}}))
	require.NoError(t, idx.DeleteMovie(ctx, 1))
	require.NoError(t, idx.DeleteMovie(ctx, 2))

	require.Len(t, *calls, 4)
	assert.Equal(t, "/movies/_doc/1", (*calls)[0].path)
	assert.Contains(t, (*calls)[0].body, `"title":"One"`)
	assert.Equal(t, http.MethodDelete, (*calls)[2].method)
}
