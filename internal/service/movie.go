package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/moviehub/internal/logging"
	"github.com/Skotchmaster/moviehub/internal/models"
	"github.com/Skotchmaster/moviehub/internal/mykafka"
	"github.com/Skotchmaster/moviehub/internal/repo"
	"github.com/Skotchmaster/moviehub/internal/tmdb"
	"github.com/Skotchmaster/moviehub/internal/transport"
)

const (
	SyncPages   = 10
	TopRatedMax = 5
)

type MovieService struct {
	Repo    *repo.GormRepo
	Catalog Catalog
	Index   SearchIndex
	Events  mykafka.Publisher
	Now     func() time.Time
}

func (s *MovieService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Sync pulls the first SyncPages pages of popular movies and stores the ones
// not seen before. Provider failures only shrink the batch.
func (s *MovieService) Sync(ctx context.Context) (int, error) {
	l := logging.FromContext(ctx).With("svc", "movie.sync")

	seen := make(map[int64]struct{})
	var batch []models.Movie
	for page := 1; page <= SyncPages; page++ {
		for _, m := range s.Catalog.FetchPopular(ctx, page) {
			if _, dup := seen[m.ID]; dup || m.ID == 0 {
				continue
			}
			seen[m.ID] = struct{}{}
			batch = append(batch, fromCatalog(m))
		}
	}

	added, err := s.Repo.InsertMissingMovies(ctx, batch)
	if err != nil {
		l.Error("sync_error", "status", 500, "reason", "cannot store movies", "error", err)
		return 0, err
	}

	if s.Index != nil && len(added) > 0 {
		if err := s.Index.IndexMovies(ctx, added); err != nil {
			l.Warn("sync_index_error", "error", err)
		}
	}

	publish(ctx, s.Events, mykafka.TopicMovieEvents, "sync", "movies_synced",
		map[string]any{"fetched": len(batch), "added": len(added)})
	l.Info("sync_success", "fetched", len(batch), "added", len(added))
	return len(added), nil
}

func fromCatalog(m tmdb.CatalogMovie) models.Movie {
	return models.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterPath:  m.PosterPath,
		Rating:      m.VoteAverage,
		ReleaseDate: m.ReleaseDate,
	}
}

func (s *MovieService) List(ctx context.Context, q string, offset, limit int) (int64, []models.Movie, error) {
	return s.Repo.ListMovies(ctx, strings.TrimSpace(q), offset, limit)
}

func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	return s.Repo.GetMovie(ctx, id)
}

func (s *MovieService) TopRated(ctx context.Context) ([]models.Movie, error) {
	return s.Repo.TopRatedMovies(ctx, TopRatedMax)
}

// Search uses the search index when one is configured and falls back to a
// title substring match otherwise, or when the index is unavailable.
func (s *MovieService) Search(ctx context.Context, q string, offset, limit int) (int64, []models.Movie, error) {
	q = strings.TrimSpace(q)
	if s.Index != nil && q != "" {
		total, movies, err := s.Index.Search(ctx, q, offset, limit)
		if err == nil {
			return total, movies, nil
		}
		logging.FromContext(ctx).Warn("search_index_error", "reason", "falling back to database", "error", err)
	}
	return s.Repo.ListMovies(ctx, q, offset, limit)
}

func (s *MovieService) Create(ctx context.Context, req transport.CreateMovieRequest) (*models.Movie, error) {
	m := &models.Movie{
		Title:       req.Title,
		Overview:    req.Overview,
		PosterPath:  req.PosterPath,
		ReleaseDate: req.ReleaseDate,
	}
	if req.ID != nil {
		m.ID = *req.ID
	} else {
		m.ID = s.now().Unix()
	}
	if req.Rating != nil {
		m.Rating = *req.Rating
	}

	if err := s.Repo.CreateMovie(ctx, m); err != nil {
		return nil, err
	}
	s.reindex(ctx, m)
	publish(ctx, s.Events, mykafka.TopicMovieEvents, movieKey(m.ID), "movie_created", m)
	return m, nil
}

// UpdateTitle renames the movie. A missing movie is not an error.
func (s *MovieService) UpdateTitle(ctx context.Context, id int64, title string) error {
	n, err := s.Repo.UpdateMovieTitle(ctx, id, title)
	if err != nil || n == 0 {
		return err
	}
	if m, err := s.Repo.GetMovie(ctx, id); err == nil {
		s.reindex(ctx, m)
	}
	publish(ctx, s.Events, mykafka.TopicMovieEvents, movieKey(id), "movie_updated",
		map[string]any{"movie_id": id, "title": title})
	return nil
}

// Delete removes the movie with its reviews and list memberships. Deleting a
// missing movie succeeds.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	n, err := s.Repo.DeleteMovie(ctx, id)
	if err != nil || n == 0 {
		return err
	}
	if s.Index != nil {
		if err := s.Index.DeleteMovie(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("index_delete_error", "movie_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicMovieEvents, movieKey(id), "movie_deleted", map[string]any{"movie_id": id})
	return nil
}

func (s *MovieService) reindex(ctx context.Context, m *models.Movie) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexMovies(ctx, []models.Movie{*m}); err != nil {
		logging.FromContext(ctx).Warn("index_movie_error", "movie_id", m.ID, "error", err)
	}
}

func movieKey(id int64) string { return strconv.FormatInt(id, 10) }
