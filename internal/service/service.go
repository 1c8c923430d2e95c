package service

import (
	"context"

	"github.com/Skotchmaster/moviehub/internal/logging"
	"github.com/Skotchmaster/moviehub/internal/models"
	"github.com/Skotchmaster/moviehub/internal/mykafka"
	"github.com/Skotchmaster/moviehub/internal/tmdb"
)

// Catalog is the external movie provider used by sync.
type Catalog interface {
	FetchPopular(ctx context.Context, page int) []tmdb.CatalogMovie
}

// SearchIndex is the full-text movie index. A nil SearchIndex means search
// runs against the database.
type SearchIndex interface {
	IndexMovies(ctx context.Context, movies []models.Movie) error
	DeleteMovie(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Movie, error)
}

// publish sends an event and only logs a failure: events are a side channel
// and never fail the request that produced them.
func publish(ctx context.Context, p mykafka.Publisher, topic, key, eventType string, payload any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, key, mykafka.NewEvent(eventType, payload)); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "type", eventType, "error", err)
	}
}
