package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/moviehub/internal/cache"
	"github.com/Skotchmaster/moviehub/internal/config"
	"github.com/Skotchmaster/moviehub/internal/db"
	"github.com/Skotchmaster/moviehub/internal/es"
	"github.com/Skotchmaster/moviehub/internal/httpserver"
	"github.com/Skotchmaster/moviehub/internal/identity"
	"github.com/Skotchmaster/moviehub/internal/logging"
	authmw "github.com/Skotchmaster/moviehub/internal/middleware/auth"
	"github.com/Skotchmaster/moviehub/internal/middleware/ratelimit"
	"github.com/Skotchmaster/moviehub/internal/mykafka"
	"github.com/Skotchmaster/moviehub/internal/repo"
	"github.com/Skotchmaster/moviehub/internal/service"
	"github.com/Skotchmaster/moviehub/internal/tmdb"
	"github.com/Skotchmaster/moviehub/internal/tokens"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	tokenSvc, err := tokens.NewService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	gdb, err := db.Open(openCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	r := repo.New(gdb)

	rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	redisCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := cache.Ping(redisCtx, rdb); err != nil {
		logger.Warn("redis_unavailable", "addr", cfg.RedisAddr, "error", err)
	}
	cancel()
	visits := cache.NewRedisCounter(rdb)

	var events mykafka.Publisher = mykafka.Noop{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers, logger)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		events = producer
	}

	var index service.SearchIndex
	if cfg.ESURL != "" {
		esCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		client, err := es.NewClient(esCtx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		cancel()
		if err != nil {
			logger.Warn("es_unavailable", "error", err)
		} else {
			index = es.NewMovieIndex(client, cfg.ESIndex)
		}
	}

	authSvc := &service.AuthService{Repo: r, Tokens: tokenSvc, Events: events}
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("bootstrap admin: %v", err)
		}
	}

	ipExtractor, err := httpserver.IPExtractor(cfg.TrustedProxies)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := httpserver.New(logger, &httpserver.Deps{
		System: &httpserver.SystemHTTP{Visits: visits},
		Auth:   &httpserver.AuthHTTP{Svc: authSvc},
		Users:  &httpserver.UserHTTP{Svc: &service.UserService{Repo: r, Events: events}},
		Movies: &httpserver.MovieHTTP{Svc: &service.MovieService{
			Repo:    r,
			Catalog: tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, cfg.TMDBLanguage),
			Index:   index,
			Events:  events,
		}},
		Reviews:     &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: r, Events: events}},
		Lists:       &httpserver.ListHTTP{Svc: &service.ListService{Repo: r, Events: events}},
		AuthMW:      authmw.New(identity.NewResolver(tokenSvc, r)),
		AuthLimiter: ratelimit.NewPerIP(cfg.AuthRateLimit, cfg.AuthRateBurst),
		IPExtractor: ipExtractor,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}
	if err := rdb.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}
	logger.Info("shutdown complete")
}
