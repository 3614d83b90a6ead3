package main // movie catalog REST service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/flatdango/internal/config"
	"github.com/iliyamo/flatdango/internal/database"
	"github.com/iliyamo/flatdango/internal/handler"
	"github.com/iliyamo/flatdango/internal/middleware"
	"github.com/iliyamo/flatdango/internal/repository"
	"github.com/iliyamo/flatdango/internal/router"
)

// store is what the catalog needs from its backing store: the handler
// operations plus seeding.
type store interface {
	handler.MovieStore
	repository.Upserter
}

func main() {
	config.LoadDotEnv()
	cfg := config.LoadCatalog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var movies store
	switch cfg.Store {
	case "mysql":
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("db connect failed: %v", err)
		}
		defer func() { _ = db.Close() }()
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("db migrate failed: %v", err)
		}
		movies = repository.NewMovieRepo(db)
	case "memory":
		movies = repository.NewMemoryMovieRepo()
	default:
		log.Fatalf("unknown CATALOG_STORE %q (want memory or mysql)", cfg.Store)
	}

	// only an empty store is seeded so a restart never resets sales
	existing, err := movies.ListAll(ctx)
	if err != nil {
		log.Fatalf("list movies failed: %v", err)
	}
	if cfg.SeedPath != "" && len(existing) == 0 {
		n, err := repository.SeedFromFile(ctx, movies, cfg.SeedPath)
		if err != nil {
			log.Fatalf("seed %s failed: %v", cfg.SeedPath, err)
		}
		log.Printf("catalog: seeded %d movies from %s", n, cfg.SeedPath)
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterCatalog(e, &handler.CatalogHandler{Store: movies, Cache: cache}, cache, limiter)

	addr := ":" + cfg.Port
	log.Printf("catalog listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.Store)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("catalog: shutdown: %v", err)
	}
}
