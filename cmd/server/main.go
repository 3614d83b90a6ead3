package main // storefront web server

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

	"github.com/iliyamo/flatdango/internal/catalog"
	"github.com/iliyamo/flatdango/internal/config"
	"github.com/iliyamo/flatdango/internal/handler"
	"github.com/iliyamo/flatdango/internal/middleware"
	"github.com/iliyamo/flatdango/internal/queue"
	"github.com/iliyamo/flatdango/internal/router"
	"github.com/iliyamo/flatdango/internal/service"
	"github.com/iliyamo/flatdango/internal/storefront"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout)

	// purchase events are optional; a nil publisher skips them
	var events storefront.EventPublisher
	if cfg.EventsEnabled {
		events = service.NewQueuePublisher(cfg.RabbitURL)
		consumer := &queue.PurchaseLogger{URL: cfg.RabbitURL, Dir: cfg.PurchaseLogDir}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("purchase-consumer: stopped: %v", err)
			}
		}()
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	renderer := storefront.MustRenderer()
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterStorefront(e, &handler.StorefrontHandler{
		Service:  storefront.NewService(client, events, cfg.TicketSecret, cfg.FeaturedMovieID),
		Renderer: renderer,
	}, limiter)

	addr := ":" + cfg.Port
	log.Printf("storefront listening on %s (env=%s, catalog=%s)", addr, cfg.Env, cfg.CatalogURL)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("storefront: shutdown: %v", err)
	}
}
