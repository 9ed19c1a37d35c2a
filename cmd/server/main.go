package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/movie-reservation/internal/catalog"    // movie catalog client
	"github.com/iliyamo/movie-reservation/internal/config"     // env config loader
	"github.com/iliyamo/movie-reservation/internal/database"   // MySQL connector
	"github.com/iliyamo/movie-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/movie-reservation/internal/middleware" // rate limit / cache middleware
	"github.com/iliyamo/movie-reservation/internal/queue"      // reservation event consumer
	"github.com/iliyamo/movie-reservation/internal/repository" // data access layer
	"github.com/iliyamo/movie-reservation/internal/router"     // route registration
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	reservations := repository.NewReservationRepo(db)
	movies := catalog.New(cfg.MovieAPIBase, cfg.MovieAPIToken)

	e := echo.New()
	e.HideBanner = true

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens))
	// Catalog proxy responses are cacheable; everything else is not.
	router.RegisterMovies(e, handler.NewMovieHandler(movies),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterProtected(e,
		handler.NewReservationHandler(reservations, movies),
		handler.NewUserHandler(),
		cfg.JWTSecret)

	// Background consumer appends confirmed reservations to logs/reservations.log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
