package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mvalencia464/onboard/internal/adapters/beacon"
	"github.com/mvalencia464/onboard/internal/adapters/bucket"
	"github.com/mvalencia464/onboard/internal/adapters/gemini"
	server "github.com/mvalencia464/onboard/internal/adapters/http_server"
	"github.com/mvalencia464/onboard/internal/adapters/observability"
	"github.com/mvalencia464/onboard/internal/adapters/places"
	redisad "github.com/mvalencia464/onboard/internal/adapters/redis"
	"github.com/mvalencia464/onboard/internal/app"
	"github.com/mvalencia464/onboard/internal/shared"
	mysqlrepo "github.com/mvalencia464/onboard/internal/storage/mysql"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	placeClient, err := places.New(cfg.PlacesBase, cfg.PlacesKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places client")
	}
	feed := beacon.New(cfg.BeaconBase, cfg.BeaconToken, int(cfg.FeedRPS))
	ai, err := gemini.New(ctx, cfg.GeminiKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize completion client")
	}

	onboarding := app.NewOnboardingService(placeClient, feed, ai, repo, cache)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)

	var uploader *app.Uploader
	if cfg.BucketBase != "" {
		store, err := bucket.New(cfg.BucketBase, cfg.BucketName, cfg.BucketToken)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize file store")
		}
		uploader = app.NewUploader(store)
	} else {
		log.Warn().Msg("BUCKET_BASE_URL is empty, asset uploads disabled")
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, S: onboarding, U: uploader})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
