package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/mvalencia464/onboard/internal/adapters/beacon"
	"github.com/mvalencia464/onboard/internal/adapters/gemini"
	"github.com/mvalencia464/onboard/internal/adapters/observability"
	"github.com/mvalencia464/onboard/internal/adapters/places"
	redisad "github.com/mvalencia464/onboard/internal/adapters/redis"
	"github.com/mvalencia464/onboard/internal/app"
	"github.com/mvalencia464/onboard/internal/shared"
	mysqlrepo "github.com/mvalencia464/onboard/internal/storage/mysql"
)

// One-shot bulk runner: onboards every configured place id and saves the
// generated drafts, then exits.
func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if len(cfg.PlaceIDs) == 0 {
		log.Fatal().Msg("ONBOARD_PLACE_IDS is empty, nothing to do")
	}
	log.Info().
		Int("workers", cfg.Workers).
		Int("places", len(cfg.PlaceIDs)).
		Msg("onboarder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

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

	svc := app.NewOnboardingService(placeClient, feed, ai, repo, cache)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, id := range cfg.PlaceIDs {
		id := id

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(placeID string) {
			defer wg.Done()
			defer sem.Release(1)

			rec, err := svc.Onboard(ctx, placeID)
			if err != nil {
				log.Warn().Str("place_id", placeID).Err(err).Msg("onboarding failed")
				return
			}
			saved, err := svc.SaveDraft(ctx, rec)
			if err != nil {
				log.Warn().Str("place_id", placeID).Err(err).Msg("save failed")
				return
			}
			log.Info().Str("place_id", placeID).Int64("id", saved.ID).Msg("draft saved")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("bulk onboarding completed")
}
