package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mvalencia464/onboard/internal/adapters/observability"
	"github.com/mvalencia464/onboard/internal/domain"
)

// OnboardingService runs the profile-to-record pipeline and owns record
// lifecycle transitions.
type OnboardingService struct {
	places domain.PlaceClient
	feed   domain.ReviewFeed
	ai     domain.Completer
	repo   domain.RecordRepository
	cache  domain.Cache
}

func NewOnboardingService(p domain.PlaceClient, f domain.ReviewFeed, ai domain.Completer, r domain.RecordRepository, cache domain.Cache) *OnboardingService {
	return &OnboardingService{places: p, feed: f, ai: ai, repo: r, cache: cache}
}

// Onboard runs the full pipeline for one place: profile lookup, review feed
// aggregation, normalization, relevance filtering, enrichment, and draft
// adoption. The returned record is not persisted; the caller decides when to
// save. A feed failure degrades to an empty review set; an enrichment failure
// fails the whole run with nothing applied.
func (s *OnboardingService) Onboard(ctx context.Context, placeID string) (domain.BusinessRecord, error) {
	place, err := s.places.Details(ctx, placeID)
	if err != nil {
		return domain.BusinessRecord{}, fmt.Errorf("place lookup %s: %w", placeID, err)
	}

	feedRaw, err := s.feed.FetchAll(ctx)
	if err != nil {
		// Transient feed trouble never kills the run; the pipeline proceeds
		// on profile reviews alone.
		log.Warn().Err(err).Msg("review feed unavailable, continuing without it")
		feedRaw = nil
	}

	profileReviews := mapProfileReviews(place.Reviews)
	feedReviews := mapFeedReviews(feedRaw)
	combined := combineReviews(place.Name, profileReviews, feedReviews)

	draft, err := s.generate(ctx, place, combined)
	observability.ObserveEnrichment(err)
	if err != nil {
		return domain.BusinessRecord{}, fmt.Errorf("enrich %s: %w", placeID, err)
	}

	// The full buffer keeps everything normalized, filtered or not, so the
	// operator can audit what informed the generated copy.
	buffer := append(append([]domain.RawReview{}, profileReviews...), feedReviews...)
	rec := Adopt(draft, place.PlaceID, buffer)

	log.Info().
		Str("place_id", place.PlaceID).
		Str("business", rec.BusinessName).
		Int("reviews_combined", len(combined)).
		Int("reviews_buffered", len(buffer)).
		Msg("onboarding draft generated")
	return rec, nil
}

// Manual starts a working record from nothing but a business name.
func (s *OnboardingService) Manual(name string) domain.BusinessRecord {
	rec := domain.NewRecord()
	rec.BusinessName = name
	return rec
}

// FindPlaces exposes the profile search used by the wizard entry step.
func (s *OnboardingService) FindPlaces(ctx context.Context, query string) ([]domain.PlaceSummary, error) {
	return s.places.Find(ctx, query)
}

// SaveDraft persists the record with draft status. On failure the caller's
// in-memory record is untouched so the operator can retry.
func (s *OnboardingService) SaveDraft(ctx context.Context, rec domain.BusinessRecord) (domain.BusinessRecord, error) {
	saved, err := s.repo.Save(ctx, rec, domain.StatusDraft)
	if err != nil {
		return domain.BusinessRecord{}, err
	}
	s.invalidate(ctx, saved.ID)
	return saved, nil
}

// Finalize persists the record as onboarded and returns the export document.
func (s *OnboardingService) Finalize(ctx context.Context, rec domain.BusinessRecord) (domain.BusinessRecord, []byte, error) {
	saved, err := s.repo.Save(ctx, rec, domain.StatusOnboarded)
	if err != nil {
		return domain.BusinessRecord{}, nil, err
	}
	export, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return domain.BusinessRecord{}, nil, fmt.Errorf("serialize export: %w", err)
	}
	s.invalidate(ctx, saved.ID)
	return saved, export, nil
}

func (s *OnboardingService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("record:%d", id))
	_ = s.cache.Del(ctx, "records:index")
}
