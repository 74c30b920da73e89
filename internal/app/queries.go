package app

import (
	"context"
	"fmt"
	"time"

	"github.com/mvalencia464/onboard/internal/domain"
)

type QueryService struct {
	repo     domain.RecordRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.RecordRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// GetRecord loads one persisted record as a fully defaulted working record,
// identity forced to the requested id.
func (s *QueryService) GetRecord(ctx context.Context, id int64) (domain.BusinessRecord, error) {
	key := fmt.Sprintf("record:%d", id)
	var rec domain.BusinessRecord
	if ok, _ := s.cache.Get(ctx, key, &rec); ok {
		return Load(rec, id), nil
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.BusinessRecord{}, err
	}
	rec = Load(rec, id)
	_ = s.cache.Set(ctx, key, rec, int(s.cacheTTL.Seconds()))
	return rec, nil
}

func (s *QueryService) ListRecords(ctx context.Context) ([]domain.RecordSummary, error) {
	const key = "records:index"
	var out []domain.RecordSummary
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// copy before caching so callers can't mutate the cached slice
	cp := make([]domain.RecordSummary, len(out))
	copy(cp, out)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	return out, nil
}
