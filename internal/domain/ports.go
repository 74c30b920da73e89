package domain

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("onboard: not found")

// RecordRepository is the persistence boundary. Save upserts keyed by the
// optional record id and falls back to insert when the update matches no row;
// the returned copy carries the assigned id and status.
type RecordRepository interface {
	Save(ctx context.Context, rec BusinessRecord, status string) (BusinessRecord, error)
	List(ctx context.Context) ([]RecordSummary, error)
	GetByID(ctx context.Context, id int64) (BusinessRecord, error)
}

// RecordSummary is the list-view projection of a persisted record.
type RecordSummary struct {
	ID           int64     `json:"id"`
	BusinessName string    `json:"businessName"`
	PlaceID      string    `json:"placeId,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ReviewFeed aggregates the shared third-party review feed to completion.
// A missing credential yields an empty slice, not an error.
type ReviewFeed interface {
	FetchAll(ctx context.Context) ([]map[string]any, error)
}

// PlaceClient supplies raw business profiles.
type PlaceClient interface {
	Details(ctx context.Context, placeID string) (Place, error)
	Find(ctx context.Context, query string) ([]PlaceSummary, error)
}

// Completer issues one structured completion request and returns the raw JSON
// text of the draft record. An empty completion is an error.
type Completer interface {
	GenerateRecord(ctx context.Context, system, prompt string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// FileStore uploads one asset and returns its public URL.
type FileStore interface {
	Upload(ctx context.Context, name string, content []byte) (string, error)
}
