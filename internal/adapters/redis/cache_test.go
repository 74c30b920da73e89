package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/mvalencia464/onboard/internal/adapters/redis"
	"github.com/mvalencia464/onboard/internal/domain"
)

func TestCache_RoundTripAndDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var missed domain.RecordSummary
	ok, err := cache.Get(ctx, "records:1", &missed)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss on empty cache")
	}

	want := domain.RecordSummary{ID: 1, BusinessName: "Oak & Co Roofing", Status: domain.StatusDraft}
	if err := cache.Set(ctx, "records:1", want, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.RecordSummary
	ok, err = cache.Get(ctx, "records:1", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got.ID != 1 || got.BusinessName != "Oak & Co Roofing" {
		t.Fatalf("unexpected cached value: ok=%v %+v", ok, got)
	}

	if err := cache.Del(ctx, "records:1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = cache.Get(ctx, "records:1", &got)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}
