package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mvalencia464/onboard/internal/app"
)

type fakeStore struct {
	mu       sync.Mutex
	inFlight int32
	peak     int32
	fail     map[string]bool
	calls    []string
}

func (f *fakeStore) Upload(_ context.Context, name string, _ []byte) (string, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		prev := atomic.LoadInt32(&f.peak)
		if cur <= prev || atomic.CompareAndSwapInt32(&f.peak, prev, cur) {
			break
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
	if f.fail[name] {
		return "", errors.New("storage rejected")
	}
	return "https://cdn.example.com/" + name, nil
}

func TestUploadAll_BatchesOfThree(t *testing.T) {
	store := &fakeStore{}
	var assets []app.Asset
	for i := 0; i < 7; i++ {
		assets = append(assets, app.Asset{Name: fmt.Sprintf("img-%d.png", i), Content: []byte("x")})
	}

	sum := app.NewUploader(store).UploadAll(context.Background(), assets)

	if got := atomic.LoadInt32(&store.peak); got > 3 {
		t.Fatalf("concurrency peaked at %d, want <= 3", got)
	}
	if len(sum.Uploaded) != 7 || len(sum.Failed) != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if len(store.calls) != 7 {
		t.Fatalf("expected 7 uploads, got %d", len(store.calls))
	}
}

func TestUploadAll_FailureIsolated(t *testing.T) {
	store := &fakeStore{fail: map[string]bool{"bad.png": true}}
	assets := []app.Asset{
		{Name: "a.png"}, {Name: "bad.png"}, {Name: "c.png"}, {Name: "d.png"},
	}

	sum := app.NewUploader(store).UploadAll(context.Background(), assets)

	if len(sum.Failed) != 1 || sum.Failed[0] != "bad.png" {
		t.Fatalf("unexpected failures: %+v", sum.Failed)
	}
	if len(sum.Uploaded) != 3 {
		t.Fatalf("expected 3 uploads despite one failure, got %+v", sum.Uploaded)
	}
}

func TestUploadAll_Empty(t *testing.T) {
	sum := app.NewUploader(&fakeStore{}).UploadAll(context.Background(), nil)
	if sum.Uploaded == nil || sum.Failed == nil {
		t.Fatalf("summary lists must be non-nil")
	}
	if len(sum.Uploaded) != 0 || len(sum.Failed) != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}
