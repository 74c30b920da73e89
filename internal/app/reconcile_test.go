package app

import (
	"reflect"
	"testing"

	"github.com/mvalencia464/onboard/internal/domain"
)

func TestAdopt_DefaultsAndOverlay(t *testing.T) {
	draft := domain.BusinessRecord{
		BusinessName: "Summit Decks",
		Tagline:      "Built to last",
		Socials:      domain.Socials{Facebook: "facebook.com/summitdecks"},
		Categories: []domain.ServiceCategory{
			{Name: "Decks", IsPrimary: true, Services: []domain.ServiceItem{{Name: "Composite Decking", Selected: true}}},
			{Name: "Repairs", IsPrimary: true},
		},
	}
	raw := []domain.RawReview{{Text: "great deck", Author: "Dana", Rating: 5}}

	rec := Adopt(draft, "place-1", raw)

	if rec.BusinessName != "Summit Decks" || rec.GooglePlaceID != "place-1" {
		t.Fatalf("unexpected identity fields: %+v", rec)
	}
	if rec.Status != domain.StatusNew {
		t.Fatalf("status = %q, want %q", rec.Status, domain.StatusNew)
	}
	if rec.BrandColor != "#EA580C" || rec.FontPreference != "Modern" {
		t.Fatalf("branding defaults not applied: %q %q", rec.BrandColor, rec.FontPreference)
	}
	if rec.Socials.Facebook != "facebook.com/summitdecks" || rec.Socials.Instagram != "" {
		t.Fatalf("socials merge wrong: %+v", rec.Socials)
	}
	if rec.Categories[0].IsPrimary != true || rec.Categories[1].IsPrimary != false {
		t.Fatalf("expected a single primary category: %+v", rec.Categories)
	}
	if rec.Categories[1].Services == nil {
		t.Fatalf("nested services list must be non-nil")
	}
	if rec.Neighborhoods == nil || rec.Projects == nil || rec.Testimonials == nil {
		t.Fatalf("list fields must be non-nil")
	}
	if len(rec.RawReviews) != 1 || rec.RawReviews[0].Text != "great deck" {
		t.Fatalf("raw reviews not attached: %+v", rec.RawReviews)
	}
}

func TestAdopt_Idempotent(t *testing.T) {
	draft := domain.BusinessRecord{
		BusinessName: "Summit Decks",
		AboutUs:      "Established builders.",
		Socials:      domain.Socials{Yelp: "yelp.com/biz/summit"},
		Neighborhoods: []string{
			"Riverside", "Old Town",
		},
	}
	first := Adopt(draft, "place-1", nil)
	second := Adopt(first, "place-1", first.RawReviews)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("adopt not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAdopt_NeverAdoptsEmail(t *testing.T) {
	draft := domain.BusinessRecord{BusinessName: "Summit Decks", PrimaryEmail: "madeup@example.com"}
	rec := Adopt(draft, "p", nil)
	if rec.PrimaryEmail != "" {
		t.Fatalf("primary email must stay empty, got %q", rec.PrimaryEmail)
	}
}

func TestLoad_ForcesIdentityAndDefaults(t *testing.T) {
	rec := Load(domain.BusinessRecord{ID: 999, BusinessName: "Summit Decks"}, 7)
	if rec.ID != 7 {
		t.Fatalf("id = %d, want 7", rec.ID)
	}
	if rec.Status != domain.StatusNew {
		t.Fatalf("status = %q, want %q", rec.Status, domain.StatusNew)
	}
	if rec.BrandColor == "" || rec.ProcessSteps == nil || rec.RawReviews == nil {
		t.Fatalf("defaults not restored: %+v", rec)
	}
	if rec.Categories == nil || rec.Neighborhoods == nil {
		t.Fatalf("containers must be non-nil")
	}
}
