package app

import (
	"github.com/mvalencia464/onboard/internal/domain"
)

// Adopt merges a freshly generated draft into a fully defaulted working
// record. The merge is field-by-field, not a structural overlay, so the
// nested-container semantics are an explicit contract: the socials key set is
// merged key-by-key, every list field comes out non-nil, and pipeline-only
// fields (place id, raw-review buffer) are attached here because they are
// never part of the generation schema. Adopt is idempotent: adopting its own
// output yields the same record.
func Adopt(draft domain.BusinessRecord, placeID string, rawReviews []domain.RawReview) domain.BusinessRecord {
	rec := domain.NewRecord()

	setIf(&rec.BusinessName, draft.BusinessName)
	setIf(&rec.Tagline, draft.Tagline)
	setIf(&rec.PrimaryPhone, draft.PrimaryPhone)
	setIf(&rec.Address, draft.Address)
	setIf(&rec.OperatingHours, draft.OperatingHours)
	setIf(&rec.LicenseNumber, draft.LicenseNumber)
	setIf(&rec.GoogleBusinessProfileURL, draft.GoogleBusinessProfileURL)
	setIf(&rec.WebsiteURL, draft.WebsiteURL)
	setIf(&rec.BrandColor, draft.BrandColor)
	setIf(&rec.FontPreference, draft.FontPreference)
	setIf(&rec.LogoURL, draft.LogoURL)
	setIf(&rec.AboutUs, draft.AboutUs)
	setIf(&rec.PrimaryCity, draft.PrimaryCity)
	setIf(&rec.DeckingBrand, draft.DeckingBrand)
	setIf(&rec.RailingType, draft.RailingType)
	setIf(&rec.FoundationType, draft.FoundationType)

	// PrimaryEmail is deliberately NOT adopted from the draft: the precedence
	// override already cleared it and nothing upstream may reintroduce one.

	rec.Neighborhoods = orEmpty(draft.Neighborhoods)
	rec.EnvironmentalChallenges = orEmpty(draft.EnvironmentalChallenges)
	rec.Categories = orEmptyCategories(draft.Categories)
	rec.Projects = orEmptyProjects(draft.Projects)
	rec.Testimonials = orEmptyTestimonials(draft.Testimonials)
	if len(draft.ProcessSteps) > 0 {
		rec.ProcessSteps = draft.ProcessSteps
	}

	// Socials: key-by-key so the fixed key set is never partially absent.
	setIf(&rec.Socials.Instagram, draft.Socials.Instagram)
	setIf(&rec.Socials.Facebook, draft.Socials.Facebook)
	setIf(&rec.Socials.LinkedIn, draft.Socials.LinkedIn)
	setIf(&rec.Socials.Yelp, draft.Socials.Yelp)
	setIf(&rec.Socials.Houzz, draft.Socials.Houzz)
	setIf(&rec.Socials.BBB, draft.Socials.BBB)

	enforceSinglePrimary(rec.Categories)

	rec.GooglePlaceID = placeID
	rec.RawReviews = append([]domain.RawReview{}, rawReviews...)
	rec.Status = domain.StatusNew
	return rec
}

// Load rehydrates a persisted record as the working record. The identity is
// force-set to the id the record was fetched by, so a stale in-memory id
// never survives a reload, and containers a partial payload omitted are
// re-defaulted.
func Load(rec domain.BusinessRecord, id int64) domain.BusinessRecord {
	rec.ID = id
	if rec.Status == "" {
		rec.Status = domain.StatusNew
	}
	if rec.BrandColor == "" || rec.FontPreference == "" {
		def := domain.NewRecord()
		setIf(&rec.BrandColor, def.BrandColor)
		setIf(&rec.FontPreference, def.FontPreference)
	}
	rec.Neighborhoods = orEmpty(rec.Neighborhoods)
	rec.EnvironmentalChallenges = orEmpty(rec.EnvironmentalChallenges)
	rec.Categories = orEmptyCategories(rec.Categories)
	rec.Projects = orEmptyProjects(rec.Projects)
	rec.Testimonials = orEmptyTestimonials(rec.Testimonials)
	if rec.ProcessSteps == nil {
		rec.ProcessSteps = domain.NewRecord().ProcessSteps
	}
	if rec.RawReviews == nil {
		rec.RawReviews = []domain.RawReview{}
	}
	enforceSinglePrimary(rec.Categories)
	return rec
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func orEmptyCategories(in []domain.ServiceCategory) []domain.ServiceCategory {
	if in == nil {
		return []domain.ServiceCategory{}
	}
	for i := range in {
		if in[i].Services == nil {
			in[i].Services = []domain.ServiceItem{}
		}
	}
	return in
}

func orEmptyProjects(in []domain.Project) []domain.Project {
	if in == nil {
		return []domain.Project{}
	}
	return in
}

func orEmptyTestimonials(in []domain.Testimonial) []domain.Testimonial {
	if in == nil {
		return []domain.Testimonial{}
	}
	return in
}

// enforceSinglePrimary keeps the first primary flag and clears any others.
func enforceSinglePrimary(cats []domain.ServiceCategory) {
	seen := false
	for i := range cats {
		if cats[i].IsPrimary {
			if seen {
				cats[i].IsPrimary = false
			}
			seen = true
		}
	}
}
