package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mvalencia464/onboard/internal/domain"
)

const (
	// maxContextReviews bounds the completion request size.
	maxContextReviews = 100
	// minReviewTextLen: reviews at or under this length carry no usable copy.
	minReviewTextLen = 5
)

const systemInstruction = `You are an expert Business Data Enrichment AI.
Your goal is to generate a comprehensive website-skeleton configuration JSON for a local business.

INPUT: raw business profile data (reviews, address, categories).
OUTPUT: extract factual data where it exists, and infer marketing copy and service lists where it is missing.

RULES:
1. Categories:
   - Identify the primary category from the profile types or user input. Mark exactly one category isPrimary.
   - Generate 3-5 additional relevant categories (e.g. "Repairs", "Materials", "Commercial").
   - For EACH category, list 20-30 specific services.
   - If a service is mentioned in the reviews or types, mark it selected.
   - Pre-select the most common core services for this industry so the user has a solid starting point.
2. Localization:
   - Use the address to determine the city/region.
   - List 10 real neighborhoods near that location.
   - Infer environmental challenges from the city's climate (e.g. Snow, Salt, Heat).
3. Copywriting:
   - Write a tagline that sounds premium.
   - Write an About Us that incorporates the business name and city, sounding established and trustworthy.
   - Extract or generate 3 testimonials.
   - CRITICAL: only use reviews that are clearly for the business specified in the input. If a review mentions a different service or business name, IGNORE IT.
   - If real reviews are provided, paraphrase them to be punchy. If not, generate realistic placeholders.`

type contextReview struct {
	Text   string  `json:"text"`
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
}

// placeContext is the bounded prompt payload handed to the completion
// provider.
type placeContext struct {
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Website        string          `json:"website"`
	Rating         float64         `json:"rating"`
	Reviews        []contextReview `json:"reviews"`
	Types          []string        `json:"types"`
	OperatingHours []string        `json:"operating_hours"`
}

// combineReviews merges profile-native reviews with the relevance-filtered
// third-party reviews and drops entries too short to inform copy. Order is
// profile first, then feed, both in source order.
func combineReviews(businessName string, profile, feed []domain.RawReview) []domain.RawReview {
	kept := filterRelevant(businessName, feed)
	out := make([]domain.RawReview, 0, len(profile)+len(kept))
	for _, r := range append(append([]domain.RawReview{}, profile...), kept...) {
		if len(r.Text) > minReviewTextLen {
			out = append(out, r)
		}
	}
	return out
}

// generate issues the single completion call and reconciles the parsed draft
// against the verified profile fields. Any failure here is a single
// enrichment failure: the caller discards the draft and retries from the
// entry step, never partial-applies.
func (s *OnboardingService) generate(ctx context.Context, place domain.Place, combined []domain.RawReview) (domain.BusinessRecord, error) {
	pc := placeContext{
		Name:    place.Name,
		Address: place.FormattedAddress,
		Phone:   place.FormattedPhoneNumber,
		Website: place.Website,
		Rating:  place.Rating,
		Types:   place.Types,
	}
	if place.OpeningHours != nil {
		pc.OperatingHours = place.OpeningHours.WeekdayText
	}
	if len(combined) > maxContextReviews {
		combined = combined[:maxContextReviews]
	}
	pc.Reviews = make([]contextReview, 0, len(combined))
	for _, r := range combined {
		pc.Reviews = append(pc.Reviews, contextReview{Text: r.Text, Author: r.Author, Rating: r.Rating})
	}

	ctxJSON, err := json.MarshalIndent(pc, "", "  ")
	if err != nil {
		return domain.BusinessRecord{}, fmt.Errorf("marshal context: %w", err)
	}

	prompt := fmt.Sprintf(`Analyze this business profile data:
%s

Generate the onboarding record JSON.

Specific overrides:
- Use the exact phone number and website from the data if available.
- CRITICAL: DO NOT GUESS OR INVENT AN EMAIL ADDRESS. Leave primaryEmail as an empty string.
- CRITICAL: DO NOT GUESS OR INVENT A WEBSITE URL. If the input has no website, leave websiteUrl as an empty string.
- If operating_hours is present, format it as a single string summary (e.g. "Mon-Fri 8am-5pm").
- Infer social media handles based on the business name (e.g. facebook.com/businessname).`, ctxJSON)

	text, err := s.ai.GenerateRecord(ctx, systemInstruction, prompt)
	if err != nil {
		return domain.BusinessRecord{}, err
	}

	var draft domain.BusinessRecord
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		return domain.BusinessRecord{}, fmt.Errorf("parse draft record: %w", err)
	}

	overrideVerified(&draft, place)
	return draft, nil
}

// overrideVerified enforces field precedence: a field the system can verify
// independently is force-set from the profile, whatever the model proposed.
// Generated text fills gaps, never contact identifiers.
func overrideVerified(draft *domain.BusinessRecord, place domain.Place) {
	if place.Name != "" {
		draft.BusinessName = place.Name
	}
	if place.FormattedAddress != "" {
		draft.Address = place.FormattedAddress
	}
	if place.FormattedPhoneNumber != "" {
		draft.PrimaryPhone = place.FormattedPhoneNumber
	}
	// Verbatim profile website or empty. Never a model guess.
	draft.WebsiteURL = place.Website
	// The profile source never supplies an email; a fabricated one is a
	// contract violation.
	draft.PrimaryEmail = ""
	if place.URL != "" {
		draft.GoogleBusinessProfileURL = place.URL
	}
}
