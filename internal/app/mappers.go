package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/mvalencia464/onboard/internal/domain"
)

/********** alias registry (single source of truth) **********/

// The feed has shipped several review shapes over the years; each logical
// field is an ordered candidate list, first non-empty wins.
var feedAliases = map[string][]string{
	"text":      {"review", "body", "text", "content"},
	"author":    {"reviewer.name", "author_name", "name"},
	"source_id": {"id", "review_id", "reviewId"},
	"date":      {"created_at", "date"},
}

const (
	fallbackFeedAuthor    = "Verified Customer"
	fallbackProfileAuthor = "Google User"
	defaultRating         = 5
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstAlias: first non-empty string for a named alias set.
func firstAlias(m map[string]any, key string) string {
	for _, p := range feedAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// stringify renders a string-or-number field (feed timestamps come as both).
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	}
	return ""
}

// ratingValue resolves the heterogeneous rating shapes: a nested object
// carries the number in its score field, a plain number is used as-is, and
// anything unrecoverable defaults to 5.
func ratingValue(v any) float64 {
	switch t := v.(type) {
	case map[string]any:
		if f, ok := t["score"].(float64); ok && f > 0 {
			return f
		}
		return defaultRating
	case float64:
		if t > 0 {
			return t
		}
	case int:
		if t > 0 {
			return float64(t)
		}
	}
	return defaultRating
}

/********** feed review mapper **********/

func mapFeedReview(m map[string]any) domain.RawReview {
	author := firstAlias(m, "author")
	if author == "" {
		author = fallbackFeedAuthor
	}

	date := ""
	for _, p := range feedAliases["date"] {
		if s := stringify(lookupAny(m, p)); s != "" {
			date = s
			break
		}
	}
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}

	var sourceID string
	for _, p := range feedAliases["source_id"] {
		if s := stringify(lookupAny(m, p)); s != "" {
			sourceID = s
			break
		}
	}

	return domain.RawReview{
		SourceID: sourceID,
		Source:   domain.SourceThirdParty,
		Text:     firstAlias(m, "text"),
		Author:   author,
		Rating:   ratingValue(m["rating"]),
		Date:     date,
	}
}

func mapFeedReviews(in []map[string]any) []domain.RawReview {
	out := make([]domain.RawReview, 0, len(in))
	for _, m := range in {
		out = append(out, mapFeedReview(m))
	}
	return out
}

/********** profile review mapper **********/

func mapProfileReview(pr domain.PlaceReview) domain.RawReview {
	author := pr.AuthorName
	if author == "" {
		author = fallbackProfileAuthor
	}
	rating := pr.Rating
	if rating <= 0 {
		rating = defaultRating
	}
	date := pr.RelativeTime
	if date == "" && pr.Time != 0 {
		date = strconv.FormatInt(pr.Time, 10)
	}
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}
	return domain.RawReview{
		Source: domain.SourceProfile,
		Text:   pr.Text,
		Author: author,
		Rating: rating,
		Date:   date,
	}
}

func mapProfileReviews(in []domain.PlaceReview) []domain.RawReview {
	out := make([]domain.RawReview, 0, len(in))
	for _, pr := range in {
		out = append(out, mapProfileReview(pr))
	}
	return out
}
