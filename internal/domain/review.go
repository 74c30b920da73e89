package domain

// Review source labels.
const (
	SourceProfile    = "profile"     // reviews embedded in the place profile
	SourceThirdParty = "third-party" // reviews from the shared feed account
)

// RawReview is the canonical shape every inbound review is normalized to,
// regardless of which source (and which historical field aliasing) it came
// from. The buffer keeps every normalized review; too-short text is only
// excluded from the enrichment context, never from the buffer.
type RawReview struct {
	SourceID string  `json:"sourceId,omitempty"`
	Source   string  `json:"source"`
	Text     string  `json:"text"`
	Author   string  `json:"author"`
	Rating   float64 `json:"rating"`
	Date     string  `json:"date"` // display only, no ordering contract
}
