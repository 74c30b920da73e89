package domain

// Place is the structured business profile returned by the place lookup.
// Field names track the Places Details payload.
type Place struct {
	PlaceID              string        `json:"place_id"`
	Name                 string        `json:"name"`
	FormattedAddress     string        `json:"formatted_address"`
	FormattedPhoneNumber string        `json:"formatted_phone_number"`
	Website              string        `json:"website"`
	URL                  string        `json:"url"` // Google Maps profile URL
	Rating               float64       `json:"rating"`
	Types                []string      `json:"types"`
	Reviews              []PlaceReview `json:"reviews"`
	OpeningHours         *OpeningHours `json:"opening_hours,omitempty"`
}

type OpeningHours struct {
	WeekdayText []string `json:"weekday_text"`
}

// PlaceReview is a profile-native review.
type PlaceReview struct {
	AuthorName   string  `json:"author_name"`
	Rating       float64 `json:"rating"`
	Text         string  `json:"text"`
	RelativeTime string  `json:"relative_time_description"`
	Time         int64   `json:"time"`
}

// PlaceSummary is a search candidate from the find-place endpoint.
type PlaceSummary struct {
	PlaceID          string `json:"place_id"`
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
}
