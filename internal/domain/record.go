package domain

import "strings"

// Lifecycle status of a persisted record.
const (
	StatusNew       = "new"
	StatusDraft     = "draft"
	StatusOnboarded = "onboarded"
)

type ServiceItem struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

type ServiceCategory struct {
	Name      string        `json:"name"`
	IsPrimary bool          `json:"isPrimary"`
	Services  []ServiceItem `json:"services"`
}

type Project struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Feature  string `json:"feature"`
	ImageURL string `json:"imagePlaceholder"`
}

type Testimonial struct {
	ID       string `json:"id"`
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Location string `json:"location"`
}

// Socials is a fixed key set: every known network is always present,
// absent handles stay "".
type Socials struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	LinkedIn  string `json:"linkedin"`
	Yelp      string `json:"yelp"`
	Houzz     string `json:"houzz"`
	BBB       string `json:"bbb"`
}

// BusinessRecord is the canonical working document the operator edits.
type BusinessRecord struct {
	ID     int64  `json:"id,omitempty"`
	Status string `json:"status,omitempty"`

	// Identity
	BusinessName             string `json:"businessName"`
	GooglePlaceID            string `json:"googlePlaceId,omitempty"`
	Tagline                  string `json:"tagline"`
	PrimaryPhone             string `json:"primaryPhone"`
	PrimaryEmail             string `json:"primaryEmail"`
	Address                  string `json:"address"`
	OperatingHours           string `json:"operatingHours"`
	LicenseNumber            string `json:"licenseNumber"`
	GoogleBusinessProfileURL string `json:"googleBusinessProfileUrl"`
	WebsiteURL               string `json:"websiteUrl"`

	// Branding
	BrandColor     string `json:"brandColor"`
	FontPreference string `json:"fontPreference"` // Modern|Classic|Handwritten
	LogoURL        string `json:"logoUrl"`
	AboutUs        string `json:"aboutUs"`

	// Localization & SEO
	PrimaryCity             string   `json:"primaryCity"`
	Neighborhoods           []string `json:"neighborhoods"`
	EnvironmentalChallenges []string `json:"environmentalChallenges"`

	// Services
	Categories []ServiceCategory `json:"categories"`

	// Materials
	DeckingBrand   string `json:"deckingBrand"`
	RailingType    string `json:"railingType"`
	FoundationType string `json:"foundationType"`

	// Portfolio & social proof
	Projects     []Project     `json:"projects"`
	Testimonials []Testimonial `json:"testimonials"`
	ProcessSteps []string      `json:"processSteps"`
	Socials      Socials       `json:"socials"`

	// Full combined review buffer, kept for operator inspection and to audit
	// what informed the generated copy. Append-only.
	RawReviews []RawReview `json:"rawReviews"`
}

// NewRecord returns the all-defaults working record.
func NewRecord() BusinessRecord {
	return BusinessRecord{
		Status:                  StatusNew,
		BrandColor:              "#EA580C",
		FontPreference:          "Modern",
		Neighborhoods:           []string{},
		EnvironmentalChallenges: []string{},
		Categories:              []ServiceCategory{},
		Projects:                []Project{},
		Testimonials:            []Testimonial{},
		ProcessSteps:            []string{"Consult & Design", "Precision Build", "Lifetime Enjoyment"},
		RawReviews:              []RawReview{},
	}
}

// SetPrimaryCategory marks category i primary and clears the flag everywhere
// else, keeping the at-most-one-primary invariant.
func (r *BusinessRecord) SetPrimaryCategory(i int) {
	if i < 0 || i >= len(r.Categories) {
		return
	}
	for j := range r.Categories {
		r.Categories[j].IsPrimary = j == i
	}
}

// PrimaryCategory returns the primary category, or nil if none is marked.
func (r *BusinessRecord) PrimaryCategory() *ServiceCategory {
	for i := range r.Categories {
		if r.Categories[i].IsPrimary {
			return &r.Categories[i]
		}
	}
	return nil
}

func (r *BusinessRecord) AddCategory(name string) {
	r.Categories = append(r.Categories, ServiceCategory{Name: name, Services: []ServiceItem{}})
}

func (r *BusinessRecord) RemoveCategory(i int) {
	if i < 0 || i >= len(r.Categories) {
		return
	}
	r.Categories = append(r.Categories[:i], r.Categories[i+1:]...)
}

func (r *BusinessRecord) AddService(cat int, name string) {
	if cat < 0 || cat >= len(r.Categories) {
		return
	}
	c := &r.Categories[cat]
	c.Services = append(c.Services, ServiceItem{Name: name, Selected: true})
}

func (r *BusinessRecord) ToggleService(cat, svc int) {
	if cat < 0 || cat >= len(r.Categories) {
		return
	}
	c := &r.Categories[cat]
	if svc < 0 || svc >= len(c.Services) {
		return
	}
	c.Services[svc].Selected = !c.Services[svc].Selected
}

func (r *BusinessRecord) RemoveService(cat, svc int) {
	if cat < 0 || cat >= len(r.Categories) {
		return
	}
	c := &r.Categories[cat]
	if svc < 0 || svc >= len(c.Services) {
		return
	}
	c.Services = append(c.Services[:svc], c.Services[svc+1:]...)
}

func (r *BusinessRecord) AddTestimonial(t Testimonial) {
	r.Testimonials = append(r.Testimonials, t)
}

func (r *BusinessRecord) RemoveTestimonial(i int) {
	if i < 0 || i >= len(r.Testimonials) {
		return
	}
	r.Testimonials = append(r.Testimonials[:i], r.Testimonials[i+1:]...)
}

// AppendRawReviews accumulates into the review buffer without dropping
// anything already there.
func (r *BusinessRecord) AppendRawReviews(rs ...RawReview) {
	r.RawReviews = append(r.RawReviews, rs...)
}

// ExportFilename names the downloadable export after the business, whitespace
// collapsed to underscores.
func (r *BusinessRecord) ExportFilename() string {
	name := strings.Join(strings.Fields(r.BusinessName), "_")
	if name == "" {
		name = "business"
	}
	return name + "_onboarding.json"
}
