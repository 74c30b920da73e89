// internal/adapters/places/client.go
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mvalencia464/onboard/internal/adapters/observability"
	"github.com/mvalencia464/onboard/internal/domain"
)

const defaultBase = "https://maps.googleapis.com/maps/api/place"

// detailsFields keeps the Details payload bounded to what the pipeline reads.
const detailsFields = "place_id,name,formatted_address,formatted_phone_number,website,url,rating,types,reviews,opening_hours"

// Client looks up business profiles via the Places Web Service.
type Client struct {
	base string
	hc   *http.Client
	key  string
}

func New(base, key string) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if base == "" {
		base = defaultBase
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 15 * time.Second},
		key:  key,
	}, nil
}

type detailsResponse struct {
	Result       domain.Place `json:"result"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
}

func (c *Client) Details(ctx context.Context, placeID string) (domain.Place, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailsFields)
	q.Set("key", c.key)

	var out detailsResponse
	if err := c.get(ctx, "details", c.base+"/details/json?"+q.Encode(), &out); err != nil {
		return domain.Place{}, err
	}
	switch out.Status {
	case "OK":
		return out.Result, nil
	case "NOT_FOUND", "ZERO_RESULTS":
		return domain.Place{}, domain.ErrNotFound
	default:
		return domain.Place{}, fmt.Errorf("places: details status %s: %s", out.Status, out.ErrorMessage)
	}
}

type findResponse struct {
	Candidates   []domain.PlaceSummary `json:"candidates"`
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message"`
}

func (c *Client) Find(ctx context.Context, query string) ([]domain.PlaceSummary, error) {
	q := url.Values{}
	q.Set("input", query)
	q.Set("inputtype", "textquery")
	q.Set("fields", "place_id,name,formatted_address")
	q.Set("key", c.key)

	var out findResponse
	if err := c.get(ctx, "findplace", c.base+"/findplacefromtext/json?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	switch out.Status {
	case "OK":
		return out.Candidates, nil
	case "ZERO_RESULTS":
		return []domain.PlaceSummary{}, nil
	default:
		return nil, fmt.Errorf("places: find status %s: %s", out.Status, out.ErrorMessage)
	}
}

func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "onboard/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("places", endpoint, 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("places: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
