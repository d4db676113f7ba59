package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookmarket-backend/internal/shared"
)

// MapQuest calls the MapQuest geocoding v1 "address" endpoint.
type MapQuest struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewMapQuest(apiKey, baseURL string, timeout time.Duration) *MapQuest {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MapQuest{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type mapquestResponse struct {
	Info struct {
		StatusCode int      `json:"statuscode"`
		Messages   []string `json:"messages"`
	} `json:"info"`
	Results []struct {
		Locations []mapquestLocation `json:"locations"`
	} `json:"results"`
}

type mapquestLocation struct {
	Street     string `json:"street"`
	City       string `json:"adminArea5"`
	State      string `json:"adminArea3"`
	Country    string `json:"adminArea1"`
	PostalCode string `json:"postalCode"`
	LatLng     struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"latLng"`
}

func (m *MapQuest) Geocode(ctx context.Context, address string) (*shared.GeoLocation, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrNoResult
	}

	q := url.Values{}
	q.Set("key", m.apiKey)
	q.Set("location", address)
	q.Set("maxResults", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/address?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http status %d", ErrUnavailable, resp.StatusCode)
	}

	var body mapquestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	// statuscode 400 = bad input, 403 = key rejected, 500 = provider error
	switch {
	case body.Info.StatusCode == 400:
		return nil, ErrNoResult
	case body.Info.StatusCode != 0:
		return nil, fmt.Errorf("%w: statuscode %d %v", ErrUnavailable, body.Info.StatusCode, body.Info.Messages)
	}

	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return nil, ErrNoResult
	}
	loc := body.Results[0].Locations[0]
	if loc.LatLng.Lat == 0 && loc.LatLng.Lng == 0 {
		return nil, ErrNoResult
	}

	return &shared.GeoLocation{
		Latitude:         loc.LatLng.Lat,
		Longitude:        loc.LatLng.Lng,
		FormattedAddress: formatAddress(loc),
		Street:           loc.Street,
		City:             loc.City,
		StateCode:        loc.State,
		Zipcode:          loc.PostalCode,
		CountryCode:      loc.Country,
	}, nil
}

// "233 Bay State Rd, Boston, MA 02215, US"
func formatAddress(l mapquestLocation) string {
	parts := make([]string, 0, 4)
	if l.Street != "" {
		parts = append(parts, l.Street)
	}
	if l.City != "" {
		parts = append(parts, l.City)
	}
	if region := strings.TrimSpace(l.State + " " + l.PostalCode); region != "" {
		parts = append(parts, region)
	}
	if l.Country != "" {
		parts = append(parts, l.Country)
	}
	return strings.Join(parts, ", ")
}
