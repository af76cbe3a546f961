package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultMapQuestURL = "https://www.mapquestapi.com/geocoding/v1/address"

// MapQuest resolves addresses with the MapQuest geocoding API.
type MapQuest struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewMapQuest(apiKey string) *MapQuest {
	return &MapQuest{
		APIKey:  apiKey,
		BaseURL: defaultMapQuestURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type mqResponse struct {
	Info struct {
		StatusCode int      `json:"statuscode"`
		Messages   []string `json:"messages"`
	} `json:"info"`
	Results []struct {
		Locations []mqLocation `json:"locations"`
	} `json:"results"`
}

type mqLocation struct {
	Street     string `json:"street"`
	AdminArea5 string `json:"adminArea5"` // city
	AdminArea3 string `json:"adminArea3"` // state
	AdminArea1 string `json:"adminArea1"` // country
	PostalCode string `json:"postalCode"`
	LatLng     struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"latLng"`
}

func (m *MapQuest) Geocode(ctx context.Context, address string) (Result, error) {
	q := url.Values{}
	q.Set("key", m.APIKey)
	q.Set("location", address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := m.HTTP.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocoder: mapquest status %d", resp.StatusCode)
	}

	var out mqResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("geocoder: decode: %w", err)
	}
	if out.Info.StatusCode != 0 {
		return Result{}, fmt.Errorf("geocoder: mapquest %d: %s", out.Info.StatusCode, strings.Join(out.Info.Messages, "; "))
	}
	if len(out.Results) == 0 || len(out.Results[0].Locations) == 0 {
		return Result{}, ErrNoMatch
	}
	loc := out.Results[0].Locations[0]
	return Result{
		Latitude:         loc.LatLng.Lat,
		Longitude:        loc.LatLng.Lng,
		FormattedAddress: formatAddress(loc),
		Street:           loc.Street,
		City:             loc.AdminArea5,
		StateCode:        loc.AdminArea3,
		Zipcode:          loc.PostalCode,
		CountryCode:      loc.AdminArea1,
	}, nil
}

// formatAddress renders "street, city, state zip, country" skipping blanks.
func formatAddress(l mqLocation) string {
	var parts []string
	for _, s := range []string{l.Street, l.AdminArea5, strings.TrimSpace(l.AdminArea3 + " " + l.PostalCode), l.AdminArea1} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
