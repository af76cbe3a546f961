package geocoder

import (
	"context"
	"errors"
)

// ErrNoMatch is returned when the provider finds nothing for an address.
var ErrNoMatch = errors.New("geocoder: no match for address")

// Result is a resolved address.
type Result struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formattedAddress"`
	Street           string  `json:"street"`
	City             string  `json:"city"`
	StateCode        string  `json:"stateCode"`
	Zipcode          string  `json:"zipcode"`
	CountryCode      string  `json:"countryCode"`
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (Result, error)
}

// Passthrough keeps the address text and resolves it to the origin. It is
// used when no provider key is configured.
type Passthrough struct{}

func (Passthrough) Geocode(_ context.Context, address string) (Result, error) {
	return Result{FormattedAddress: address}, nil
}
