// Package geocoder turns free-form addresses into shared.GeoLocation values.
package geocoder

import (
	"context"
	"errors"

	"bookmarket-backend/internal/shared"
	"bookmarket-backend/internal/shared/apperror"
)

const (
	CodeNoResult    = "GEOCODE_NO_RESULT"
	CodeUnavailable = "GEOCODER_UNAVAILABLE"
)

var (
	// ErrNoResult means the provider answered but found nothing usable.
	ErrNoResult = errors.New("geocoder: no result")
	// ErrUnavailable wraps transport failures and non-2xx provider replies.
	ErrUnavailable = errors.New("geocoder: provider unavailable")
)

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*shared.GeoLocation, error)
}

// Classify maps a Geocode error onto the application error taxonomy.
func Classify(field string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNoResult):
		return apperror.Validation(CodeNoResult, "Could not geocode the given "+field, map[string]string{
			field: "no location found for this value",
		})
	case errors.Is(err, context.Canceled):
		return err
	default:
		return apperror.Dependency(CodeUnavailable, "Geocoding service is unavailable", err)
	}
}
