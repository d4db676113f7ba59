package shared

import "github.com/google/uuid"

// Task types và queue names (asynq)
const (
	TypeDeleteContributorPhotos = "contributor:delete_photos"
	TypeReconcileAverageCost    = "contributor:reconcile_average_cost"

	QueueDefault     = "default"
	QueueMaintenance = "low"
)

// DefaultPhoto is stored until a contributor uploads a photo.
const DefaultPhoto = "no-photo.jpg"

// GeoLocation is the geocoded replacement for a raw address.
// Lat/Lng are WGS84 degrees.
type GeoLocation struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
	Street           string  `json:"street,omitempty"`
	City             string  `json:"city,omitempty"`
	StateCode        string  `json:"state,omitempty"`
	Zipcode          string  `json:"zipcode,omitempty"`
	CountryCode      string  `json:"country,omitempty"`
}

// DeleteContributorPhotosPayload is enqueued after a contributor is removed.
type DeleteContributorPhotosPayload struct {
	ContributorID uuid.UUID `json:"contributor_id"`
}

// ReconcileAverageCostPayload is empty for the nightly sweep; a non-nil
// ContributorID restricts it to one contributor.
type ReconcileAverageCostPayload struct {
	ContributorID *uuid.UUID `json:"contributor_id,omitempty"`
}
