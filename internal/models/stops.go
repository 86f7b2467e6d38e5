package models

// Stop is a transit stop or station. Coordinates are optional; some feeds
// only carry display names.
type Stop struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}
