package models

// ShapePoint is one vertex of a route shape polyline, ordered by Sequence
// within a shape.
type ShapePoint struct {
	Sequence int     `json:"sequence"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Shape is a stored route geometry. Polyline carries the Google encoded
// form of Points and is filled at the API boundary.
type Shape struct {
	ID       string       `json:"id"`
	Points   []ShapePoint `json:"points"`
	Polyline string       `json:"polyline,omitempty"`
}
