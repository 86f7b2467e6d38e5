package models

// Route is a transit route. Only the identifier matters to the timetable
// engine; the description is carried for display.
type Route struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

// RouteSummary is the projection of a route surfaced by timetable queries.
type RouteSummary struct {
	ID string `json:"id"`
}
