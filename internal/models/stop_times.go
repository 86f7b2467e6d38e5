package models

// StopTime is a trip's scheduled arrival and departure at one stop, keyed by
// (TripID, StopSequence). Times are seconds since service-day midnight and
// may exceed 86400 for trips continuing past midnight, per GTFS convention.
type StopTime struct {
	TripID        int64  `json:"tripId"`
	StopSequence  int    `json:"stopSequence"`
	StopID        string `json:"stopId"`
	ArrivalTime   int    `json:"arrivalTime"`
	DepartureTime int    `json:"departureTime"`
}
