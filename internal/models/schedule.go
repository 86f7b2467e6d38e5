package models

import "time"

// TripStop is one entry of an assembled trip schedule. Arrival and departure
// keep the stored seconds-of-service-day values verbatim.
type TripStop struct {
	StopSequence  int    `json:"stopSequence"`
	StopID        string `json:"stopId"`
	StopName      string `json:"stopName"`
	ArrivalTime   int    `json:"arrivalTime"`
	DepartureTime int    `json:"departureTime"`
}

// TripSchedule is the nested schedule record for a single trip: trip
// metadata plus the ordered stop list.
type TripSchedule struct {
	TripID    int64      `json:"tripId"`
	RouteID   string     `json:"routeId"`
	StartTime time.Time  `json:"startTime"`
	Stops     []TripStop `json:"stops"`
}
