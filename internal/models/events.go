package models

import "time"

// EventKind selects one of the reported-event streams.
type EventKind string

const (
	EventGeoLocation EventKind = "geolocation"
	EventTimetable   EventKind = "timetable"
	EventAnomaly     EventKind = "anomaly"
)

// ParseEventKind validates an event stream name from the URL.
func ParseEventKind(s string) (EventKind, bool) {
	switch EventKind(s) {
	case EventGeoLocation, EventTimetable, EventAnomaly:
		return EventKind(s), true
	}
	return "", false
}

// TripEvent is a reported observation attached to a trip: a geo fix, a
// timetable observation, or a detected anomaly. ReportedTime is only set for
// timetable events and EstimatedDelay only for anomalies.
type TripEvent struct {
	ID             int64      `json:"id"`
	Kind           EventKind  `json:"-"`
	TripID         int64      `json:"tripId"`
	UserID         *int64     `json:"userId"`
	Timestamp      time.Time  `json:"timestamp"`
	Lat            *float64   `json:"lat,omitempty"`
	Lon            *float64   `json:"lon,omitempty"`
	GPSAccuracyM   *float64   `json:"gpsAccuracyM,omitempty"`
	Type           string     `json:"type,omitempty"`
	ReportedTime   *time.Time `json:"reportedTime,omitempty"`
	EstimatedDelay *int       `json:"estimatedDelay,omitempty"`
}
