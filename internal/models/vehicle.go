package models

import "time"

// VehiclePosition is the latest reported position of one vehicle, keyed by
// its fleet number. One row per vehicle; new reports replace the previous.
type VehiclePosition struct {
	VehicleNo         string    `json:"vehicleNo"`
	TripID            int64     `json:"tripId"`
	Timestamp         time.Time `json:"timestamp"`
	LastStopTimestamp time.Time `json:"lastStopTimestamp"`
	Lat               *float64  `json:"lat,omitempty"`
	Lon               *float64  `json:"lon,omitempty"`
	SpeedMps          *float64  `json:"speedMps,omitempty"`
	BearingDeg        *float64  `json:"bearingDeg,omitempty"`
	GPSAccuracyM      *float64  `json:"gpsAccuracyM,omitempty"`
}
