package models

import "time"

// Trip is one scheduled run of a route under a specific service pattern.
// Identifiers are assigned by storage.
type Trip struct {
	ID        int64     `json:"id"`
	RouteID   string    `json:"routeId"`
	ServiceID string    `json:"serviceId"`
	StartTime time.Time `json:"startTime"`
	VehicleNo string    `json:"vehicleNo,omitempty"`
	ShapeID   string    `json:"shapeId,omitempty"`
}
