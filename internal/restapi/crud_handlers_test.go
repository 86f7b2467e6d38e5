package restapi

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bebraradar/bebraradar/internal/models"
)

func TestCalendarLifecycle(t *testing.T) {
	_, handler := newTestAPI(t)

	payload := map[string]any{
		"serviceId": "WD1",
		"monday":    true,
		"tuesday":   true,
		"wednesday": true,
		"thursday":  true,
		"friday":    true,
		"saturday":  false,
		"sunday":    false,
		"startDate": "2024-01-01",
		"endDate":   "2024-12-31",
	}

	rec := doRequest(t, handler, http.MethodPost, "/calendars", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/calendars", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/calendars/WD1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	calendar := decodeBody[models.ServiceCalendar](t, rec)
	assert.True(t, calendar.Monday)
	assert.False(t, calendar.Saturday)
	assert.Equal(t, "2024-01-01", calendar.StartDate.String())

	rec = doRequest(t, handler, http.MethodDelete, "/calendars/WD1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/calendars/WD1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCalendar_InvalidRange(t *testing.T) {
	_, handler := newTestAPI(t)

	rec := doRequest(t, handler, http.MethodPost, "/calendars", map[string]any{
		"serviceId": "BAD",
		"monday":    true,
		"tuesday":   false,
		"wednesday": false,
		"thursday":  false,
		"friday":    false,
		"saturday":  false,
		"sunday":    false,
		"startDate": "2024-12-31",
		"endDate":   "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "startDate")
}

func TestDeleteCalendar_Referenced(t *testing.T) {
	api, handler := newTestAPI(t)
	seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodDelete, "/calendars/WD1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateTrip_UnknownReferences(t *testing.T) {
	api, handler := newTestAPI(t)
	seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodPost, "/trips", map[string]any{
		"routeId":   "ghost",
		"serviceId": "WD1",
		"startTime": "2024-03-04T09:00:00+03:00",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Route not found: ghost", body["error"])

	rec = doRequest(t, handler, http.MethodPost, "/trips", map[string]any{
		"routeId":   "routeA",
		"serviceId": "ghost",
		"startTime": "2024-03-04T09:00:00+03:00",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	body = decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Service calendar not found: ghost", body["error"])
}

func TestCreateTrip_PreservesOffset(t *testing.T) {
	api, handler := newTestAPI(t)
	seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodPost, "/trips", map[string]any{
		"routeId":   "routeA",
		"serviceId": "WD1",
		"startTime": "2024-03-04T09:00:00+03:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[models.Trip](t, rec)
	require.NotZero(t, created.ID)

	rec = doRequest(t, handler, http.MethodGet, fmt.Sprintf("/trips/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2024-03-04T09:00:00+03:00")
}

func TestDeleteTrip_Referenced(t *testing.T) {
	api, handler := newTestAPI(t)
	tripID := seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodDelete, fmt.Sprintf("/trips/%d", tripID), nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "referenced")
}

func TestReplaceStopTimes(t *testing.T) {
	api, handler := newTestAPI(t)
	tripID := seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodPut, fmt.Sprintf("/trips/%d/stop-times", tripID), []map[string]any{
		{"stopSequence": 3, "stopId": "stop2", "arrivalTime": 86300, "departureTime": 86500},
		{"stopSequence": 1, "stopId": "stop1", "arrivalTime": 100, "departureTime": 160},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stopTimes := decodeBody[[]models.StopTime](t, rec)
	require.Len(t, stopTimes, 2)
	assert.Equal(t, 1, stopTimes[0].StopSequence)
	assert.Equal(t, 86500, stopTimes[1].DepartureTime)
}

func TestReplaceStopTimes_Validation(t *testing.T) {
	api, handler := newTestAPI(t)
	tripID := seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodPut, fmt.Sprintf("/trips/%d/stop-times", tripID), []map[string]any{
		{"stopSequence": 0, "stopId": "stop1", "arrivalTime": 100, "departureTime": 160},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodPut, fmt.Sprintf("/trips/%d/stop-times", tripID), []map[string]any{
		{"stopSequence": 1, "stopId": "ghost", "arrivalTime": 100, "departureTime": 160},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stop not found: ghost")
}

func TestShapeLifecycle(t *testing.T) {
	_, handler := newTestAPI(t)

	rec := doRequest(t, handler, http.MethodPost, "/shapes", map[string]any{
		"id": "loop",
		"points": []map[string]any{
			{"sequence": 1, "lat": 55.75, "lon": 37.61},
			{"sequence": 2, "lat": 55.76, "lon": 37.63},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/shapes/loop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	shape := decodeBody[models.Shape](t, rec)
	require.Len(t, shape.Points, 2)
	assert.NotEmpty(t, shape.Polyline)

	rec = doRequest(t, handler, http.MethodDelete, "/shapes/loop", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/shapes/loop", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVehiclePositionLifecycle(t *testing.T) {
	api, handler := newTestAPI(t)
	tripID := seedWeekdaySchedule(t, api)

	payload := map[string]any{
		"vehicleNo":         "bus-42",
		"tripId":            tripID,
		"timestamp":         "2024-03-04T08:15:00+03:00",
		"lastStopTimestamp": "2024-03-04T08:10:00+03:00",
		"lat":               55.75,
		"lon":               37.61,
	}

	rec := doRequest(t, handler, http.MethodPost, "/vehicle-positions", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/vehicle-positions", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	payload["timestamp"] = "2024-03-04T08:16:00+03:00"
	rec = doRequest(t, handler, http.MethodPut, "/vehicle-positions/bus-42", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/vehicle-positions/bus-42", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	position := decodeBody[models.VehiclePosition](t, rec)
	assert.Equal(t, tripID, position.TripID)

	rec = doRequest(t, handler, http.MethodDelete, "/vehicle-positions/bus-42", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(t, handler, http.MethodDelete, "/vehicle-positions/bus-42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVehiclePosition_MissingFields(t *testing.T) {
	api, handler := newTestAPI(t)
	tripID := seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodPost, "/vehicle-positions", map[string]any{
		"tripId":            tripID,
		"timestamp":         "2024-03-04T08:15:00+03:00",
		"lastStopTimestamp": "2024-03-04T08:10:00+03:00",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "vehicleNo is required")
}

func TestEventStreams(t *testing.T) {
	api, handler := newTestAPI(t)
	tripID := seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodPost, "/events/geolocation", map[string]any{
		"tripId":    tripID,
		"timestamp": "2024-03-04T08:05:00Z",
		"lat":       55.75,
		"lon":       37.61,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/events/geolocation", map[string]any{
		"tripId":    tripID,
		"timestamp": "2024-03-04T08:10:00Z",
		"lat":       55.76,
		"lon":       37.62,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/events/geolocation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events := decodeBody[[]models.TripEvent](t, rec)
	require.Len(t, events, 2)
	assert.True(t, events[0].Timestamp.After(events[1].Timestamp), "newest first")

	since := time.Date(2024, time.March, 4, 8, 10, 0, 0, time.UTC).Format(time.RFC3339)
	rec = doRequest(t, handler, http.MethodGet, "/events/geolocation?since="+since, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events = decodeBody[[]models.TripEvent](t, rec)
	assert.Len(t, events, 1)
}

func TestEventStream_UnknownType(t *testing.T) {
	_, handler := newTestAPI(t)

	rec := doRequest(t, handler, http.MethodGet, "/events/teleportation", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvent_KindSpecificValidation(t *testing.T) {
	api, handler := newTestAPI(t)
	tripID := seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodPost, "/events/timetable", map[string]any{
		"tripId":    tripID,
		"timestamp": "2024-03-04T08:05:00Z",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "reportedTime")

	rec = doRequest(t, handler, http.MethodPost, "/events/anomaly", map[string]any{
		"tripId":         tripID,
		"timestamp":      "2024-03-04T08:05:00Z",
		"estimatedDelay": 300,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "type is required")
}
