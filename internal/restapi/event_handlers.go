package restapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/bebraradar/bebraradar/internal/models"
)

// listEventsHandler answers GET /events/:type newest first, with an optional
// inclusive since filter.
func (api *RestAPI) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := api.eventKindFromParams(w, r)
	if !ok {
		return
	}

	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			api.badRequestResponse(w, r, fmt.Sprintf("since must be RFC 3339, got %q", raw))
			return
		}
		since = &parsed
	}

	events, err := api.Store.Queries.EventsByKind(r.Context(), kind, since)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if events == nil {
		events = []models.TripEvent{}
	}
	api.sendJSON(w, r, http.StatusOK, events)
}

func (api *RestAPI) appendEventHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := api.eventKindFromParams(w, r)
	if !ok {
		return
	}

	var event models.TripEvent
	if !api.readJSON(w, r, &event) {
		return
	}
	event.Kind = kind
	if !api.validateEvent(w, r, event) {
		return
	}

	id, err := api.Store.Queries.AppendEvent(r.Context(), event)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	event.ID = id
	api.Metrics.EventsAppended.WithLabelValues(string(kind)).Inc()
	api.sendJSON(w, r, http.StatusCreated, event)
}

func (api *RestAPI) validateEvent(w http.ResponseWriter, r *http.Request, e models.TripEvent) bool {
	if e.TripID == 0 {
		api.badRequestResponse(w, r, "tripId is required")
		return false
	}
	if e.Timestamp.IsZero() {
		api.badRequestResponse(w, r, "timestamp is required")
		return false
	}
	switch e.Kind {
	case models.EventGeoLocation:
		if e.Lat == nil || e.Lon == nil {
			api.badRequestResponse(w, r, "lat and lon are required for geolocation events")
			return false
		}
	case models.EventTimetable:
		if e.ReportedTime == nil {
			api.badRequestResponse(w, r, "reportedTime is required for timetable events")
			return false
		}
	case models.EventAnomaly:
		if e.Type == "" {
			api.badRequestResponse(w, r, "type is required for anomaly events")
			return false
		}
	}
	if _, err := api.Store.Queries.TripByID(r.Context(), e.TripID); err != nil {
		return api.referenceError(w, r, err, fmt.Sprintf("Trip not found: %d", e.TripID))
	}
	return true
}

func (api *RestAPI) eventKindFromParams(w http.ResponseWriter, r *http.Request) (models.EventKind, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("type")
	kind, ok := models.ParseEventKind(raw)
	if !ok {
		api.notFoundResponse(w, r, fmt.Sprintf("unknown event stream %q", raw))
		return "", false
	}
	return kind, true
}
