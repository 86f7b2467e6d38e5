package restapi

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/bebraradar/bebraradar/internal/models"
)

// timetableRoutesHandler answers GET /timetable/routes with exactly one of
// the date and weekday parameters set.
func (api *RestAPI) timetableRoutesHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	weekday := r.URL.Query().Get("weekday")

	if (date == "") == (weekday == "") {
		api.badRequestResponse(w, r, "Provide either date or weekday")
		return
	}

	var (
		routes []models.RouteSummary
		op     string
		err    error
	)
	start := time.Now()
	if date != "" {
		op = "routes_by_date"
		var parsed models.Date
		parsed, err = models.ParseDate(date)
		if err != nil {
			api.badRequestResponse(w, r, err.Error())
			return
		}
		routes, err = api.Timetable.RoutesForDate(r.Context(), parsed)
	} else {
		op = "routes_by_weekday"
		routes, err = api.Timetable.RoutesForWeekday(r.Context(), weekday)
	}
	api.observeTimetableQuery(op, time.Since(start), err)

	if err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, routes)
}

// timetableTripsHandler answers GET /timetable/routes/:routeId/trips?date=...
// with the route's assembled trip schedules for that date.
func (api *RestAPI) timetableTripsHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	routeID := params.ByName("routeId")

	date := r.URL.Query().Get("date")
	if date == "" {
		api.badRequestResponse(w, r, "date is required")
		return
	}
	parsed, err := models.ParseDate(date)
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	start := time.Now()
	schedules, err := api.Timetable.RouteScheduleForDate(r.Context(), routeID, parsed)
	api.observeTimetableQuery("route_schedule", time.Since(start), err)

	if err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, schedules)
}

func (api *RestAPI) observeTimetableQuery(op string, elapsed time.Duration, err error) {
	api.Metrics.TimetableQueries.WithLabelValues(op).Inc()
	api.Metrics.QueryDuration.Observe(elapsed.Seconds())
	if err != nil {
		api.Metrics.TimetableErrors.WithLabelValues(op).Inc()
	}
}
