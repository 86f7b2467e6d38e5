// Package restapi is the HTTP boundary: routing, middleware and JSON
// rendering over the timetable engine and the storage layer.
package restapi

import (
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/bebraradar/bebraradar/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
}

func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Routes builds the router and wraps it in the middleware chain: request
// logging outermost, then rate limiting, then response compression.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/timetable/routes", api.timetableRoutesHandler)
	router.HandlerFunc(http.MethodGet, "/timetable/routes/:routeId/trips", api.timetableTripsHandler)

	router.HandlerFunc(http.MethodGet, "/calendars", api.listCalendarsHandler)
	router.HandlerFunc(http.MethodPost, "/calendars", api.createCalendarHandler)
	router.HandlerFunc(http.MethodGet, "/calendars/:id", api.getCalendarHandler)
	router.HandlerFunc(http.MethodPut, "/calendars/:id", api.replaceCalendarHandler)
	router.HandlerFunc(http.MethodDelete, "/calendars/:id", api.deleteCalendarHandler)

	router.HandlerFunc(http.MethodGet, "/routes", api.listRoutesHandler)
	router.HandlerFunc(http.MethodPost, "/routes", api.createRouteHandler)
	router.HandlerFunc(http.MethodGet, "/routes/:id", api.getRouteHandler)
	router.HandlerFunc(http.MethodPut, "/routes/:id", api.replaceRouteHandler)
	router.HandlerFunc(http.MethodDelete, "/routes/:id", api.deleteRouteHandler)

	router.HandlerFunc(http.MethodGet, "/stops", api.listStopsHandler)
	router.HandlerFunc(http.MethodPost, "/stops", api.createStopHandler)
	router.HandlerFunc(http.MethodGet, "/stops/:id", api.getStopHandler)
	router.HandlerFunc(http.MethodPut, "/stops/:id", api.replaceStopHandler)
	router.HandlerFunc(http.MethodDelete, "/stops/:id", api.deleteStopHandler)

	router.HandlerFunc(http.MethodGet, "/trips", api.listTripsHandler)
	router.HandlerFunc(http.MethodPost, "/trips", api.createTripHandler)
	router.HandlerFunc(http.MethodGet, "/trips/:id", api.getTripHandler)
	router.HandlerFunc(http.MethodPut, "/trips/:id", api.replaceTripHandler)
	router.HandlerFunc(http.MethodDelete, "/trips/:id", api.deleteTripHandler)
	router.HandlerFunc(http.MethodGet, "/trips/:id/stop-times", api.getStopTimesHandler)
	router.HandlerFunc(http.MethodPut, "/trips/:id/stop-times", api.replaceStopTimesHandler)

	router.HandlerFunc(http.MethodGet, "/shapes", api.listShapesHandler)
	router.HandlerFunc(http.MethodPost, "/shapes", api.createShapeHandler)
	router.HandlerFunc(http.MethodGet, "/shapes/:id", api.getShapeHandler)
	router.HandlerFunc(http.MethodDelete, "/shapes/:id", api.deleteShapeHandler)

	router.HandlerFunc(http.MethodGet, "/vehicle-positions", api.listVehiclePositionsHandler)
	router.HandlerFunc(http.MethodPost, "/vehicle-positions", api.createVehiclePositionHandler)
	router.HandlerFunc(http.MethodGet, "/vehicle-positions/:vehicleNo", api.getVehiclePositionHandler)
	router.HandlerFunc(http.MethodPut, "/vehicle-positions/:vehicleNo", api.replaceVehiclePositionHandler)
	router.HandlerFunc(http.MethodDelete, "/vehicle-positions/:vehicleNo", api.deleteVehiclePositionHandler)

	router.HandlerFunc(http.MethodGet, "/events/:type", api.listEventsHandler)
	router.HandlerFunc(http.MethodPost, "/events/:type", api.appendEventHandler)

	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())

	if api.Config.EnablePprof {
		registerPprofHandlers(router)
	}

	var handler http.Handler = router
	handler = applyGzipMiddleware(handler)
	handler = api.rateLimiter(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}

func registerPprofHandlers(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug/pprof/", pprof.Index)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/cmdline", pprof.Cmdline)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/profile", pprof.Profile)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/symbol", pprof.Symbol)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/trace", pprof.Trace)
}
