package restapi

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/bebraradar/bebraradar/internal/models"
)

func (api *RestAPI) listTripsHandler(w http.ResponseWriter, r *http.Request) {
	trips, err := api.Store.Queries.ListTrips(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	api.sendJSON(w, r, http.StatusOK, trips)
}

func (api *RestAPI) getTripHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.tripIDFromParams(w, r)
	if !ok {
		return
	}
	trip, err := api.Store.Queries.TripByID(r.Context(), id)
	if err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, trip)
}

func (api *RestAPI) createTripHandler(w http.ResponseWriter, r *http.Request) {
	var trip models.Trip
	if !api.readJSON(w, r, &trip) {
		return
	}
	if !api.validateTrip(w, r, trip) || !api.resolveTripReferences(w, r, trip) {
		return
	}

	id, err := api.Store.Queries.CreateTrip(r.Context(), trip)
	if err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	trip.ID = id
	api.sendJSON(w, r, http.StatusCreated, trip)
}

func (api *RestAPI) replaceTripHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.tripIDFromParams(w, r)
	if !ok {
		return
	}

	var trip models.Trip
	if !api.readJSON(w, r, &trip) {
		return
	}
	if trip.ID != 0 && trip.ID != id {
		api.badRequestResponse(w, r, "trip id in body does not match URL")
		return
	}
	trip.ID = id
	if !api.validateTrip(w, r, trip) || !api.resolveTripReferences(w, r, trip) {
		return
	}

	if err := api.Store.Queries.ReplaceTrip(r.Context(), trip); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, trip)
}

func (api *RestAPI) deleteTripHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.tripIDFromParams(w, r)
	if !ok {
		return
	}
	if err := api.Store.Queries.DeleteTrip(r.Context(), id); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *RestAPI) validateTrip(w http.ResponseWriter, r *http.Request, t models.Trip) bool {
	if t.RouteID == "" {
		api.badRequestResponse(w, r, "routeId is required")
		return false
	}
	if t.ServiceID == "" {
		api.badRequestResponse(w, r, "serviceId is required")
		return false
	}
	if t.StartTime.IsZero() {
		api.badRequestResponse(w, r, "startTime is required")
		return false
	}
	return true
}

func (api *RestAPI) tripIDFromParams(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		api.badRequestResponse(w, r, "trip id must be an integer")
		return 0, false
	}
	return id, true
}
