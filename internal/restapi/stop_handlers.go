package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/bebraradar/bebraradar/internal/models"
)

func (api *RestAPI) listStopsHandler(w http.ResponseWriter, r *http.Request) {
	stops, err := api.Store.Queries.ListStops(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if stops == nil {
		stops = []models.Stop{}
	}
	api.sendJSON(w, r, http.StatusOK, stops)
}

func (api *RestAPI) getStopHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	stop, err := api.Store.Queries.StopByID(r.Context(), id)
	if err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, stop)
}

func (api *RestAPI) createStopHandler(w http.ResponseWriter, r *http.Request) {
	var stop models.Stop
	if !api.readJSON(w, r, &stop) {
		return
	}
	if !api.validateStop(w, r, stop) {
		return
	}
	if err := api.Store.Queries.CreateStop(r.Context(), stop); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusCreated, stop)
}

func (api *RestAPI) replaceStopHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	var stop models.Stop
	if !api.readJSON(w, r, &stop) {
		return
	}
	if stop.ID != "" && stop.ID != id {
		api.badRequestResponse(w, r, "stop id in body does not match URL")
		return
	}
	stop.ID = id
	if !api.validateStop(w, r, stop) {
		return
	}
	if err := api.Store.Queries.ReplaceStop(r.Context(), stop); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, stop)
}

func (api *RestAPI) deleteStopHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if err := api.Store.Queries.DeleteStop(r.Context(), id); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *RestAPI) validateStop(w http.ResponseWriter, r *http.Request, s models.Stop) bool {
	if s.ID == "" {
		api.badRequestResponse(w, r, "stop id is required")
		return false
	}
	if s.Name == "" {
		api.badRequestResponse(w, r, "stop name is required")
		return false
	}
	if (s.Lat == nil) != (s.Lon == nil) {
		api.badRequestResponse(w, r, "lat and lon must be set together")
		return false
	}
	return true
}
