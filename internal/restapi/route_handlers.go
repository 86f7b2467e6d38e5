package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/bebraradar/bebraradar/internal/models"
)

func (api *RestAPI) listRoutesHandler(w http.ResponseWriter, r *http.Request) {
	routes, err := api.Store.Queries.ListRoutes(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if routes == nil {
		routes = []models.Route{}
	}
	api.sendJSON(w, r, http.StatusOK, routes)
}

func (api *RestAPI) getRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	route, err := api.Store.Queries.RouteByID(r.Context(), id)
	if err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, route)
}

func (api *RestAPI) createRouteHandler(w http.ResponseWriter, r *http.Request) {
	var route models.Route
	if !api.readJSON(w, r, &route) {
		return
	}
	if route.ID == "" {
		api.badRequestResponse(w, r, "route id is required")
		return
	}
	if err := api.Store.Queries.CreateRoute(r.Context(), route); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusCreated, route)
}

func (api *RestAPI) replaceRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	var route models.Route
	if !api.readJSON(w, r, &route) {
		return
	}
	if route.ID != "" && route.ID != id {
		api.badRequestResponse(w, r, "route id in body does not match URL")
		return
	}
	route.ID = id
	if err := api.Store.Queries.ReplaceRoute(r.Context(), route); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, route)
}

func (api *RestAPI) deleteRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if err := api.Store.Queries.DeleteRoute(r.Context(), id); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
