package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/twpayne/go-polyline"

	"github.com/bebraradar/bebraradar/internal/models"
)

func (api *RestAPI) listShapesHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := api.Store.Queries.ListShapeIDs(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	api.sendJSON(w, r, http.StatusOK, ids)
}

func (api *RestAPI) getShapeHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	shape, err := api.Store.Queries.ShapeByID(r.Context(), id)
	if err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	shape.Polyline = encodeShapePolyline(shape.Points)
	api.sendJSON(w, r, http.StatusOK, shape)
}

func (api *RestAPI) createShapeHandler(w http.ResponseWriter, r *http.Request) {
	var shape models.Shape
	if !api.readJSON(w, r, &shape) {
		return
	}
	if shape.ID == "" {
		api.badRequestResponse(w, r, "shape id is required")
		return
	}
	if len(shape.Points) == 0 {
		api.badRequestResponse(w, r, "at least one point is required")
		return
	}
	if err := api.Store.Queries.CreateShape(r.Context(), shape); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	shape.Polyline = encodeShapePolyline(shape.Points)
	api.sendJSON(w, r, http.StatusCreated, shape)
}

func (api *RestAPI) deleteShapeHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if err := api.Store.Queries.DeleteShape(r.Context(), id); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func encodeShapePolyline(points []models.ShapePoint) string {
	if len(points) == 0 {
		return ""
	}
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
