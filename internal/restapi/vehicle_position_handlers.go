package restapi

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/bebraradar/bebraradar/internal/models"
)

func (api *RestAPI) listVehiclePositionsHandler(w http.ResponseWriter, r *http.Request) {
	positions, err := api.Store.Queries.AllVehiclePositions(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if positions == nil {
		positions = []models.VehiclePosition{}
	}
	api.sendJSON(w, r, http.StatusOK, positions)
}

func (api *RestAPI) getVehiclePositionHandler(w http.ResponseWriter, r *http.Request) {
	vehicleNo := httprouter.ParamsFromContext(r.Context()).ByName("vehicleNo")
	position, err := api.Store.Queries.VehiclePositionByNo(r.Context(), vehicleNo)
	if err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, position)
}

func (api *RestAPI) createVehiclePositionHandler(w http.ResponseWriter, r *http.Request) {
	var position models.VehiclePosition
	if !api.readJSON(w, r, &position) {
		return
	}
	if !api.validateVehiclePosition(w, r, position) {
		return
	}
	if err := api.Store.Queries.CreateVehiclePosition(r.Context(), position); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusCreated, position)
}

func (api *RestAPI) replaceVehiclePositionHandler(w http.ResponseWriter, r *http.Request) {
	vehicleNo := httprouter.ParamsFromContext(r.Context()).ByName("vehicleNo")

	var position models.VehiclePosition
	if !api.readJSON(w, r, &position) {
		return
	}
	if position.VehicleNo != "" && position.VehicleNo != vehicleNo {
		api.badRequestResponse(w, r, "vehicleNo in body does not match URL")
		return
	}
	position.VehicleNo = vehicleNo
	if !api.validateVehiclePosition(w, r, position) {
		return
	}
	if err := api.Store.Queries.ReplaceVehiclePosition(r.Context(), position); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, position)
}

func (api *RestAPI) deleteVehiclePositionHandler(w http.ResponseWriter, r *http.Request) {
	vehicleNo := httprouter.ParamsFromContext(r.Context()).ByName("vehicleNo")
	if err := api.Store.Queries.DeleteVehiclePosition(r.Context(), vehicleNo); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *RestAPI) validateVehiclePosition(w http.ResponseWriter, r *http.Request, p models.VehiclePosition) bool {
	if p.VehicleNo == "" {
		api.badRequestResponse(w, r, "vehicleNo is required")
		return false
	}
	if p.TripID == 0 {
		api.badRequestResponse(w, r, "tripId is required")
		return false
	}
	if p.Timestamp.IsZero() || p.LastStopTimestamp.IsZero() {
		api.badRequestResponse(w, r, "timestamp and lastStopTimestamp are required")
		return false
	}
	if (p.Lat == nil) != (p.Lon == nil) {
		api.badRequestResponse(w, r, "lat and lon must be set together")
		return false
	}
	if _, err := api.Store.Queries.TripByID(r.Context(), p.TripID); err != nil {
		return api.referenceError(w, r, err, fmt.Sprintf("Trip not found: %d", p.TripID))
	}
	return true
}
