package restapi

import (
	"encoding/json"
	"net/http"
)

func (api *RestAPI) sendJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		api.Logger.Error("failed to encode response", "path", r.URL.Path, "error", err)
	}
}

// readJSON decodes the request body into dst, rejecting unknown fields.
func (api *RestAPI) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		api.badRequestResponse(w, r, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
