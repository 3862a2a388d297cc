package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/foodshare/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// storeError maps a store error to its HTTP status. Unexpected errors are
// logged and reported as "failed to <action>".
func storeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var notFound *store.NotFoundError
	var invalid *store.ValidationError
	var transition *store.InvalidTransitionError

	switch {
	case errors.As(err, &notFound):
		jsonError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &invalid):
		jsonError(w, http.StatusBadRequest, invalid.Error())
	case errors.As(err, &transition):
		jsonError(w, http.StatusConflict, transition.Error())
	default:
		slog.Error("request failed", "action", action, "error", err, "request_id", RequestID(r.Context()))
		jsonError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// pathID parses the {id} path parameter.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// queryInt parses an optional integer query parameter. A missing parameter
// yields def.
func queryInt(r *http.Request, name string, def int64) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	return v, err == nil
}
