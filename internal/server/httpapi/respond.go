package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/proplusapp/proplus/internal/common"
)

// errorBody is the error envelope, matching the original API shape.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

// writeError maps a taxonomy error onto its status and stable reason string.
// Every failure a handler sees must land on exactly one of these branches.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		errorJSON(w, http.StatusBadRequest, "validation error")
	case errors.Is(err, common.ErrConflict):
		errorJSON(w, http.StatusBadRequest, "already exists")
	case errors.Is(err, common.ErrUnauthorized):
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrStoreUnavailable):
		errorJSON(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		errorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
