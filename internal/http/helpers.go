package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"smartspend/internal/gateway"
	"smartspend/internal/mutation"
)

const msgNotAuthenticated = "Não autenticado"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusForError maps core errors onto local response codes. Upstream
// failures surface as gateway errors, never as 500s of this process.
func statusForError(err error) int {
	var validationErr *mutation.ValidationError
	switch {
	case errors.Is(err, mutation.ErrNotConfirmed):
		return http.StatusBadRequest
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, mutation.ErrUploadInFlight):
		return http.StatusConflict
	case errors.Is(err, gateway.ErrNetworkUnavailable):
		return http.StatusServiceUnavailable
	default:
		if httpErr, ok := gateway.AsHTTPError(err); ok {
			if httpErr.Status == http.StatusNotFound {
				return http.StatusNotFound
			}
			return http.StatusBadGateway
		}
		if errors.Is(err, gateway.ErrMalformedResponse) {
			return http.StatusBadGateway
		}
		return http.StatusInternalServerError
	}
}
