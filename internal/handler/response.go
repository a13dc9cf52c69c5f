package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wellnessflow/api/internal/model"
)

// maxBodyBytes caps request bodies; sessions carry a URL, not content
const maxBodyBytes = 1 << 20

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, r *http.Request, err *model.ProblemDetails) {
	if err.Instance == "" && r != nil {
		err.Instance = r.URL.Path
	}
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct. Unknown
// fields are ignored so clients may post back whole session objects.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
