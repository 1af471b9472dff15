package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorDetail describes one invalid field in an error response.
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorBody struct {
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes an error body, optionally with per-field details.
func JSONError(w http.ResponseWriter, statusCode int, message string, details []ErrorDetail) {
	JSON(w, statusCode, errorBody{Error: message, Details: details})
}

// JSONMessage writes a plain confirmation body.
func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, messageBody{Message: message})
}
