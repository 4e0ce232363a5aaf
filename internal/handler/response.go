package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// envelope is the standard REST response format: a status string, a
// human-readable message, and a data payload.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteJSON writes a JSON response with the given status code and data.
// Sets Content-Type to application/json before writing the status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Write error intentionally ignored in response helper
}

// WriteSuccess writes a success envelope with the given message and data.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// WriteError writes an error envelope with the given status code and
// human-readable message.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, envelope{
		Status:  "error",
		Message: message,
		Data:    struct{}{},
	})
}

// ParseJSON decodes the request body as JSON into v.
// It validates that the Content-Type header is application/json and
// returns an error for missing/incorrect content type or malformed JSON.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	return nil
}
