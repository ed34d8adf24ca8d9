package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// marshalFailureBody is written when the payload itself cannot be encoded,
// so even that failure keeps the {"error": ...} envelope.
const marshalFailureBody = `{"error":"Internal Server Error"}`

// WriteJSON encodes data as the JSON response body with the given status.
//
// Content-Type is always "application/json". When data cannot be marshaled
// the response becomes a 500 carrying the error envelope and the marshal
// error is returned.
//
// Example usage:
//
//	utils.WriteJSON(w, task, http.StatusCreated)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	w.Header().Set("Content-Type", "application/json")

	jsonData, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(marshalFailureBody))
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.WriteHeader(statusCode)
	return w.Write(jsonData)
}
