// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// JSON writes v with the given HTTP status
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {status, error} with the given HTTP status
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Status: status, Error: message})
}
