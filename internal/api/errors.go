package api

import (
	"encoding/json"
	"net/http"
)

type messageBody struct {
	Message string `json:"message"`
}

// writeMessage writes a {"message": ...} JSON response with the given status.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageBody{Message: message})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
