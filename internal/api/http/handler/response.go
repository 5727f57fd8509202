package handler

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON body returned for every failed request: a stable
// machine-readable code plus a human-readable message. Internal detail is
// logged, never returned.
type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteErrorResponse writes a structured error body.
func WriteErrorResponse(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorResponse{Success: false, Code: code, Message: message})
}
