package handlers

import (
	"encoding/json"
	"net/http"
)

// envelope is the uniform response shape: error carries a stable kind for
// client handling (null on success), message the human text.
type envelope struct {
	Error   interface{} `json:"error"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func writeErr(w http.ResponseWriter, code int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(envelope{Error: kind, Message: message})
}

func writeData(w http.ResponseWriter, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(envelope{Message: message, Data: data})
}
