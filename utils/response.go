package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]interface{}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"error": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func SendResponse(w http.ResponseWriter, status int, data any, message string, err error) {
	resp := M{
		"status":  status,
		"message": message,
		"data":    data,
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	RespondWithJSON(w, status, resp)
}
