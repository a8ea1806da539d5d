package middleware

import (
	"encoding/json"
	"net/http"
)

// MsgServerError is the body message of every unexpected failure.
const MsgServerError = "Server Error"

// WriteMessage sends a {"message": msg} JSON body with the given status.
// Every error response of the API goes through it.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
