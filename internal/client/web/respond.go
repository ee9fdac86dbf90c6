package web

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/moneyflow/internal/client/client"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

// statusFor maps a transport failure to the status the dashboard answers
// with.
func statusFor(err error) int {
	switch client.KindOf(err) {
	case client.KindValidation:
		return http.StatusBadRequest
	case client.KindNotFound:
		return http.StatusNotFound
	case client.KindUnauthorized:
		return http.StatusUnauthorized
	case client.KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the mapped status. Validation payloads from the
// API are passed through so the caller sees the field errors.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if p := client.PayloadOf(err); p != nil && status == http.StatusBadRequest {
		writeJSON(w, status, p)
		return
	}
	writeMessage(w, status, http.StatusText(status))
}
