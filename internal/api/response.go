// JSON bodies of the bridge HTTP routes. Results are written as the bare
// value, failures as {"error": "..."}, matching the text a WebSocket error
// frame would carry.

package api

import (
	"encoding/json"
	"log"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

// RespondWithJSON encodes payload as the body. A payload that cannot be
// encoded, such as a NaN position, turns into a 500 naming the encoder error.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Could not encode %T response: %v", payload, err)
		RespondWithError(w, http.StatusInternalServerError, "encode result: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		log.Printf("Could not write response: %v", err)
	}
}

// RespondWithError writes message as an error body with the given status.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, errorBody{Error: message})
}
