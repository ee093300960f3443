// responses.go -- JSONP response helpers for the callback endpoint.
//
// The callback page consumes the payload cross-origin via a script tag, so
// the payload is always delivered with HTTP 200 and failures travel in the
// body's "error" field, never in the status code.
package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
)

// defaultCallbackName is used when the ?callback parameter is absent or
// fails validation.
const defaultCallbackName = "callback"

// callbackNamePattern limits wrapper names to safe identifier characters so
// a crafted ?callback value can't inject script into the response.
var callbackNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// jsonpPayload is the wrapped body: exactly one of Token or Error is set.
type jsonpPayload struct {
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}

// callbackName reads and validates the ?callback query parameter.
func callbackName(r *http.Request) string {
	name := r.URL.Query().Get("callback")
	if name == "" || !callbackNamePattern.MatchString(name) {
		return defaultCallbackName
	}
	return name
}

// writeJSONP writes the payload as a JSONP function call with HTTP 200.
func writeJSONP(w http.ResponseWriter, callback string, payload jsonpPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		body = []byte(`{"error":"internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "%s(%s);", callback, body)
}

// writeJSONPError wraps a caller-visible error description.
func writeJSONPError(w http.ResponseWriter, callback, message string) {
	writeJSONP(w, callback, jsonpPayload{Error: message})
}

// InternalServerError logs the error and returns a generic 500 JSON
// response. Used by the redirect endpoint, which is not JSONP-wrapped.
func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	logError(r, "internal server error", "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"message":"internal server error"}`))
}
