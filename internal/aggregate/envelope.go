package aggregate

import (
	"fmt"
	"net/http"
)

// Envelope is the {success, ...} response wrapper shared by all operations.
type Envelope map[string]interface{}

// OK reports whether the envelope is a success envelope.
func (e Envelope) OK() bool {
	ok, _ := e["success"].(bool)
	return ok
}

// Status is the HTTP status the envelope is served with.
func (e Envelope) Status() int {
	if e.OK() {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

// Error returns the failure message, empty for success envelopes.
func (e Envelope) Error() string {
	msg, _ := e["error"].(string)
	return msg
}

func failure(format string, args ...interface{}) Envelope {
	return Envelope{
		"success": false,
		"error":   fmt.Sprintf(format, args...),
	}
}
