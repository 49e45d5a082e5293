package baasbox

import (
	"errors"
	"fmt"
)

// ConfigError is returned synchronously by New and Init when the client
// configuration is unusable. No request is ever issued with such a config.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid baasbox config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response. Body is the decoded response body and Raw
// the bytes exactly as received, so callers can branch on either.
type ServerError struct {
	Method     string
	URL        string
	StatusCode int
	Body       Value
	Raw        []byte
}

func (e *ServerError) Error() string {
	if msg, ok := e.Body.Get("message").AsString(); ok && msg != "" {
		return fmt.Sprintf("%s %s: server returned status %d: %s", e.Method, e.URL, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: server returned status %d", e.Method, e.URL, e.StatusCode)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not (and
// does not wrap) a ServerError.
func StatusCode(err error) int {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.StatusCode
	}
	return 0
}

// IsStatus reports whether err is a ServerError with the given status.
func IsStatus(err error, status int) bool {
	return StatusCode(err) == status
}
