package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the storefront API.
type Error struct {
	StatusCode    int
	Message       string
	CorrelationID string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storefront api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("storefront api: %d %s", e.StatusCode, e.Message)
}

// errorBody is the error payload shape returned by the API.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newError(status int, body []byte, correlationID string) *Error {
	e := &Error{StatusCode: status, CorrelationID: correlationID}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.Message = eb.Message
		if e.Message == "" {
			e.Message = eb.Error
		}
	}

	return e
}

// Message returns the server-provided message carried by err, or fallback
// when err has none (transport failures, empty bodies).
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
