package transport

import "fmt"

// ErrorPayload is the structured body the API sends with a non-2xx status.
// The server emits FastAPI-style {"detail": ...} bodies; the other fields
// cover gin-style {"error": ..., "message": ...} responses.
type ErrorPayload struct {
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message,omitempty"`
	Err     string `json:"error,omitempty"`
}

// APIError is a response the server did send, with an error status.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	RequestID  string
	Payload    ErrorPayload
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Message returns the most specific text the error payload carried, or ""
// if the body had none.
func (e *APIError) Message() string {
	switch {
	case e.Payload.Detail != "":
		return e.Payload.Detail
	case e.Payload.Message != "":
		return e.Payload.Message
	case e.Payload.Err != "":
		return e.Payload.Err
	}
	return ""
}

// RequestError means no response was received at all: DNS failure, refused
// connection, timeout. Distinct from APIError so callers can tell "the server
// said no" from "the server never answered".
type RequestError struct {
	Method string
	Path   string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
