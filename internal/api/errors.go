package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when a call requires a credential
// and none is stored. The request is failed before any network I/O.
var ErrUnauthenticated = errors.New("not authenticated. Please run 'rentd login' first")

// HTTPError is a response the server rejected: a non-2xx status plus
// the error text the server sent back.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
}

// NetworkError is a transport failure: the request never produced a
// response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to send request: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError means the server answered 2xx but the body did not
// match the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError is a request payload rejected client-side before
// any network I/O.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
