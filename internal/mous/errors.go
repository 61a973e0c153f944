package mous

import "fmt"

// TransportError wraps a network-level failure (connection, timeout) on the
// way to the upstream API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx response from the API. Body holds at most the
// first 300 bytes of the response body.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API %d: %s", e.Status, e.Body)
}

// ShapeError means the random endpoint returned neither a full record nor a
// usable id.
type ShapeError struct {
	Payload any
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("random endpoint did not return an id, got: %v", e.Payload)
}
