// internal/backend/errors.go
package backend

import "fmt"

// APIError represents an explicit rejection from the upstream backend:
// a non-2xx status, or a 2xx response carrying success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError represents a transport-level failure: the backend was
// unreachable, the connection dropped, or the response could not be read.
// All transport failures are one kind; callers do not distinguish further.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend request failed (%s): %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
