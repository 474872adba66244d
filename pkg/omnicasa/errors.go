package omnicasa

import "fmt"

// APIError is a failure declared by the service itself: a non-zero Code with Success unset.
type APIError struct {
	Endpoint string
	Code     int
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("omnicasa %s failed: code=%d, message=%s", e.Endpoint, e.Code, e.Message)
}
