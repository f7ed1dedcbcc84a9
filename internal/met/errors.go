package met

import (
	"errors"
	"fmt"
)

// ErrParameterNotSet is returned when unsetting a search parameter that was
// never set. Callers that want idempotent unset can ignore it explicitly.
var ErrParameterNotSet = errors.New("search parameter not set")

// ErrObjectNotFound is returned when the API has no object for an id.
var ErrObjectNotFound = errors.New("object not found")

// TransportError is a failed network call or a non-success HTTP status.
// It is distinct from an empty search result, which is not an error.
type TransportError struct {
	URL    string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("met API %d from %s: %v", e.Status, e.URL, e.Err)
	}
	return fmt.Sprintf("met API request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
