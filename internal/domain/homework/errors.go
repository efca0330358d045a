// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound indicates a required field is missing from a decoded API payload.
	ErrKeyNotFound = errors.New("required key is missing")
	// ErrVerdictNotFound indicates a homework status outside the recognized set.
	ErrVerdictNotFound = errors.New("unexpected homework status")
	// ErrUnexpectedPayload indicates the payload shape does not match the API
	// documentation (not an object, homeworks not a list, and so on). Bodies
	// that fail to decode land here too: decoding is a payload concern, not a
	// transport one.
	ErrUnexpectedPayload = errors.New("payload does not match the expected shape")
)

// RequestStatusError reports that a call to the review API could not complete
// or came back with a non-200 status. StatusCode is zero when the request
// itself failed before a response arrived.
type RequestStatusError struct {
	StatusCode int
	Err        error
}

func (e *RequestStatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("review API request failed: %v", e.Err)
	}
	return fmt.Sprintf("review API request failed: status %d", e.StatusCode)
}

func (e *RequestStatusError) Unwrap() error { return e.Err }
