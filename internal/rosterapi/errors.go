package rosterapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mcoot/puppybowl/internal/model"
)

// Kind classifies a roster API failure
type Kind string

const (
	KindTransport Kind = "transport" // request could not be sent or read
	KindStatus    Kind = "status"    // non-2xx response
	KindDecode    Kind = "decode"    // body is not the JSON we expect
	KindShape     Kind = "shape"     // JSON is valid but the record is missing
	KindUpstream  Kind = "upstream"  // envelope reported success=false
)

// ErrNotFound is matched by errors.Is for 404 responses
var ErrNotFound = model.ErrPlayerNotFound

// Error describes a failed roster API operation
type Error struct {
	Op         string
	ID         model.PlayerID
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	target := e.Op
	if e.ID != "" {
		target = fmt.Sprintf("%s #%s", e.Op, e.ID)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("roster api %s: %s (status=%d): %v", target, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("roster api %s: %s: %v", target, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports 404 responses as ErrNotFound
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindStatus && e.StatusCode == http.StatusNotFound
}

// AsError attempts to unwrap err into an *Error
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
