package api

import (
	"errors"
	"fmt"
	"net/http"

	"clientdesk/internal/domain"
)

// ErrMalformedResponse is returned when a 2xx body cannot be decoded into
// the expected shape.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s %s: %s", e.Method, e.URL, e.Status)
}

// Is lets errors.Is(err, domain.ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrNotFound && e.Code == http.StatusNotFound
}
