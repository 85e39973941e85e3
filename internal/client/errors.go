package client

import (
	"errors"
	"fmt"
)

// ErrNoGoal is returned by Goal when the account has no goal recorded.
var ErrNoGoal = errors.New("no goal set")

// ServiceError is a reply with ok=false. Message is the service's text, verbatim.
type ServiceError struct {
	Action  string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request rejected", e.Action)
	}
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Action string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected HTTP status %d", e.Action, e.Code)
}

// Temporary reports whether the request may succeed if retried.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == 429
}
