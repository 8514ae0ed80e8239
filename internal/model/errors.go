package model

import "errors"

// ErrInvalidRequest marks missing or unparseable client input
var ErrInvalidRequest = errors.New("invalid request")

// RequestError carries the client-facing message of an invalid request
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Is makes every RequestError match ErrInvalidRequest
func (e *RequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// InvalidRequest builds an error matching ErrInvalidRequest with message as its text
func InvalidRequest(message string) error {
	return &RequestError{Message: message}
}

// AuthRequiredError means the engine refused the request because the current
// credential is missing or insufficient
type AuthRequiredError struct {
	Detail string
	Err    error
}

func (e *AuthRequiredError) Error() string {
	return "authentication required: " + e.Detail
}

func (e *AuthRequiredError) Unwrap() error {
	return e.Err
}

// AsAuthRequired returns the AuthRequiredError in err's chain, if any
func AsAuthRequired(err error) (*AuthRequiredError, bool) {
	var authErr *AuthRequiredError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
