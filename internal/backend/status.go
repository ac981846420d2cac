package backend

import (
	"errors"
	"fmt"
)

// StatusCode is the HTTP-like status a failed save carries.
type StatusCode int

const (
	// Unrecognized marks a failure that carried no known status.
	Unrecognized StatusCode = 0

	BadRequest          StatusCode = 400
	Unauthorized        StatusCode = 401
	Forbidden           StatusCode = 403
	NotFound            StatusCode = 404
	InternalServerError StatusCode = 500
	ServiceUnavailable  StatusCode = 503
)

// StatusCodes is the fixed set of classified failures, in the order the
// simulator draws from.
var StatusCodes = []StatusCode{
	BadRequest,
	Unauthorized,
	Forbidden,
	NotFound,
	InternalServerError,
	ServiceUnavailable,
}

// Known reports whether c belongs to StatusCodes.
func (c StatusCode) Known() bool {
	for _, code := range StatusCodes {
		if code == c {
			return true
		}
	}
	return false
}

func (c StatusCode) String() string {
	switch c {
	case BadRequest:
		return "BAD_REQUEST"
	case Unauthorized:
		return "UNAUTHORIZED"
	case Forbidden:
		return "FORBIDDEN"
	case NotFound:
		return "NOT_FOUND"
	case InternalServerError:
		return "INTERNAL_SERVER_ERROR"
	case ServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return fmt.Sprintf("UNRECOGNIZED(%d)", int(c))
	}
}

// StatusError is the failure variant of a save outcome.
type StatusError struct {
	Code StatusCode
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("save rejected with status %d (%s)", int(e.Code), e.Code)
}

// CodeOf extracts the status carried by err. Errors that are not a
// StatusError map to Unrecognized; nil maps to Unrecognized as well.
func CodeOf(err error) StatusCode {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return Unrecognized
}
