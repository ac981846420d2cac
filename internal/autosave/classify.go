package autosave

import "github.com/five82/quill/internal/backend"

// MessageFor returns the user-facing message for a status code.
func MessageFor(code backend.StatusCode) string {
	switch code {
	case backend.BadRequest:
		return "Bad Request"
	case backend.Unauthorized:
		return "Unauthorized"
	case backend.Forbidden:
		return "Forbidden"
	case backend.NotFound:
		return "Not Found"
	case backend.InternalServerError:
		return "Internal Server Error"
	case backend.ServiceUnavailable:
		return "Service Unavailable"
	default:
		return "Unknown error"
	}
}

// Classify returns the message for a failed save's error.
func Classify(err error) string {
	return MessageFor(backend.CodeOf(err))
}
