package backend

import "errors"

// Sentinel errors for backend call outcomes. Controllers branch on these to
// pick the degrade path: reads fall back to empty datasets, writes leave
// local state untouched and surface the message.
var (
	// ErrUnavailable indicates a transport-level failure: the request never
	// produced an HTTP response.
	ErrUnavailable = errors.New("backend: service unavailable")
	// ErrRequestFailed indicates an HTTP-level failure (status >= 400).
	ErrRequestFailed = errors.New("backend: request failed")
	// ErrInvalidResponse indicates a response body that could not be decoded.
	ErrInvalidResponse = errors.New("backend: invalid response")
)

// RejectionError is a well-formed refusal from the backend: the HTTP call
// succeeded but the response envelope carries success=false. The server's
// own message is surfaced verbatim to the user.
type RejectionError struct {
	Message string
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	if e.Message == "" {
		return "backend: request rejected"
	}
	return e.Message
}

// UserMessage extracts the text shown to the user for a failed backend
// call: the server's own message for rejections, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var rej *RejectionError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	return fallback
}
