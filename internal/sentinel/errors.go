package sentinel

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingWorkspaceID = errors.New("workspace id is required")
	ErrMissingSharedKey   = errors.New("shared key is required")
	ErrInvalidSharedKey   = errors.New("shared key is not valid base64")

	// ErrTransport wraps connection, DNS and timeout failures.
	ErrTransport = errors.New("log analytics request failed")
)

// StatusError reports a response outside [200,299].
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("log analytics returned HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) IsClientError() bool { return e.StatusCode >= 400 && e.StatusCode < 500 }

func (e *StatusError) IsServerError() bool { return e.StatusCode >= 500 && e.StatusCode < 600 }

// StatusCode extracts the upstream status from err, or 0 when there was no response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
