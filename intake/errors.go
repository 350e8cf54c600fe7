package intake

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MessageIncomplete   = "Please fill in all fields before submitting."
	MessageSubmitFailed = "Failed to submit profile."
	MessageUnknown      = "Unknown error"
)

// ErrIncompleteDraft is the validation error for a draft with a blank free-text answer
var ErrIncompleteDraft = errors.New(MessageIncomplete)

// TransportError wraps a failure to reach the collection endpoint
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerRejection is a response outside the 2xx range
type ServerRejection struct {
	StatusCode int
	Body       string
}

func (e *ServerRejection) Error() string {
	if strings.TrimSpace(e.Body) != "" {
		return e.Body
	}
	return fmt.Sprintf("collection endpoint returned status %d", e.StatusCode)
}

// failureMessage converts a send error into the text shown to the user
func failureMessage(err error) string {
	var rejection *ServerRejection
	if errors.As(err, &rejection) {
		if rejection.Body != "" {
			return rejection.Body
		}
		return MessageSubmitFailed
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		if msg := transport.Error(); msg != "" {
			return msg
		}
		return MessageUnknown
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return MessageUnknown
}
