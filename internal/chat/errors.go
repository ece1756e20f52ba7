package chat

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a submission is attempted with no
	// text, image, or audio present.
	ErrEmptyInput = errors.New("nothing to send: message is empty and no media is attached")

	// ErrBusy is returned when a submission is attempted while another
	// request is still in flight. The rejected submission has no side
	// effect.
	ErrBusy = errors.New("a request is already in flight")
)

// ConfigurationError reports a missing or invalid setting that prevents
// a request from being constructed at all. No network attempt is made.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Reason)
}

// TransportError reports a failed provider call: a network error, a
// non-success status, or a malformed response body. The user's turn is
// preserved in the conversation; no assistant turn is appended.
type TransportError struct {
	StatusCode int    // 0 when the request never reached the server
	Body       string // response body excerpt, may be empty
	Err        error  // underlying error, may be nil
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider request failed (HTTP %d): %s", e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("provider request failed: %v", e.Err)
	}
	return "provider request failed"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationError reports media that fails the attach-time type or size
// policy. The offending blob never enters the pending input.
type ValidationError struct {
	Kind     PartKind
	MIMEType string
	Size     int64
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s attachment (%s, %d bytes): %s", e.Kind, e.MIMEType, e.Size, e.Reason)
}
