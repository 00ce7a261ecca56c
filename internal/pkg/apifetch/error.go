package apifetch

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindTransport means no HTTP status was obtained, or a success body could
	// not be decoded.
	KindTransport Kind = iota
	KindClient
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Classify maps a non-2xx status to its Kind.
func Classify(status int) Kind {
	switch {
	case status >= 400 && status < 500:
		return KindClient
	case status >= 500:
		return KindServer
	}
	return KindTransport
}

// Error is returned for every failed request.
type Error struct {
	Kind    Kind
	Status  int    // 0 for KindTransport
	Message string // detail from the body, or "Request failed (<status>)"
	Body    any    // parsed JSON body, raw text, or nil
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func statusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func IsConflict(err error) bool {
	return statusOf(err) == http.StatusConflict
}

// IsValidation reports a rejected payload (422, or 400 from stricter servers).
func IsValidation(err error) bool {
	s := statusOf(err)
	return s == http.StatusUnprocessableEntity || s == http.StatusBadRequest
}

func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTransport
}

// Message returns the user-facing message carried by an *Error in err's chain.
func Message(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
