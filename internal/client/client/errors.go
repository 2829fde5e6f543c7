package client

import (
	"errors"
	"net/http"
)

// Kind classifies a failed request. Every error returned by the request
// clients carries exactly one Kind.
type Kind string

const (
	KindTimeout     Kind = "timeout"
	KindNetwork     Kind = "network"
	KindClient      Kind = "server-4xx"
	KindServer      Kind = "server-5xx"
	KindAuthExpired Kind = "auth-expired"
)

// Sentinels matched by *Error through errors.Is.
var (
	ErrTimeout     = errors.New("request timeout")
	ErrNetwork     = errors.New("network error")
	ErrClient      = errors.New("request rejected")
	ErrServer      = errors.New("server error")
	ErrAuthExpired = errors.New("authentication expired")
)

// User-facing messages for failures that carry no server payload.
const (
	MsgTimeout        = "Request timeout. Please check your internet connection."
	MsgNetwork        = "Network error. Please check your internet connection."
	MsgNotAuthorized  = "User is not authenticated"
	MsgSessionExpired = "Your session has expired. Please login again."
	MsgBadResponse    = "Unexpected response from server"
)

func (k Kind) sentinel() error {
	switch k {
	case KindTimeout:
		return ErrTimeout
	case KindNetwork:
		return ErrNetwork
	case KindClient:
		return ErrClient
	case KindServer:
		return ErrServer
	case KindAuthExpired:
		return ErrAuthExpired
	}
	return nil
}

// Error is the normalized failure shape surfaced to callers.
type Error struct {
	Kind    Kind
	Message string
	// Status is the HTTP status code, zero when no response was received.
	Status int
	Err    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsAuthExpired reports whether the caller should re-authenticate.
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}

func kindForStatus(status int) Kind {
	if status >= http.StatusInternalServerError {
		return KindServer
	}
	return KindClient
}

func authExpired(message string, status int, cause error) *Error {
	return &Error{Kind: KindAuthExpired, Message: message, Status: status, Err: cause}
}
