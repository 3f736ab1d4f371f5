package store

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Kind tells callers which failure channel an Error belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNetwork
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrSuperseded   = errors.New("fetch superseded by a newer request")
)

var fallbackMessages = map[Kind]string{
	KindValidation:   "Please check the highlighted fields and try again.",
	KindNetwork:      "Unable to reach the server. Please try again.",
	KindUnauthorized: "Your session has expired. Please sign in again.",
	KindUnknown:      "Something went wrong. Please try again.",
}

// Error is the store's user-facing failure. Message is safe to show as is.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

type statusCoder interface {
	StatusCode() int
}

type userMessager interface {
	UserMessage() string
}

// Classify maps a backend or transport error to a Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		switch code := sc.StatusCode(); {
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return KindUnauthorized
		case code == http.StatusBadRequest || code == http.StatusConflict || code == http.StatusUnprocessableEntity:
			return KindValidation
		case code >= 500:
			return KindNetwork
		default:
			return KindUnknown
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	return KindUnknown
}

// WrapError converts err into an *Error, keeping a backend-supplied message
// when one is available.
func WrapError(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}

	kind := Classify(err)
	msg := fallbackMessages[kind]
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" && kind != KindNetwork {
		msg = um.UserMessage()
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}
