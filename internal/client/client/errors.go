package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/moneyflow/internal/client/models"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)

// Kind is the closed set of failure classes the transport reports.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindNotFound
	KindValidation
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// APIError is the only error type HTTPClient returns for a failed call.
type APIError struct {
	Kind       Kind
	StatusCode int
	Payload    *models.ErrorPayload
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Kind.String()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if text := e.Payload.ErrorText(); text != "" {
		msg += ": " + text
	} else if e.Payload != nil && e.Payload.Message != "" {
		msg += ": " + e.Payload.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error { return e.Err }

// Is lets callers match an APIError against the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrUnavailable:
		return e.Kind == KindNetwork
	}
	return false
}

// KindOf extracts the failure class of err. Errors that did not come from
// the transport are KindUnknown.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// PayloadOf returns the server error body carried by err, if any.
func PayloadOf(err error) *models.ErrorPayload {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Payload
	}
	return nil
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return KindNetwork
	default:
		return KindUnknown
	}
}
