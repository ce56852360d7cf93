package hint

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("hint: provider client unavailable")
	ErrEmptyResponse     = errors.New("hint: empty response text")
	ErrUnrecognizedShape = errors.New("hint: unrecognized response shape")
)

type ErrorKind int

const (
	KindTransport   ErrorKind = iota // network failure, no status from the provider
	KindNotFound                     // model or API version does not exist
	KindAuth                         // credential missing or rejected
	KindRateLimit                    // quota or 429
	KindEmpty                        // soft failure, blank text
	KindUnavailable                  // capability could not be loaded
	KindProvider                     // any other provider-side failure
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindEmpty:
		return "empty"
	case KindUnavailable:
		return "unavailable"
	case KindProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// ProviderError is what Engine.Request fails with.
type ProviderError struct {
	Kind     ErrorKind
	Endpoint Endpoint
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%s, status %d): %v", e.Kind, e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Kind, e.Endpoint, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StatusCoder is implemented by transport errors that carry an HTTP status.
type StatusCoder interface {
	StatusCode() int
}
