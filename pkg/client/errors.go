package client

import (
	"context"
	"errors"
	"fmt"
)

// Common errors returned by the client. Every *Error matches the sentinel of
// its Kind through errors.Is.
var (
	// ErrConfiguration is returned when a kind has no usable endpoint or the
	// client is misconfigured.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound is returned when the API has no resource for the request.
	ErrNotFound = errors.New("resource not found")

	// ErrTransport is returned for network failures, unexpected status codes
	// and cancellation.
	ErrTransport = errors.New("transport error")

	// ErrDecode is returned when a response body does not match the expected shape.
	ErrDecode = errors.New("decode error")

	// ErrUnsupportedNavigation is returned when a link URL does not end in a numeric id.
	ErrUnsupportedNavigation = errors.New("unsupported navigation format")

	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")
)

// ErrorKind tells callers what went wrong from the resolver's point of view.
type ErrorKind string

const (
	// KindConfiguration means the requested kind cannot be mapped to an endpoint.
	KindConfiguration ErrorKind = "configuration"

	// KindNotFound means the API answered 404.
	KindNotFound ErrorKind = "not_found"

	// KindTransport means the request could not be completed.
	KindTransport ErrorKind = "transport"

	// KindDecode means the response could not be deserialized.
	KindDecode ErrorKind = "decode"

	// KindUnsupportedNavigation means a link URL has no numeric id.
	KindUnsupportedNavigation ErrorKind = "unsupported_navigation"
)

// ErrorClass represents a classification of HTTP errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 Too Many Requests.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// Error is returned by every client operation.
type Error struct {
	Kind       ErrorKind
	Class      ErrorClass
	StatusCode int
	URL        string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("pokeapi %s error", e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.URL != "" {
		msg += " for " + e.URL
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel belonging to the error's Kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindConfiguration:
		return target == ErrConfiguration
	case KindNotFound:
		return target == ErrNotFound
	case KindTransport:
		return target == ErrTransport
	case KindDecode:
		return target == ErrDecode
	case KindUnsupportedNavigation:
		return target == ErrUnsupportedNavigation
	default:
		return false
	}
}

// IsNotFound reports whether err means the resource does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable reports whether repeating the failed request may succeed.
// Cancellation and client errors are never retryable.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == KindTransport && shouldRetry(apiErr.Class)
}

// shouldRetry determines if an error should be retried based on its classification.
func shouldRetry(errorClass ErrorClass) bool {
	switch errorClass {
	case ErrorClassClient:
		// 4xx errors, including 404, are answers and not failures
		return false
	case ErrorClassServer, ErrorClassRateLimit, ErrorClassNetwork:
		return true
	default:
		return false
	}
}

// classifyStatus maps a non-2xx status code to an ErrorClass.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode == 429:
		return ErrorClassRateLimit
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ErrorClassClient
	}
}

// asError converts err into an *Error of the given kind unless it already
// carries one.
func asError(err error, kind ErrorKind, url string) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}
	e := &Error{Kind: kind, URL: url, Err: err}
	if kind == KindTransport {
		e.Class = ErrorClassNetwork
	}
	return e
}
