package services

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogUnavailable matches every infrastructure failure of the catalog
	// (timeout, transport, upstream status). It never matches a "no result" outcome.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrEmptyTerm is returned when a search term is blank after trimming
	ErrEmptyTerm = errors.New("search term cannot be empty")

	// ErrEmptyQuery is returned when the movie name is blank after trimming
	ErrEmptyQuery = errors.New("movie name cannot be empty")
)

// TimeoutError means the catalog did not answer inside the request window
type TimeoutError struct {
	Operation string
	Err       error
}

func (e *TimeoutError) Error() string {
	msg := "catalog " + e.Operation + " timed out"
	if e.Err != nil {
		msg += " - " + e.Err.Error()
	}
	return msg
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}

// TransportError covers DNS, connection and body decoding failures
type TransportError struct {
	Operation string
	Message   string
	Err       error
}

func (e *TransportError) Error() string {
	msg := "catalog " + e.Operation + " failed"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += " - " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}

// UpstreamError carries a non-2xx catalog response so callers can forward it
type UpstreamError struct {
	Operation string
	Status    int
	Body      []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog %s failed: upstream returned status %d", e.Operation, e.Status)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}
