package domain

import (
	"errors"
	"fmt"
)

// ValidationError rejects a local edit or a point that breaks an invariant.
// No network call is attempted for these.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// NotFoundError marks an entity that does not exist, locally or remotely.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource != "" && e.ID != "":
		return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
	case e.Resource != "":
		return fmt.Sprintf("%s not found", e.Resource)
	default:
		return "not found"
	}
}

func (e NotFoundError) Unwrap() error { return e.Err }

// MalformedRecordError means a remote record could not be converted to an
// entity: a required field is missing or a date is unparsable. Fatal for the
// single record, non-fatal for the session.
type MalformedRecordError struct {
	Field string
	Err   error
}

func (e MalformedRecordError) Error() string {
	if e.Field == "" {
		return "malformed record"
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed record: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed record: missing %s", e.Field)
}

func (e MalformedRecordError) Unwrap() error { return e.Err }

// TransportError wraps a network-level failure before any HTTP status was
// received.
type TransportError struct {
	Op  string
	Err error
}

func (e TransportError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e TransportError) Unwrap() error { return e.Err }

// ServerError carries a non-success HTTP status from the remote store.
type ServerError struct {
	Op     string
	Status int
}

func (e ServerError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("server rejected %s with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("server error: status %d", e.Status)
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsMalformedRecord(err error) bool {
	var target MalformedRecordError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target TransportError
	return errors.As(err, &target)
}

func IsServer(err error) bool {
	var target ServerError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}
