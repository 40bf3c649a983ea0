package model

import (
	"errors"
	"fmt"
)

// ErrSyncInProgress is returned when a sync is requested for an owner
// that already has one in flight.
var ErrSyncInProgress = errors.New("sync already in progress for owner")

// ValidationError reports malformed input. Nothing is persisted when
// one is raised.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError reports an update or delete whose target id is absent.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// StorageError wraps a durable-storage I/O failure. Transient marks
// failures the caller may retry (sqlite BUSY/LOCKED).
type StorageError struct {
	Op        string
	Transient bool
	Err       error
}

func (e *StorageError) Error() string {
	if e.Transient {
		return fmt.Sprintf("storage: %s: %v (transient)", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err wraps a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// RemoteError reports a sync transport or remote-side failure. Body
// carries the remote's error payload unmodified; Status is zero when
// the request never produced a response.
type RemoteError struct {
	Status int
	Body   string
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("remote: %v", e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsRemote reports whether err wraps a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
