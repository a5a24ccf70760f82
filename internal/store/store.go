// Package store defines the key-value byte store the todo list is
// persisted into, and the errors every backend reports.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when the underlying storage cannot be reached.
var ErrUnavailable = errors.New("storage unavailable")

// KV is a flat key-value byte store. Set overwrites the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// ReadError reports a failed read of key.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("storage read %q: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed write of key.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("storage write %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Unavailable stands in for a backend that failed to open.
// Every call fails with ErrUnavailable wrapped around Cause.
type Unavailable struct {
	Cause error
}

func (u Unavailable) err() error {
	if u.Cause == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, u.Cause)
}

func (u Unavailable) Get(context.Context, string) ([]byte, error) { return nil, u.err() }
func (u Unavailable) Set(context.Context, string, []byte) error   { return u.err() }
func (u Unavailable) Close() error                                { return nil }
