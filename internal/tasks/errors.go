package tasks

import (
	"errors"
	"fmt"

	"github.com/desertthunder/lanes/internal/shared"
)

// Op names the synchronizer operation that failed.
type Op int

const (
	OpFetch Op = iota
	OpCreate
	OpUpdate
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// SyncError is returned by every failing [Synchronizer] operation.
//
// Kind is one of [shared.ErrValidation], [shared.ErrNotFound], [shared.ErrTransport]
// or [shared.ErrParse]; both Kind and the underlying cause match with [errors.Is].
type SyncError struct {
	Op   Op
	Kind error
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

var kinds = []error{shared.ErrValidation, shared.ErrNotFound, shared.ErrParse, shared.ErrTransport}

// newSyncError classifies err. Anything unrecognized is a transport failure.
func newSyncError(op Op, err error) *SyncError {
	var serr *SyncError
	if errors.As(err, &serr) {
		return &SyncError{Op: op, Kind: serr.Kind, Err: serr.Err}
	}

	kind := shared.ErrTransport
	for _, k := range kinds {
		if errors.Is(err, k) {
			kind = k
			break
		}
	}
	return &SyncError{Op: op, Kind: kind, Err: err}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", shared.ErrValidation, fmt.Sprintf(format, args...))
}

// KindOf returns the [SyncError] kind of err, or nil when err is not a sync failure.
func KindOf(err error) error {
	var serr *SyncError
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return nil
}
