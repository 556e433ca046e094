package fdio

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by fdio operations.
//
// Callers should use [errors.Is] to check error types. I/O failures
// (open, close, read, write) are wrapped in [OpError]; these sentinels
// cover misuse of the API itself.
var (
	// ErrInvalidMode indicates a mode token outside the grammar accepted
	// by [ParseMode] (r, r+, w, w+, a, a+, optionally suffixed with b).
	//
	// This is a programming error: mode tokens are almost always literals,
	// so a rejected token means the call site is wrong, not the input data.
	ErrInvalidMode = errors.New("fdio: invalid mode")

	// ErrModeConflict indicates a semantic [Mode] combination the platform
	// mapper cannot translate, e.g. ModeRead|ModeWrite without ModeReadWrite,
	// or ModeAppend without any write access.
	//
	// This is a programming error. [ParseMode] never produces a conflicting
	// Mode; only hand-assembled bitmasks can trigger it.
	ErrModeConflict = errors.New("fdio: conflicting mode flags")

	// ErrClosed indicates an operation on a closed or moved-from [Handle].
	//
	// Close itself never returns ErrClosed: closing a closed handle is a
	// no-op by contract.
	ErrClosed = errors.New("fdio: handle is closed")
)

// OpError records a failed native call, the operation kind, and the file
// path where one applies.
//
// Op is one of "open", "close", "read", "write", "readv", "writev".
// Path is the path passed to [Open] (empty for adopted handles). Err is the
// native cause and can be reached with [errors.Is]/[errors.As] via Unwrap.
type OpError struct {
	Op   string
	Path string
	Err  error
}

// Error renders "fdio: <op> <path>: <cause>", omitting the path when the
// handle has none.
func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("fdio: %s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("fdio: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the native cause.
func (e *OpError) Unwrap() error {
	return e.Err
}
