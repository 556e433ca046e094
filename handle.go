package fdio

import (
	"os"
	"runtime"
)

// DefaultPerm is the permission applied by [Open] when a mode with
// [ModeCreate] creates the file.
const DefaultPerm os.FileMode = 0o644

// Handle owns exactly one native file handle.
//
// The zero value is a closed handle: [Handle.IsOpen] reports false and
// [Handle.Close] is a no-op. A Handle is move-only: copying the struct is
// reported by go vet, and ownership changes only through [Handle.Move],
// which leaves the source closed. At most one live Handle ever owns a given
// native handle.
//
// A Handle is not safe for concurrent use; see the package documentation.
type Handle struct {
	noCopy noCopy

	raw   Raw
	open  bool
	path  string
	clean runtime.Cleanup
}

// Open opens or creates the named file with the given semantic mode, using
// [DefaultPerm] for files the mode creates.
//
// The access flags of mode must be exactly one of [ModeRead], [ModeWrite],
// [ModeReadWrite], optionally combined with [ModeAppend] when write access
// is present; anything else fails with [ErrModeConflict]. [ParseMode]
// output always satisfies this. [ModeCreate] and [ModeTrunc] combine
// freely: neither opens only an existing file, create alone opens or
// creates, trunc alone truncates an existing file and fails if it is
// absent, both always produce an empty file.
//
// On failure the returned error is an [*OpError] with Op "open" carrying
// the path and the native cause.
func Open(path string, mode Mode) (*Handle, error) {
	return OpenFile(path, mode, DefaultPerm)
}

// OpenFile is like [Open] but lets the caller choose the permission bits
// applied when the file is created.
func OpenFile(path string, mode Mode, perm os.FileMode) (*Handle, error) {
	raw, err := sysOpen(path, mode, perm)
	if err != nil {
		return nil, &OpError{Op: "open", Path: path, Err: err}
	}

	return newHandle(raw, path), nil
}

// Adopt takes ownership of an already-open native handle. No native call is
// issued and Adopt never fails.
//
// The caller must not use or close raw afterwards: the returned Handle is
// now its sole owner.
func Adopt(raw Raw) *Handle {
	return newHandle(raw, "")
}

func newHandle(raw Raw, path string) *Handle {
	h := &Handle{raw: raw, open: true, path: path}

	// Backstop for handles leaked without Close: release the descriptor
	// when the Handle becomes unreachable. The close error is discarded on
	// this path; callers that need it must call Close explicitly.
	h.clean = runtime.AddCleanup(h, func(raw Raw) { _ = sysClose(raw) }, raw)

	return h
}

// IsOpen reports whether h currently owns a native handle. It is false for
// nil, zero-value, closed, and moved-from handles.
func (h *Handle) IsOpen() bool {
	return h != nil && h.open
}

// Name returns the path the handle was opened with. It is empty for
// adopted handles and retained after Close for diagnostics.
func (h *Handle) Name() string {
	if h == nil {
		return ""
	}

	return h.path
}

// Raw returns the native handle value without transferring ownership, or
// the platform's invalid sentinel when h is closed. The caller must not
// close the returned value; use [Handle.Move] to take ownership.
func (h *Handle) Raw() Raw {
	if !h.IsOpen() {
		return invalidRaw
	}

	return h.raw
}

// Close releases the native handle.
//
// Close on a closed, moved-from, nil, or zero-value Handle is a no-op
// returning nil; the native close is issued at most once. The handle is
// considered released even when the native close fails, because a failed
// close cannot be retried safely, so h is closed on every return path. A
// native failure surfaces as an [*OpError] with Op "close".
func (h *Handle) Close() error {
	if !h.IsOpen() {
		return nil
	}

	raw := h.raw
	h.invalidate()

	if err := sysClose(raw); err != nil {
		return &OpError{Op: "close", Path: h.path, Err: err}
	}

	return nil
}

// Move transfers ownership of the native handle to a new Handle and leaves
// h closed. Move is the only way ownership changes between handles.
//
// Moving a closed handle yields another closed handle.
func (h *Handle) Move() *Handle {
	if !h.IsOpen() {
		return &Handle{raw: invalidRaw}
	}

	raw, path := h.raw, h.path
	h.invalidate()

	return newHandle(raw, path)
}

// Release transfers ownership of the native handle to the caller: h
// becomes closed and no native close is ever issued for it by this
// Handle. Releasing a closed handle returns the platform sentinel.
//
// Release is the bridge to foreign code that expects a raw descriptor,
// the counterpart of [Adopt]; within fdio, transfer with [Handle.Move].
func (h *Handle) Release() Raw {
	if !h.IsOpen() {
		return invalidRaw
	}

	raw := h.raw
	h.invalidate()

	return raw
}

// invalidate marks h closed and stops the GC backstop. The owned handle
// must already have a new owner or be on its way to sysClose.
func (h *Handle) invalidate() {
	h.raw = invalidRaw
	h.open = false
	h.clean.Stop()
	h.clean = runtime.Cleanup{}
}

// Read reads up to len(p) bytes into p and returns the number of bytes
// transferred. Short reads are a normal success, and a read at
// end-of-stream returns (0, nil), mirroring the native call; Handle is
// deliberately not an [io.Reader]. Callers that need a full buffer must
// loop.
//
// Reading a closed handle fails with an error satisfying
// errors.Is(err, [ErrClosed]).
func (h *Handle) Read(p []byte) (int, error) {
	if !h.IsOpen() {
		return 0, &OpError{Op: "read", Path: h.Name(), Err: ErrClosed}
	}

	n, err := sysRead(h.raw, p)
	if err != nil {
		return n, &OpError{Op: "read", Path: h.path, Err: err}
	}

	return n, nil
}

// Write writes up to len(p) bytes from p and returns the number of bytes
// transferred. A short write is a normal success the caller must handle by
// looping; no retry happens internally.
//
// Writing a closed handle fails with an error satisfying
// errors.Is(err, [ErrClosed]).
func (h *Handle) Write(p []byte) (int, error) {
	if !h.IsOpen() {
		return 0, &OpError{Op: "write", Path: h.Name(), Err: ErrClosed}
	}

	n, err := sysWrite(h.raw, p)
	if err != nil {
		return n, &OpError{Op: "write", Path: h.path, Err: err}
	}

	return n, nil
}

// Readv reads into the buffers in order and returns the total number of
// bytes transferred. An empty buffer list returns (0, nil) without a
// native call.
//
// Whether the transfer is atomic with respect to the file offset depends
// on the platform; see [VectoredAtomic].
func (h *Handle) Readv(bufs [][]byte) (int, error) {
	if !h.IsOpen() {
		return 0, &OpError{Op: "readv", Path: h.Name(), Err: ErrClosed}
	}

	if len(bufs) == 0 {
		return 0, nil
	}

	n, err := sysReadv(h.raw, bufs)
	if err != nil {
		return n, &OpError{Op: "readv", Path: h.path, Err: err}
	}

	return n, nil
}

// Writev writes the buffers in order and returns the total number of bytes
// transferred. An empty buffer list returns (0, nil) without a native
// call.
//
// Whether the transfer is atomic with respect to the file offset depends
// on the platform; see [VectoredAtomic].
func (h *Handle) Writev(bufs [][]byte) (int, error) {
	if !h.IsOpen() {
		return 0, &OpError{Op: "writev", Path: h.Name(), Err: ErrClosed}
	}

	if len(bufs) == 0 {
		return 0, nil
	}

	n, err := sysWritev(h.raw, bufs)
	if err != nil {
		return n, &OpError{Op: "writev", Path: h.path, Err: err}
	}

	return n, nil
}

// noCopy makes `go vet -copylocks` flag copies of [Handle].
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
