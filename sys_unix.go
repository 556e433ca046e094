//go:build unix

package fdio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Raw is the native file handle type on Unix platforms: a process-scoped
// integer file descriptor.
type Raw = int

// invalidRaw is the sentinel value a closed [Handle] reports, distinct from
// every descriptor the platform can return.
const invalidRaw Raw = -1

// openFlags derives the open(2) flag bitmask from a semantic [Mode].
//
// Access combinations outside the defined set (exactly one of read, write,
// readWrite; append only together with write or readWrite) are rejected
// with [ErrModeConflict].
func openFlags(m Mode) (int, error) {
	var flags int

	switch m & accessMask {
	case ModeRead:
		flags = unix.O_RDONLY
	case ModeWrite:
		flags = unix.O_WRONLY
	case ModeReadWrite:
		flags = unix.O_RDWR
	case ModeWrite | ModeAppend:
		// O_APPEND appends atomically at EOF; an explicit seek-then-write
		// would race against other writers on the same file.
		flags = unix.O_WRONLY | unix.O_APPEND
	case ModeReadWrite | ModeAppend:
		flags = unix.O_RDWR | unix.O_APPEND
	default:
		return 0, fmt.Errorf("%w: %#x", ErrModeConflict, uint32(m))
	}

	if m.HasCreate() {
		flags |= unix.O_CREAT
	}

	if m.HasTrunc() {
		flags |= unix.O_TRUNC
	}

	// ModeBinary is a no-op: Unix has no newline translation.

	return flags | unix.O_CLOEXEC, nil
}

func sysOpen(path string, m Mode, perm os.FileMode) (Raw, error) {
	flags, err := openFlags(m)
	if err != nil {
		return invalidRaw, err
	}

	fd, err := unix.Open(path, flags, uint32(perm.Perm()))
	if err != nil {
		return invalidRaw, err
	}

	return fd, nil
}

func sysClose(fd Raw) error {
	return unix.Close(fd)
}

func sysRead(fd Raw, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n, err := unix.Read(fd, p)
	if n < 0 {
		n = 0
	}

	return n, err
}

func sysWrite(fd Raw, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n, err := unix.Write(fd, p)
	if n < 0 {
		n = 0
	}

	return n, err
}
