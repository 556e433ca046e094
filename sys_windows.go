//go:build windows

package fdio

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// Raw is the native file handle type on Windows: an opaque kernel handle.
type Raw = windows.Handle

// invalidRaw is the sentinel value a closed [Handle] reports
// (INVALID_HANDLE_VALUE, distinct from every handle CreateFile can return).
const invalidRaw Raw = windows.InvalidHandle

// openArgs derives the CreateFile access mask, share mode, and creation
// disposition from a semantic [Mode].
//
// Access combinations outside the defined set (exactly one of read, write,
// readWrite; append only together with write or readWrite) are rejected
// with [ErrModeConflict].
func openArgs(m Mode) (access, share, disposition uint32, err error) {
	switch m & accessMask {
	case ModeRead:
		access = windows.GENERIC_READ
	case ModeWrite:
		access = windows.GENERIC_WRITE
	case ModeReadWrite:
		access = windows.GENERIC_READ | windows.GENERIC_WRITE
	case ModeWrite | ModeAppend:
		// FILE_GENERIC_WRITE minus FILE_WRITE_DATA leaves FILE_APPEND_DATA:
		// the kernel appends atomically at EOF, so no seek-then-write race
		// against other writers on the same file.
		access = windows.FILE_GENERIC_WRITE &^ windows.FILE_WRITE_DATA
	case ModeReadWrite | ModeAppend:
		access = windows.GENERIC_READ | (windows.FILE_GENERIC_WRITE &^ windows.FILE_WRITE_DATA)
	default:
		return 0, 0, 0, fmt.Errorf("%w: %#x", ErrModeConflict, uint32(m))
	}

	// Other processes may read, write, or delete the file concurrently;
	// fdio never takes implicit locks.
	share = windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE | windows.FILE_SHARE_DELETE

	switch {
	case m.HasCreate() && m.HasTrunc():
		disposition = windows.CREATE_ALWAYS
	case m.HasCreate():
		disposition = windows.OPEN_ALWAYS
	case m.HasTrunc():
		disposition = windows.TRUNCATE_EXISTING
	default:
		disposition = windows.OPEN_EXISTING
	}

	return access, share, disposition, nil
}

func sysOpen(path string, m Mode, perm os.FileMode) (Raw, error) {
	access, share, disposition, err := openArgs(m)
	if err != nil {
		return invalidRaw, err
	}

	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return invalidRaw, err
	}

	attrs := uint32(windows.FILE_ATTRIBUTE_NORMAL)
	if m.HasCreate() && perm.Perm()&0o200 == 0 {
		attrs = windows.FILE_ATTRIBUTE_READONLY
	}

	h, err := windows.CreateFile(p, access, share, nil, disposition, attrs, 0)
	if err != nil {
		return invalidRaw, err
	}

	return h, nil
}

func sysClose(h Raw) error {
	return windows.CloseHandle(h)
}

func sysRead(h Raw, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	var done uint32

	err := windows.ReadFile(h, p, &done, nil)
	if err == windows.ERROR_HANDLE_EOF || err == windows.ERROR_BROKEN_PIPE {
		// End of stream is a normal zero-byte read, not an error.
		return int(done), nil
	}

	return int(done), err
}

func sysWrite(h Raw, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	var done uint32

	err := windows.WriteFile(h, p, &done, nil)

	return int(done), err
}
