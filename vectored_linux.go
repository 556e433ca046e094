//go:build linux

package fdio

import "golang.org/x/sys/unix"

// VectoredAtomic reports whether [Handle.Readv] and [Handle.Writev] map to
// a native scatter/gather system call. On Linux they use readv(2)/writev(2),
// which transfer the whole buffer list as a single operation with respect
// to the file offset.
const VectoredAtomic = true

func sysReadv(fd Raw, bufs [][]byte) (int, error) {
	n, err := unix.Readv(fd, bufs)
	if n < 0 {
		n = 0
	}

	return n, err
}

func sysWritev(fd Raw, bufs [][]byte) (int, error) {
	n, err := unix.Writev(fd, bufs)
	if n < 0 {
		n = 0
	}

	return n, err
}
