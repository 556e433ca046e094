//go:build !linux

package fdio

// VectoredAtomic reports whether [Handle.Readv] and [Handle.Writev] map to
// a native scatter/gather system call. On this platform they are emulated
// with sequential single-buffer calls, either because the OS has no usable
// primitive for ordinary handles (Windows ReadFileScatter demands
// unbuffered, page-aligned I/O) or because the readv/writev wrappers are
// not exposed here. The emulation preserves buffer order but is NOT
// atomic: operations by other writers on the same file description may
// interleave between buffers.
const VectoredAtomic = false

// sysReadv fills the buffers in order with sequential reads, stopping at
// end of stream. See [VectoredAtomic].
func sysReadv(h Raw, bufs [][]byte) (int, error) {
	total := 0

	for _, b := range bufs {
		n, err := sysRead(h, b)
		total += n

		if err != nil {
			return total, err
		}

		if n < len(b) {
			break
		}
	}

	return total, nil
}

// sysWritev drains the buffers in order with sequential writes, stopping
// if a write makes partial progress. See [VectoredAtomic].
func sysWritev(h Raw, bufs [][]byte) (int, error) {
	total := 0

	for _, b := range bufs {
		n, err := sysWrite(h, b)
		total += n

		if err != nil {
			return total, err
		}

		if n < len(b) {
			break
		}
	}

	return total, nil
}
