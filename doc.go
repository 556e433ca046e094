// Package fdio provides a minimal, move-only wrapper around operating-system
// file handles: open, close, positional read/write, and vectored
// (multi-buffer) read/write.
//
// fdio is not an I/O framework. It is the single resource-owning primitive
// other components compose: a [Handle] owns exactly one native descriptor,
// releases it exactly once, and transfers ownership only through
// [Handle.Move]. Buffering, path manipulation, directory traversal, and
// metadata belong to callers.
//
// # Basic Usage
//
//	h, err := fdio.Open("data.bin", fdio.MustParseMode("w+b"))
//	if err != nil {
//	    // *fdio.OpError carries the path and the native cause
//	}
//	defer h.Close()
//
//	n, err := h.Write([]byte{0, 1, 2, 3})
//
// Open modes use the symbolic grammar r, r+, w, w+, a, a+, each optionally
// suffixed with b. See [ParseMode] for the exact table.
//
// # Ownership
//
// A [Handle] is move-only. Copying the struct is forbidden (go vet reports
// it); the only way ownership changes is [Handle.Move], which leaves the
// source closed. Close is idempotent: the native close is issued at most
// once, regardless of how many times Close is called or which exit path
// reaches it.
//
// Pair every successful Open with a deferred Close. As a backstop, a handle
// that becomes unreachable while still open is closed by the garbage
// collector; errors from that implicit close are discarded, so callers that
// care about close failures (e.g. on NFS) must call Close explicitly.
//
// # Reads, Writes, and Partial Transfers
//
// Read and Write mirror the underlying system calls: a transfer of fewer
// bytes than requested is a normal success, and a read at end-of-stream
// returns (0, nil), not io.EOF. [Handle] therefore deliberately does not
// implement [io.Reader]; callers needing full-buffer completion loop.
//
// # Vectored I/O
//
// Readv and Writev operate over multiple buffers in order. On Linux they
// map to readv(2)/writev(2) and the transfer is a single atomic operation
// with respect to the file offset. Elsewhere the behavior is emulated with
// sequential single-buffer calls and is NOT atomic: concurrent writers may
// interleave between buffers. The platform constant [VectoredAtomic]
// reports which behavior this build has.
//
// # Concurrency
//
// fdio takes no locks. A Handle is not safe for concurrent use; the file
// offset is shared OS-side state, so concurrent positional I/O on the same
// descriptor requires external serialization even when callers synchronize
// access to the Handle itself. All calls block until the native call
// returns; there is no cancellation and there are no timeouts.
package fdio
