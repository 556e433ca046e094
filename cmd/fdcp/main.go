// fdcp copies a file through fdio handles.
//
// Usage:
//
//	fdcp [flags] <src> <dst>
//
// Flags:
//
//	-m, --mode       Destination open mode token (default "w")
//	-p, --perm       Destination permission bits, octal (default 0644)
//	-b, --buffer     Chunk size in bytes (default 65536)
//	-v, --vectored   Split each chunk across N buffers and use Writev
//	-a, --atomic     Stage through a temp file and rename over dst
//
// fdcp exists mainly as a worked example of composing the fdio primitive:
// the read loop treats short transfers as normal, and --vectored shows the
// multi-buffer write path.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/fdio"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

type options struct {
	mode     string
	perm     string
	buffer   int
	vectored int
	atomic   bool
}

func run(args []string, errOut *os.File) int {
	flags := flag.NewFlagSet("fdcp", flag.ContinueOnError)
	flags.SetOutput(errOut)

	opts := options{}
	flags.StringVarP(&opts.mode, "mode", "m", "w", "destination open mode token")
	flags.StringVarP(&opts.perm, "perm", "p", "0644", "destination permission bits (octal)")
	flags.IntVarP(&opts.buffer, "buffer", "b", 64*1024, "chunk size in bytes")
	flags.IntVarP(&opts.vectored, "vectored", "v", 1, "split each chunk across N buffers and use Writev")
	flags.BoolVarP(&opts.atomic, "atomic", "a", false, "stage through a temp file and rename over dst")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	if flags.NArg() != 2 {
		fmt.Fprintln(errOut, "usage: fdcp [flags] <src> <dst>")

		return 2
	}

	if err := copyFile(flags.Arg(0), flags.Arg(1), opts); err != nil {
		fmt.Fprintln(errOut, "error:", err)

		return 1
	}

	return 0
}

func copyFile(srcPath, dstPath string, opts options) error {
	mode, err := fdio.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	permBits, err := strconv.ParseUint(opts.perm, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid perm %q: %w", opts.perm, err)
	}

	if opts.buffer <= 0 {
		return fmt.Errorf("buffer size must be positive, got %d", opts.buffer)
	}

	if opts.vectored <= 0 {
		return fmt.Errorf("vectored count must be positive, got %d", opts.vectored)
	}

	src, err := fdio.Open(srcPath, fdio.MustParseMode("rb"))
	if err != nil {
		return err
	}
	defer src.Close()

	if opts.atomic {
		return copyAtomic(src, dstPath, opts.buffer)
	}

	dst, err := fdio.OpenFile(dstPath, mode, os.FileMode(permBits))
	if err != nil {
		return err
	}

	if err := copyChunks(src, dst, opts.buffer, opts.vectored); err != nil {
		_ = dst.Close()

		return err
	}

	return dst.Close()
}

// copyChunks streams src to dst. A zero-byte read means end of stream.
func copyChunks(src, dst *fdio.Handle, bufSize, vectored int) error {
	buf := make([]byte, bufSize)

	for {
		n, err := src.Read(buf)
		if err != nil {
			return err
		}

		if n == 0 {
			return nil
		}

		if err := writeFull(dst, buf[:n], vectored); err != nil {
			return err
		}
	}
}

// writeFull writes chunk completely, looping over short writes. When
// vectored > 1 the chunk is split across that many buffers and written
// with a single Writev per attempt.
func writeFull(dst *fdio.Handle, chunk []byte, vectored int) error {
	for len(chunk) > 0 {
		var (
			n   int
			err error
		)

		if vectored > 1 {
			n, err = dst.Writev(splitChunk(chunk, vectored))
		} else {
			n, err = dst.Write(chunk)
		}

		if err != nil {
			return err
		}

		if n == 0 {
			return fmt.Errorf("write to %s made no progress", dst.Name())
		}

		chunk = chunk[n:]
	}

	return nil
}

// copyAtomic reads src fully, then writes dst via temp file + rename so a
// crash never leaves a partial dst.
func copyAtomic(src *fdio.Handle, dstPath string, bufSize int) error {
	var data bytes.Buffer

	buf := make([]byte, bufSize)

	for {
		n, err := src.Read(buf)
		if err != nil {
			return err
		}

		if n == 0 {
			break
		}

		data.Write(buf[:n])
	}

	return atomic.WriteFile(dstPath, &data)
}

// splitChunk splits chunk into at most n non-empty, order-preserving
// buffers of near-equal size.
func splitChunk(chunk []byte, n int) [][]byte {
	if n > len(chunk) {
		n = len(chunk)
	}

	bufs := make([][]byte, 0, n)
	size := (len(chunk) + n - 1) / n

	for start := 0; start < len(chunk); start += size {
		end := start + size
		if end > len(chunk) {
			end = len(chunk)
		}

		bufs = append(bufs, chunk[start:end])
	}

	return bufs
}
