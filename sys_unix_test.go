//go:build unix

package fdio

import (
	"errors"
	"testing"

	"golang.org/x/sys/unix"
)

func Test_OpenFlags_Derives_Native_Flags_For_Defined_Combinations(t *testing.T) {
	cases := []struct {
		name string
		mode Mode
		want int
	}{
		{"read", ModeRead, unix.O_RDONLY},
		{"write", ModeWrite, unix.O_WRONLY},
		{"read_write", ModeReadWrite, unix.O_RDWR},
		{"write_append", ModeWrite | ModeAppend, unix.O_WRONLY | unix.O_APPEND},
		{"read_write_append", ModeReadWrite | ModeAppend, unix.O_RDWR | unix.O_APPEND},
		{"create_or_open", ModeWrite | ModeCreate, unix.O_WRONLY | unix.O_CREAT},
		{"truncate_existing_only", ModeWrite | ModeTrunc, unix.O_WRONLY | unix.O_TRUNC},
		{"always_create", ModeWrite | ModeCreate | ModeTrunc, unix.O_WRONLY | unix.O_CREAT | unix.O_TRUNC},
		{"binary_is_noop", ModeRead | ModeBinary, unix.O_RDONLY},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := openFlags(tc.mode)
			if err != nil {
				t.Fatalf("openFlags(%v): %v", tc.mode, err)
			}

			if want := tc.want | unix.O_CLOEXEC; got != want {
				t.Fatalf("flags=%#x, want=%#x", got, want)
			}
		})
	}
}

func Test_OpenFlags_Rejects_Combinations_Outside_The_Policy(t *testing.T) {
	cases := []struct {
		name string
		mode Mode
	}{
		{"zero_mode", Mode(0)},
		{"read_and_write_without_read_write", ModeRead | ModeWrite},
		{"read_and_read_write", ModeRead | ModeReadWrite},
		{"append_without_write_access", ModeAppend},
		{"read_append", ModeRead | ModeAppend},
		{"create_without_access", ModeCreate},
		{"all_access_flags", ModeRead | ModeWrite | ModeReadWrite},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := openFlags(tc.mode)
			if got, want := err, ErrModeConflict; !errors.Is(got, want) {
				t.Fatalf("err=%v, want=%v", got, want)
			}
		})
	}
}

func Test_Grammar_Modes_All_Derive_Native_Flags(t *testing.T) {
	// Every mode the translator can emit must be total under the mapper.
	for _, token := range []string{"r", "r+", "w", "w+", "a", "a+", "rb", "r+b", "wb", "w+b", "ab", "a+b"} {
		if _, err := openFlags(MustParseMode(token)); err != nil {
			t.Fatalf("token %q: %v", token, err)
		}
	}
}
