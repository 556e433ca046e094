package fdio

import "fmt"

// Mode is the platform-independent set of semantic open flags.
//
// Flags combine with bitwise OR. ModeReadWrite is a flag of its own, not
// ModeRead|ModeWrite: the platform access-mask derivation treats the two
// differently, and combining ModeRead and ModeWrite directly is rejected
// with [ErrModeConflict].
//
// [ParseMode] is the usual way to obtain a Mode. Hand-assembled masks are
// accepted by [Open] as long as they stay within the combinations the
// platform mapper defines (see [Open] for the rules).
type Mode uint32

// Semantic open flags.
const (
	ModeRead      Mode = 1 << iota // open for reading only
	ModeWrite                      // open for writing only
	ModeReadWrite                  // open for reading and writing
	ModeAppend                     // all writes go to end of file
	ModeCreate                     // create the file if it does not exist
	ModeTrunc                      // truncate to zero length on open
	ModeBinary                     // no newline translation (no-op everywhere Go runs)
)

// accessMask isolates the flags that select the native access rights.
const accessMask = ModeRead | ModeWrite | ModeReadWrite | ModeAppend

// modeTable is the complete symbolic grammar. Evaluated once; ParseMode is
// a pure lookup.
var modeTable = map[string]Mode{
	"r":  ModeRead,
	"r+": ModeReadWrite,
	"w":  ModeWrite | ModeCreate | ModeTrunc,
	"w+": ModeReadWrite | ModeCreate | ModeTrunc,
	"a":  ModeWrite | ModeCreate | ModeAppend,
	"a+": ModeReadWrite | ModeCreate | ModeAppend,
}

// ParseMode translates a symbolic open-mode token to a [Mode].
//
// The grammar is fixed: one of r, r+, w, w+, a, a+, optionally suffixed
// with b. The mapping is:
//
//	r    ModeRead
//	r+   ModeReadWrite
//	w    ModeWrite | ModeCreate | ModeTrunc
//	w+   ModeReadWrite | ModeCreate | ModeTrunc
//	a    ModeWrite | ModeCreate | ModeAppend
//	a+   ModeReadWrite | ModeCreate | ModeAppend
//
// A trailing b additionally sets [ModeBinary]. Every other token is
// rejected with an error satisfying errors.Is(err, [ErrInvalidMode]).
//
// Mode tokens are normally literals; prefer [MustParseMode] for those.
func ParseMode(token string) (Mode, error) {
	base := token

	var binary Mode

	if n := len(token); n > 0 && token[n-1] == 'b' {
		base = token[:n-1]
		binary = ModeBinary
	}

	m, ok := modeTable[base]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, token)
	}

	return m | binary, nil
}

// MustParseMode is like [ParseMode] but panics on an invalid token.
//
// Use for literal tokens, where a bad token is a bug at the call site:
//
//	h, err := fdio.Open(path, fdio.MustParseMode("r+b"))
func MustParseMode(token string) Mode {
	m, err := ParseMode(token)
	if err != nil {
		panic(err)
	}

	return m
}

// HasRead reports whether m requests read-only access.
func (m Mode) HasRead() bool {
	return m&ModeRead != 0
}

// HasWrite reports whether m requests write-only access.
func (m Mode) HasWrite() bool {
	return m&ModeWrite != 0
}

// HasReadWrite reports whether m requests combined read-write access.
func (m Mode) HasReadWrite() bool {
	return m&ModeReadWrite != 0
}

// HasAppend reports whether writes go to end of file.
func (m Mode) HasAppend() bool {
	return m&ModeAppend != 0
}

// HasCreate reports whether the file is created if absent.
func (m Mode) HasCreate() bool {
	return m&ModeCreate != 0
}

// HasTrunc reports whether the file is truncated on open.
func (m Mode) HasTrunc() bool {
	return m&ModeTrunc != 0
}

// HasBinary reports whether newline translation is suppressed.
func (m Mode) HasBinary() bool {
	return m&ModeBinary != 0
}

// Writable reports whether m grants any form of write access.
func (m Mode) Writable() bool {
	return m&(ModeWrite|ModeReadWrite) != 0
}

// String renders the symbolic token for modes [ParseMode] can produce and
// a flag dump for everything else.
func (m Mode) String() string {
	binary := ""
	base := m

	if m.HasBinary() {
		binary = "b"
		base &^= ModeBinary
	}

	for token, tm := range modeTable {
		if tm == base {
			return token + binary
		}
	}

	return fmt.Sprintf("Mode(%#x)", uint32(m))
}
