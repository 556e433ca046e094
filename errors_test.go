package fdio

import (
	"errors"
	"testing"
)

func Test_OpError_Message_Includes_Op_Path_And_Cause(t *testing.T) {
	err := &OpError{Op: "open", Path: "/tmp/x.bin", Err: errors.New("boom")}

	if got, want := err.Error(), "fdio: open /tmp/x.bin: boom"; got != want {
		t.Fatalf("msg=%q, want=%q", got, want)
	}
}

func Test_OpError_Message_Omits_Empty_Path(t *testing.T) {
	err := &OpError{Op: "read", Err: errors.New("boom")}

	if got, want := err.Error(), "fdio: read: boom"; got != want {
		t.Fatalf("msg=%q, want=%q", got, want)
	}
}

func Test_OpError_Unwraps_To_The_Native_Cause(t *testing.T) {
	cause := errors.New("native failure")
	err := &OpError{Op: "write", Path: "f", Err: cause}

	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause)=false, want=true")
	}
}

func Test_Closed_Handle_Errors_Satisfy_ErrClosed_Through_OpError(t *testing.T) {
	var h Handle

	_, err := h.Writev([][]byte{{1}})

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("err=%T, want *OpError", err)
	}

	if got, want := opErr.Op, "writev"; got != want {
		t.Fatalf("Op=%q, want=%q", got, want)
	}

	if !errors.Is(err, ErrClosed) {
		t.Fatalf("err=%v, want wrapped ErrClosed", err)
	}
}
