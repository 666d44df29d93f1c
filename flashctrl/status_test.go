package flashctrl

import "testing"

func TestErrorCodeLatchAndClear(t *testing.T) {
	ctrl := New(newMockArray())

	// Accumulate two different fault categories.
	if err := ctrl.DataRead(0, make([]uint32, 1)); !IsAccessDenied(err) {
		t.Fatalf("setup read = %v, want AccessError", err)
	}
	if err := ctrl.DataRead(0x1, make([]uint32, 1)); !IsInvalidArgument(err) {
		t.Fatalf("setup read = %v, want RangeError", err)
	}

	want := ErrCodeAccessDenied | ErrCodeInvalidArgument
	if code := ctrl.ErrorCodeGet(); code != want {
		t.Errorf("first ErrorCodeGet() = 0x%X, want 0x%X", code, want)
	}
	if code := ctrl.ErrorCodeGet(); code != 0 {
		t.Errorf("second ErrorCodeGet() = 0x%X, want 0", code)
	}
}

func TestErrorCodeAccumulatesAcrossReads(t *testing.T) {
	ctrl := New(newMockArray())

	ctrl.DataRead(0, make([]uint32, 1)) // access denied
	ctrl.ErrorCodeGet()

	// A new fault after the read latches again.
	ctrl.DataRead(0x1, make([]uint32, 1)) // invalid argument
	if code := ctrl.ErrorCodeGet(); code != ErrCodeInvalidArgument {
		t.Errorf("ErrorCodeGet() = 0x%X, want ErrCodeInvalidArgument", code)
	}
}

func TestStatusErrorTracksAccumulator(t *testing.T) {
	ctrl := New(newMockArray())
	ctrl.Init()

	if ctrl.StatusGet()&StatusError != 0 {
		t.Error("error bit set with empty accumulator")
	}

	ctrl.DataRead(0, make([]uint32, 1)) // access denied
	if ctrl.StatusGet()&StatusError == 0 {
		t.Error("error bit clear with pending faults")
	}

	// StatusGet is non-destructive.
	if ctrl.StatusGet()&StatusError == 0 {
		t.Error("StatusGet must not clear the accumulator")
	}

	ctrl.ErrorCodeGet()
	if ctrl.StatusGet()&StatusError != 0 {
		t.Error("error bit set after the accumulator was drained")
	}
}

func TestStatusNeverBusyBetweenOperations(t *testing.T) {
	ctrl := New(newMockArray())
	ctrl.Init()
	ctrl.DataDefaultPermsSet(permsRWE)

	ctrl.DataWrite(0, []uint32{1, 2, 3})
	if ctrl.StatusGet()&StatusBusy != 0 {
		t.Error("busy bit set between synchronous operations")
	}
}
