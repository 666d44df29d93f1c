package flashctrl

import (
	"errors"
	"fmt"
)

// AccessError indicates that an operation was denied because the owning
// region or info page does not grant the required capability. The array is
// never touched and caller buffers are left unmodified.
type AccessError struct {
	// Op is the operation that was denied
	Op string

	// Need is the capability that was missing ("read", "write", "erase",
	// "bank erase")
	Need string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s: access denied: %s capability not granted", e.Op, e.Need)
}

// RangeError indicates an address, offset or word count outside the
// declared bounds. Detected before any array access.
type RangeError struct {
	// Op is the operation that was rejected
	Op string

	// Addr is the offending byte address or offset
	Addr uint32

	// Words is the requested word count
	Words int

	// Limit is the exclusive upper bound of the valid byte range
	Limit uint32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: address 0x%08X with %d words is out of range (limit 0x%08X)",
		e.Op, e.Addr, e.Words, e.Limit)
}

// HardwareError wraps a fault reported by the flash array, such as an
// uncorrectable ECC error. The operation may have partially completed on
// the array side; the controller never retries.
type HardwareError struct {
	// Op is the operation during which the fault occurred
	Op string

	// Err is the underlying array fault
	Err error
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("%s: hardware fault: %v", e.Op, e.Err)
}

func (e *HardwareError) Unwrap() error {
	return e.Err
}

// VerifyError indicates that a post-erase read-back found a word still
// holding a non-erased value. Flash erasure is physically irreversible, so
// the fault is reported but the erase is not rolled back.
type VerifyError struct {
	// Addr is the byte address of the first mismatching word
	Addr uint32

	// Got is the value read back
	Got uint32
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("erase verify failed: word at 0x%08X reads 0x%08X, want 0x%08X",
		e.Addr, e.Got, uint32(ErasedWord))
}

// LockedError indicates a mutation attempt on permission or configuration
// state that has been locked for the remainder of the boot session.
type LockedError struct {
	// What names the locked state, e.g. "data region 3"
	What string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s is locked for the remainder of the boot session", e.What)
}

// IsAccessDenied reports whether err is an AccessError.
func IsAccessDenied(err error) bool {
	var e *AccessError
	return errors.As(err, &e)
}

// IsInvalidArgument reports whether err is a RangeError.
func IsInvalidArgument(err error) bool {
	var e *RangeError
	return errors.As(err, &e)
}

// IsHardwareFault reports whether err is a HardwareError.
func IsHardwareFault(err error) bool {
	var e *HardwareError
	return errors.As(err, &e)
}

// IsEraseVerifyFailed reports whether err is a VerifyError.
func IsEraseVerifyFailed(err error) bool {
	var e *VerifyError
	return errors.As(err, &e)
}

// IsAlreadyLocked reports whether err is a LockedError.
func IsAlreadyLocked(err error) bool {
	var e *LockedError
	return errors.As(err, &e)
}

// errorCodeBit maps an outcome to its category bit in the latched
// accumulator. Unrecognized errors are accumulated as hardware faults.
func errorCodeBit(err error) ErrorCode {
	switch {
	case err == nil:
		return 0
	case IsAccessDenied(err):
		return ErrCodeAccessDenied
	case IsInvalidArgument(err):
		return ErrCodeInvalidArgument
	case IsEraseVerifyFailed(err):
		return ErrCodeEraseVerifyFailed
	case IsAlreadyLocked(err):
		return ErrCodeAlreadyLocked
	default:
		return ErrCodeHardwareFault
	}
}
