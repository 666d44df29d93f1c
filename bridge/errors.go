package bridge

import "fmt"

// StatusError represents a non-success status code returned by the bridge
// MCU.
type StatusError struct {
	// Operation is the command that failed
	Operation string

	// StatusCode is the status code from the bridge
	StatusCode byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Operation, getStatusName(e.StatusCode), e.StatusCode)
}

// IsStatusError returns true if the error is a StatusError.
func IsStatusError(err error) bool {
	_, ok := err.(*StatusError)
	return ok
}

// getStatusName returns a human-readable name for a status code.
func getStatusName(code byte) string {
	switch code {
	case StatusSuccess:
		return "success"
	case ErrCRC:
		return "CRC mismatch"
	case ErrOp:
		return "unrecognized opcode"
	case ErrLength:
		return "invalid payload length"
	case ErrAddr:
		return "address out of range"
	case ErrFault:
		return "array fault"
	case ErrBusy:
		return "bridge busy"
	default:
		return fmt.Sprintf("unknown status code 0x%02X", code)
	}
}
