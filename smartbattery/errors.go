package smartbattery

import "errors"

// ErrorKind is the coarse classification every Smart Battery error maps to.
// Drivers define richer error types and report one of these through Kind so
// generic code can react without knowing the transport.
type ErrorKind uint8

const (
	// ErrorKindOther is any failure not covered below. The original error may
	// carry more detail.
	ErrorKindOther ErrorKind = iota
	// ErrorKindComm is a failure of the underlying peripheral, e.g. an I2C
	// NACK or arbitration loss.
	ErrorKindComm
	// ErrorKindBatteryStatus is a failure the battery reported through the
	// BatteryStatus error code; see CodeOf.
	ErrorKindBatteryStatus
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindComm:
		return "comm_error"
	case ErrorKindBatteryStatus:
		return "battery_status"
	default:
		return "other"
	}
}

// Error implements error so an ErrorKind can be returned directly.
func (k ErrorKind) Error() string {
	switch k {
	case ErrorKindComm:
		return "error communicating with smart battery"
	case ErrorKindBatteryStatus:
		return "smart battery reported an error status"
	default:
		return "a different error occurred; the original error may contain more information"
	}
}

// Kind returns k.
func (k ErrorKind) Kind() ErrorKind { return k }

// Error is the capability every driver error type provides.
type Error interface {
	error
	Kind() ErrorKind
}

// StatusError carries the code a battery reported in BatteryStatus after a
// failed transaction.
type StatusError struct {
	Code ErrorCode
}

func (e *StatusError) Error() string {
	return "smart battery status: " + e.Code.String()
}

// Kind is always ErrorKindBatteryStatus.
func (e *StatusError) Kind() ErrorKind { return ErrorKindBatteryStatus }

// Is matches another *StatusError with the same code, so callers can write
// errors.Is(err, &StatusError{Code: ErrorCodeBusy}).
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	return ok && t.Code == e.Code
}

// KindOf classifies err. Errors that do not implement Error anywhere in their
// chain are ErrorKindOther. KindOf(nil) is ErrorKindOther as well; callers
// are expected to check for nil first.
func KindOf(err error) ErrorKind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return ErrorKindOther
}

// CodeOf returns the status code carried by err, if any.
func CodeOf(err error) (ErrorCode, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return ErrorCodeOK, false
}
