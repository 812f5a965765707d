package charger

import "errors"

// ErrorKind classifies charger failures.
type ErrorKind uint8

const (
	// ErrorKindOther covers everything not listed below.
	ErrorKindOther ErrorKind = iota
	// ErrorKindComm is a failure of the underlying peripheral.
	ErrorKindComm
)

func (k ErrorKind) String() string {
	if k == ErrorKindComm {
		return "comm_error"
	}
	return "other"
}

func (k ErrorKind) Error() string {
	if k == ErrorKindComm {
		return "error communicating with charger"
	}
	return "a different error occurred; the original error may contain more information"
}

func (k ErrorKind) Kind() ErrorKind { return k }

// Error is implemented by every charger driver error.
type Error interface {
	error
	Kind() ErrorKind
}

// KindOf classifies err, falling back to ErrorKindOther.
func KindOf(err error) ErrorKind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return ErrorKindOther
}
