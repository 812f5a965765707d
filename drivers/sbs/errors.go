package sbs

import (
	"errors"
	"fmt"

	"embedded-batteries-go/charger"
	sb "embedded-batteries-go/smartbattery"
)

var (
	// ErrBlockLength is returned when a block read reports more bytes than
	// SMBus allows or than were transferred.
	ErrBlockLength = errors.New("sbs: block length out of range")
	// ErrShortBuffer is returned when a string destination cannot hold even
	// the terminating NUL.
	ErrShortBuffer = errors.New("sbs: destination buffer too small")
	// ErrModeMismatch is returned when a capacity value written to the battery
	// is tagged with a different capacity mode than the battery is in.
	ErrModeMismatch = errors.New("sbs: capacity mode mismatch")
)

// BatteryError is returned by every Battery method. Err is the bus error, a
// *smartbattery.StatusError when the battery explained a NACK, or one of the
// package sentinels.
type BatteryError struct {
	Op  string
	Cmd byte
	Err error
}

func (e *BatteryError) Error() string {
	return fmt.Sprintf("sbs: %s 0x%02X: %v", e.Op, e.Cmd, e.Err)
}

func (e *BatteryError) Unwrap() error { return e.Err }

func (e *BatteryError) Kind() sb.ErrorKind {
	var se *sb.StatusError
	switch {
	case errors.As(e.Err, &se):
		return sb.ErrorKindBatteryStatus
	case errors.Is(e.Err, ErrBlockLength), errors.Is(e.Err, ErrShortBuffer), errors.Is(e.Err, ErrModeMismatch):
		return sb.ErrorKindOther
	}
	return sb.ErrorKindComm
}

func (e *BatteryError) retryable() bool {
	switch e.Kind() {
	case sb.ErrorKindComm:
		return true
	case sb.ErrorKindBatteryStatus:
		code, _ := sb.CodeOf(e.Err)
		return code == sb.ErrorCodeBusy
	}
	return false
}

// ChargerError is returned by every Charger method.
type ChargerError struct {
	Op  string
	Cmd byte
	Err error
}

func (e *ChargerError) Error() string {
	return fmt.Sprintf("sbs charger: %s 0x%02X: %v", e.Op, e.Cmd, e.Err)
}

func (e *ChargerError) Unwrap() error { return e.Err }

// Kind is always ErrorKindComm; the charger reports no status codes.
func (e *ChargerError) Kind() charger.ErrorKind { return charger.ErrorKindComm }
