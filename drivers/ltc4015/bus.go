package ltc4015

import (
	"errors"
	"fmt"

	"embedded-batteries-go/charger"
	"embedded-batteries-go/internal/mathx"
)

// Error wraps every failure with the register involved.
type Error struct {
	Op  string
	Reg byte
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("ltc4015: %s 0x%02X: %v", e.Op, e.Reg, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Kind reports configuration problems as ErrorKindOther and everything else
// as a bus failure.
func (e *Error) Kind() charger.ErrorKind {
	if errors.Is(e.Err, ErrRSNSBUnset) || errors.Is(e.Err, ErrRSNSIUnset) ||
		errors.Is(e.Err, ErrCellsUnknown) || errors.Is(e.Err, ErrChemistryUnknown) {
		return charger.ErrorKindOther
	}
	return charger.ErrorKindComm
}

// I2C 16-bit word operations (little-endian: LOW then HIGH).

func (d *Device) readWord(reg byte) (uint16, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:2]); err != nil {
		return 0, &Error{Op: "read", Reg: reg, Err: err}
	}
	return uint16(d.r[0]) | uint16(d.r[1])<<8, nil
}

func (d *Device) readS16(reg byte) (int16, error) {
	u, err := d.readWord(reg)
	return int16(u), err
}

func (d *Device) writeWord(reg byte, val uint16) error {
	d.w[0] = reg
	d.w[1] = byte(val)      // low
	d.w[2] = byte(val >> 8) // high
	if err := d.i2c.Tx(d.addr, d.w[:3], nil); err != nil {
		return &Error{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

// modifyBitmaskRegister is a read-modify-write of a control register.
func (d *Device) modifyBitmaskRegister(reg byte, set, clear uint16) error {
	current, err := d.readWord(reg)
	if err != nil {
		return err
	}
	next := (current | set) &^ clear
	if next == current {
		return nil
	}
	return d.writeWord(reg, next)
}

// linearScale maps a register code to a physical value:
//
//	value = offset + code·num/den
//
// in consistent integer units.
type linearScale struct {
	offset, num, den, maxCode int64
}

// code rounds value to the nearest code in range.
func (s linearScale) code(value int64) int64 {
	n := (value - s.offset) * s.den
	if n < 0 {
		return 0
	}
	return mathx.Clamp(mathx.RoundDiv(n, s.num), 0, s.maxCode)
}

func (s linearScale) value(code int64) int64 {
	return s.offset + code*s.num/s.den
}
