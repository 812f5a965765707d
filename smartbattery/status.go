package smartbattery

import "embedded-batteries-go/internal/bitfield"

// ErrorCode is the 4-bit error field of BatteryStatus. The battery sets it
// after each transaction.
type ErrorCode uint8

const (
	ErrorCodeOK                 ErrorCode = 0
	ErrorCodeBusy               ErrorCode = 1
	ErrorCodeReservedCommand    ErrorCode = 2
	ErrorCodeUnsupportedCommand ErrorCode = 3
	ErrorCodeAccessDenied       ErrorCode = 4
	ErrorCodeOverUnderflow      ErrorCode = 5
	ErrorCodeBadSize            ErrorCode = 6
	ErrorCodeUnknownError       ErrorCode = 7
)

// ErrorCodeFromBits decodes the low nibble; anything past 6 is UnknownError.
func ErrorCodeFromBits(bits uint8) ErrorCode {
	c := ErrorCode(bits & 0x0F)
	if c > ErrorCodeBadSize {
		return ErrorCodeUnknownError
	}
	return c
}

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeOK:
		return "ok"
	case ErrorCodeBusy:
		return "busy"
	case ErrorCodeReservedCommand:
		return "reserved_command"
	case ErrorCodeUnsupportedCommand:
		return "unsupported_command"
	case ErrorCodeAccessDenied:
		return "access_denied"
	case ErrorCodeOverUnderflow:
		return "over_underflow"
	case ErrorCodeBadSize:
		return "bad_size"
	default:
		return "unknown_error"
	}
}

// BatteryStatusFields is the BatteryStatus() word (0x16). Every bit is set
// by the battery.
type BatteryStatusFields uint16

const (
	FullyDischarged         BatteryStatusFields = 1 << 4
	FullyCharged            BatteryStatusFields = 1 << 5
	Discharging             BatteryStatusFields = 1 << 6
	Initialized             BatteryStatusFields = 1 << 7
	RemainingTimeAlarm      BatteryStatusFields = 1 << 8
	RemainingCapacityAlarm  BatteryStatusFields = 1 << 9
	TerminateDischargeAlarm BatteryStatusFields = 1 << 11
	OverTempAlarm           BatteryStatusFields = 1 << 12
	TerminateChargeAlarm    BatteryStatusFields = 1 << 14
	OverChargedAlarm        BatteryStatusFields = 1 << 15

	// BatteryStatusAlarms covers the alarm bits (8-15).
	BatteryStatusAlarms = RemainingTimeAlarm | RemainingCapacityAlarm | TerminateDischargeAlarm |
		OverTempAlarm | TerminateChargeAlarm | OverChargedAlarm
)

const (
	errorCodeShift = 0
	errorCodeWidth = 4
)

func (s BatteryStatusFields) Has(flag BatteryStatusFields) bool { return s&flag == flag }

// Bits returns the register word.
func (s BatteryStatusFields) Bits() uint16 { return uint16(s) }

// ErrorCode decodes bits 0-3.
func (s BatteryStatusFields) ErrorCode() ErrorCode {
	return ErrorCodeFromBits(uint8(bitfield.Get(uint16(s), errorCodeShift, errorCodeWidth)))
}

// SetErrorCode writes bits 0-3.
func (s *BatteryStatusFields) SetErrorCode(c ErrorCode) {
	*s = BatteryStatusFields(bitfield.Set(uint16(*s), errorCodeShift, errorCodeWidth, uint16(c)))
}

// SetFlag sets or clears a status flag; used by simulators and tests.
func (s *BatteryStatusFields) SetFlag(flag BatteryStatusFields, on bool) {
	if on {
		*s |= flag
	} else {
		*s &^= flag
	}
}

var batteryStatusNames = [...]struct {
	bit  BatteryStatusFields
	name string
}{
	{FullyDischarged, "fully_discharged"},
	{FullyCharged, "fully_charged"},
	{Discharging, "discharging"},
	{Initialized, "initialized"},
	{RemainingTimeAlarm, "remaining_time_alarm"},
	{RemainingCapacityAlarm, "remaining_capacity_alarm"},
	{TerminateDischargeAlarm, "terminate_discharge_alarm"},
	{OverTempAlarm, "over_temp_alarm"},
	{TerminateChargeAlarm, "terminate_charge_alarm"},
	{OverChargedAlarm, "over_charged_alarm"},
}

// Names lists the set flags in bit order. The error code is not included.
func (s BatteryStatusFields) Names() []string {
	var out []string
	for _, e := range batteryStatusNames {
		if s.Has(e.bit) {
			out = append(out, e.name)
		}
	}
	return out
}
