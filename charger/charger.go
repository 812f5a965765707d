// Package charger defines the Smart Battery Charger contract: the two
// set-and-acknowledge limits a host programs into a charger and the error
// taxonomy charger drivers report through.
package charger

import "embedded-batteries-go/smartbattery"

// Units shared with the battery side.
type (
	MilliAmps  = smartbattery.MilliAmps
	MilliVolts = smartbattery.MilliVolts
)

const (
	// ChargingDisabled written as either limit stops charging.
	ChargingDisabled = 0
	// ConstantSource asks the charger to act as a constant source outside
	// the other limit's regulated range: a constant-voltage source when used
	// as the current limit and a constant-current source when used as the
	// voltage limit.
	ConstantSource = 0xFFFF
)

// SMBus command codes of a Smart Battery Charger.
const (
	CmdChargerSpecInfo byte = 0x11
	CmdChargerMode     byte = 0x12
	CmdChargerStatus   byte = 0x13
	CmdChargingCurrent byte = 0x14
	CmdChargingVoltage byte = 0x15
	CmdAlarmWarning    byte = 0x16
)

// Address is the 7-bit SMBus address of a Smart Battery Charger.
const Address = 0x09

// Charger is the blocking charger surface. Both calls program a limit and
// return the value the charger acknowledged, which may be quantised or
// clamped to what the hardware supports.
type Charger interface {
	// ChargingCurrent sets the maximum charging current in mA.
	ChargingCurrent(current MilliAmps) (MilliAmps, error)
	// ChargingVoltage sets the maximum charging voltage in mV.
	ChargingVoltage(voltage MilliVolts) (MilliVolts, error)
}
