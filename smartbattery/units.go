// Package smartbattery defines the Smart Battery System (SBS) contract: unit
// types, register encodings, the error taxonomy and the blocking
// SmartBattery interface a battery driver implements.
//
// Register values are raw-backed: each bitfield type is the 16-bit word as read
// from the device, so decoding never fails and every bit (reserved and
// read-only included) survives a decode/encode round trip.
package smartbattery

// MilliAmps is a current in mA (1 = 1 mA).
type MilliAmps = uint16

// MilliVolts is a voltage in mV (1 = 1 mV).
type MilliVolts = uint16

// MilliAmpsSigned is a current in mA; negative values mean discharge.
type MilliAmpsSigned = int16

// MilliVoltsSigned is a signed voltage in mV.
type MilliVoltsSigned = int16

// CentiWatts is a power in 10 mW units (or energy in 10 mWh).
type CentiWatts = uint16

// CentiWattsSigned is a signed power in 10 mW units.
type CentiWattsSigned = int16

// Minutes is a duration in minutes, 0..65534. MinutesNotApplicable marks
// "not being charged/discharged" on the time-to-x reads.
type Minutes = uint16

// MinutesNotApplicable is the 65535 sentinel used by the time estimates.
const MinutesNotApplicable Minutes = 0xFFFF

// Percent is 0..100 (AbsoluteStateOfCharge may exceed 100).
type Percent = uint8

// Cycles counts charge/discharge cycles, 0..65534.
type Cycles = uint16

// CyclesNotApplicable marks an unknown cycle count.
const CyclesNotApplicable Cycles = 0xFFFF

// DeciKelvin is a temperature in 0.1 K units.
type DeciKelvin uint16

// MilliCelsius converts to m°C.
func (t DeciKelvin) MilliCelsius() int32 {
	return int32(t)*100 - 273150
}

// DeciKelvinFromMilliCelsius converts m°C to 0.1 K, clamped to the register range.
func DeciKelvinFromMilliCelsius(mC int32) DeciKelvin {
	dk := (int64(mC) + 273150 + 50) / 100
	switch {
	case dk < 0:
		return 0
	case dk > 0xFFFF:
		return 0xFFFF
	}
	return DeciKelvin(dk)
}
