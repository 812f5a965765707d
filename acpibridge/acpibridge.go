// Package acpibridge answers the ACPI battery control methods (_BST, _BIX,
// _PSR, _PIF) from a smart battery, the way an embedded controller does for
// its host.
//
// Capacities follow the battery's capacity mode: current mode maps to
// PowerUnitMilliAmps, power mode to PowerUnitMilliWatts. Measured values are
// scaled by the SpecificationInfo multipliers before they are reported and
// saturate just below acpi.Unknown.
package acpibridge

import (
	"fmt"

	"github.com/pkg/errors"

	"embedded-batteries-go/acpi"
	sb "embedded-batteries-go/smartbattery"
)

// Config tunes the values SBS has no register for.
type Config struct {
	// WarningPercent and LowPercent of the design capacity are reported as
	// the design warning and low levels when the battery has no remaining
	// capacity alarm set.
	WarningPercent uint32
	LowPercent     uint32
	Swap           acpi.BatterySwapCapability
}

func DefaultConfig() Config {
	return Config{WarningPercent: 10, LowPercent: 5, Swap: acpi.ColdSwappable}
}

func (c Config) Validate() error {
	if c.LowPercent > c.WarningPercent || c.WarningPercent > 100 {
		return errors.Errorf("acpibridge: need low (%d) <= warning (%d) <= 100", c.LowPercent, c.WarningPercent)
	}
	return nil
}

// Bridge is not safe for concurrent use; it shares the battery's own
// single-caller rule.
type Bridge struct {
	bat sb.SmartBattery
	cfg Config
	str [sb.MaxStringLen + 1]byte
}

func New(bat sb.SmartBattery, cfg Config) *Bridge {
	return &Bridge{bat: bat, cfg: cfg}
}

// units are the multipliers from raw register values to ACPI units.
type units struct {
	mode     sb.CapacityMode
	voltage  uint32 // mV per LSB
	current  uint32 // mA per LSB
	capacity uint32 // mAh or mWh per LSB
}

func (b *Bridge) units() (units, error) {
	mode, err := b.bat.BatteryMode()
	if err != nil {
		return units{}, errors.Wrap(err, "acpibridge: battery mode")
	}
	spec, err := b.bat.SpecificationInfo()
	if err != nil {
		return units{}, errors.Wrap(err, "acpibridge: specification info")
	}
	u := units{
		mode:     mode.CapacityMode(),
		voltage:  spec.VoltageMultiplier(),
		current:  spec.CurrentMultiplier(),
		capacity: spec.CurrentMultiplier(),
	}
	if u.mode == sb.PowerBased {
		u.capacity = 10 * spec.CurrentMultiplier() * spec.VoltageMultiplier()
	}
	return u, nil
}

func (u units) powerUnit() acpi.PowerUnit {
	if u.mode == sb.PowerBased {
		return acpi.PowerUnitMilliWatts
	}
	return acpi.PowerUnitMilliAmps
}

func (u units) cap(v sb.CapacityModeValue) uint32 { return saturate(u.wide(v)) }

func (u units) wide(v sb.CapacityModeValue) uint64 { return uint64(v.Raw()) * uint64(u.capacity) }

// saturate keeps a value below the Unknown sentinel.
func saturate(v uint64) uint32 {
	if v >= uint64(acpi.Unknown) {
		return acpi.Unknown - 1
	}
	return uint32(v)
}

// rate converts a current to the power unit; power mode needs the present
// voltage in mV.
func (u units) rate(mA sb.MilliAmpsSigned, mV uint32) uint32 {
	abs := int64(mA)
	if abs < 0 {
		abs = -abs
	}
	r := uint64(abs) * uint64(u.current)
	if u.mode == sb.PowerBased {
		if mV == acpi.Unknown {
			return acpi.Unknown
		}
		r = r * uint64(mV) / 1000
	}
	return saturate(r)
}

// Bst reads the present battery status.
func (b *Bridge) Bst() (acpi.BstReturn, error) {
	u, err := b.units()
	if err != nil {
		return acpi.BstReturn{}, err
	}
	status, err := b.bat.BatteryStatus()
	if err != nil {
		return acpi.BstReturn{}, errors.Wrap(err, "acpibridge: battery status")
	}
	remaining, err := b.bat.RemainingCapacity()
	if err != nil {
		return acpi.BstReturn{}, errors.Wrap(err, "acpibridge: remaining capacity")
	}

	bst := acpi.BstReturn{
		RemainingCapacity: u.cap(remaining),
		PresentVoltage:    acpi.Unknown,
		PresentRate:       acpi.Unknown,
	}
	if mV, err := b.bat.Voltage(); err == nil {
		bst.PresentVoltage = uint32(mV) * u.voltage
	}
	current, err := b.bat.Current()
	if err == nil {
		bst.PresentRate = u.rate(current, bst.PresentVoltage)
	}
	bst.State = batteryState(status, current, err == nil)
	return bst, nil
}

func batteryState(status sb.BatteryStatusFields, current sb.MilliAmpsSigned, haveCurrent bool) acpi.BatteryState {
	var s acpi.BatteryState
	switch {
	case status.Has(sb.Discharging):
		s |= acpi.BatteryDischarging
	case haveCurrent && current > 0:
		s |= acpi.BatteryCharging
	}
	if status.Has(sb.FullyDischarged) || status.Has(sb.TerminateDischargeAlarm) {
		s |= acpi.BatteryCritical
	}
	if status.Has(sb.TerminateChargeAlarm) && !status.Has(sb.FullyCharged) {
		s |= acpi.BatteryChargeLimiting
	}
	return s
}

// Psr reports the power source online while the battery is not discharging.
func (b *Bridge) Psr() (acpi.PsrReturn, error) {
	status, err := b.bat.BatteryStatus()
	if err != nil {
		return acpi.PsrReturn{}, errors.Wrap(err, "acpibridge: battery status")
	}
	if status.Has(sb.Discharging) {
		return acpi.PsrReturn{PowerSource: acpi.Offline}, nil
	}
	return acpi.PsrReturn{PowerSource: acpi.Online}, nil
}

// text reads one of the battery strings as an ACPI string, NUL included.
// A failed read yields the empty string.
func (b *Bridge) text(read func([]byte) error) []byte {
	if err := read(b.str[:]); err != nil {
		return []byte{0}
	}
	return append([]byte(sb.CString(b.str[:])), 0)
}

func (b *Bridge) serial() []byte {
	sn, err := b.bat.SerialNumber()
	if err != nil {
		return []byte{0}
	}
	return append([]byte(fmt.Sprintf("%04X", sn)), 0)
}

// Bix reads the static battery information.
func (b *Bridge) Bix() (acpi.BixReturn, error) {
	u, err := b.units()
	if err != nil {
		return acpi.BixReturn{}, err
	}
	design, err := b.bat.DesignCapacity()
	if err != nil {
		return acpi.BixReturn{}, errors.Wrap(err, "acpibridge: design capacity")
	}
	full, err := b.bat.FullChargeCapacity()
	if err != nil {
		return acpi.BixReturn{}, errors.Wrap(err, "acpibridge: full charge capacity")
	}

	bix := acpi.BixReturn{
		Revision:                acpi.BixRevision,
		PowerUnit:               u.powerUnit(),
		DesignCapacity:          u.cap(design),
		LastFullChargeCapacity:  u.cap(full),
		Technology:              acpi.Secondary,
		DesignVoltage:           acpi.Unknown,
		DesignCapacityOfWarning: saturate(u.wide(design) * uint64(b.cfg.WarningPercent) / 100),
		DesignCapacityOfLow:     saturate(u.wide(design) * uint64(b.cfg.LowPercent) / 100),
		CycleCount:              acpi.Unknown,
		MeasurementAccuracy:     acpi.Unknown,
		MaxSamplingTime:         acpi.Unknown,
		MinSamplingTime:         acpi.Unknown,
		MaxAveragingInterval:    60_000, // AverageCurrent is a one-minute average
		MinAveragingInterval:    acpi.Unknown,
		CapacityGranularity1:    u.capacity,
		CapacityGranularity2:    u.capacity,
		ModelNumber:             b.text(b.bat.DeviceName),
		SerialNumber:            b.serial(),
		BatteryType:             b.text(b.bat.DeviceChemistry),
		OEMInfo:                 b.text(b.bat.ManufacturerName),
		SwappingCapability:      b.cfg.Swap,
	}
	if mV, err := b.bat.DesignVoltage(); err == nil {
		bix.DesignVoltage = uint32(mV) * u.voltage
	}
	if alarm, err := b.bat.RemainingCapacityAlarm(); err == nil && alarm.Raw() != 0 {
		bix.DesignCapacityOfWarning = u.cap(alarm)
	}
	if n, err := b.bat.CycleCount(); err == nil && n != sb.CyclesNotApplicable {
		bix.CycleCount = uint32(n)
	}
	if e, err := b.bat.MaxError(); err == nil && e <= 100 {
		// thousandths of a percent
		bix.MeasurementAccuracy = (100 - uint32(e)) * 1000
	}
	return bix, nil
}

// BixBytes serializes Bix into dst.
func (b *Bridge) BixBytes(dst []byte) (int, error) {
	bix, err := b.Bix()
	if err != nil {
		return 0, err
	}
	return bix.ToBytes(dst, len(bix.ModelNumber), len(bix.SerialNumber), len(bix.BatteryType), len(bix.OEMInfo))
}

// Pif describes the supply the battery asks for: the requested charging
// voltage and current give the maximum output power. ChargingCurrent and
// ChargingVoltage are never scaled by SpecificationInfo.
func (b *Bridge) Pif() (acpi.Pif, error) {
	pif := acpi.Pif{
		MaxOutputPower: acpi.Unknown,
		MaxInputPower:  acpi.Unknown,
		ModelNumber:    b.text(b.bat.DeviceName),
		SerialNumber:   b.serial(),
		OEMInfo:        b.text(b.bat.ManufacturerName),
	}
	mA, errI := b.bat.ChargingCurrent()
	if sb.KindOf(errI) == sb.ErrorKindComm {
		return acpi.Pif{}, errors.Wrap(errI, "acpibridge: charging current")
	}
	mV, errV := b.bat.ChargingVoltage()
	if errI == nil && errV == nil && mA != 0xFFFF && mV != 0xFFFF {
		pif.MaxOutputPower = uint32(uint64(mA) * uint64(mV) / 1000)
	}
	return pif, nil
}

// PifBytes serializes Pif into dst.
func (b *Bridge) PifBytes(dst []byte) (int, error) {
	pif, err := b.Pif()
	if err != nil {
		return 0, err
	}
	return pif.ToBytes(dst, len(pif.ModelNumber), len(pif.SerialNumber), len(pif.OEMInfo))
}
