// Package async is the context-aware form of the battery and charger
// contracts. Every call takes a context and may block until the device
// answers; results and errors are identical to the blocking form.
//
// BatteryDevice and ChargerDevice adapt a blocking device. Built with Direct
// they run the call on the caller's goroutine; built from a Worker they queue
// the call to the goroutine that owns the bus.
package async

import (
	"context"

	"embedded-batteries-go/charger"
	sb "embedded-batteries-go/smartbattery"
)

// SmartBattery mirrors smartbattery.SmartBattery with a leading context.
type SmartBattery interface {
	RemainingCapacityAlarm(ctx context.Context) (sb.CapacityModeValue, error)
	SetRemainingCapacityAlarm(ctx context.Context, capacity sb.CapacityModeValue) error
	RemainingTimeAlarm(ctx context.Context) (sb.Minutes, error)
	SetRemainingTimeAlarm(ctx context.Context, time sb.Minutes) error
	BatteryMode(ctx context.Context) (sb.BatteryModeFields, error)
	SetBatteryMode(ctx context.Context, flags sb.BatteryModeFields) error
	AtRate(ctx context.Context) (sb.CapacityModeSignedValue, error)
	SetAtRate(ctx context.Context, rate sb.CapacityModeSignedValue) error
	AtRateTimeToFull(ctx context.Context) (sb.Minutes, error)
	AtRateTimeToEmpty(ctx context.Context) (sb.Minutes, error)
	AtRateOK(ctx context.Context) (bool, error)
	Temperature(ctx context.Context) (sb.DeciKelvin, error)
	Voltage(ctx context.Context) (sb.MilliVolts, error)
	Current(ctx context.Context) (sb.MilliAmpsSigned, error)
	AverageCurrent(ctx context.Context) (sb.MilliAmpsSigned, error)
	MaxError(ctx context.Context) (sb.Percent, error)
	RelativeStateOfCharge(ctx context.Context) (sb.Percent, error)
	AbsoluteStateOfCharge(ctx context.Context) (sb.Percent, error)
	RemainingCapacity(ctx context.Context) (sb.CapacityModeValue, error)
	FullChargeCapacity(ctx context.Context) (sb.CapacityModeValue, error)
	RunTimeToEmpty(ctx context.Context) (sb.Minutes, error)
	AverageTimeToEmpty(ctx context.Context) (sb.Minutes, error)
	AverageTimeToFull(ctx context.Context) (sb.Minutes, error)
	ChargingCurrent(ctx context.Context) (sb.MilliAmps, error)
	ChargingVoltage(ctx context.Context) (sb.MilliVolts, error)
	BatteryStatus(ctx context.Context) (sb.BatteryStatusFields, error)
	CycleCount(ctx context.Context) (sb.Cycles, error)
	DesignCapacity(ctx context.Context) (sb.CapacityModeValue, error)
	DesignVoltage(ctx context.Context) (sb.MilliVolts, error)
	SpecificationInfo(ctx context.Context) (sb.SpecificationInfoFields, error)
	ManufactureDate(ctx context.Context) (sb.ManufactureDate, error)
	SerialNumber(ctx context.Context) (uint16, error)
	ManufacturerName(ctx context.Context, name []byte) error
	DeviceName(ctx context.Context, name []byte) error
	DeviceChemistry(ctx context.Context, chemistry []byte) error
}

// Charger mirrors charger.Charger with a leading context.
type Charger interface {
	ChargingCurrent(ctx context.Context, current charger.MilliAmps) (charger.MilliAmps, error)
	ChargingVoltage(ctx context.Context, voltage charger.MilliVolts) (charger.MilliVolts, error)
}

// executor runs fn, or returns an error without running it.
type executor interface {
	Do(ctx context.Context, fn func()) error
}

type direct struct{}

func (direct) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

func call[T any](ctx context.Context, ex executor, fn func() (T, error)) (T, error) {
	var (
		v   T
		err error
	)
	if xerr := ex.Do(ctx, func() { v, err = fn() }); xerr != nil {
		return v, xerr
	}
	return v, err
}

func run(ctx context.Context, ex executor, fn func() error) error {
	var err error
	if xerr := ex.Do(ctx, func() { err = fn() }); xerr != nil {
		return xerr
	}
	return err
}
