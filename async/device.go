package async

import (
	"context"

	"embedded-batteries-go/charger"
	sb "embedded-batteries-go/smartbattery"
)

// BatteryDevice is the context-aware front end of a blocking battery.
type BatteryDevice struct {
	ex  executor
	dev sb.SmartBattery
}

var _ SmartBattery = (*BatteryDevice)(nil)

// Direct runs each call of dev on the calling goroutine after checking ctx.
// The caller is responsible for serializing access.
func Direct(dev sb.SmartBattery) *BatteryDevice {
	return &BatteryDevice{ex: direct{}, dev: dev}
}

func (b *BatteryDevice) RemainingCapacityAlarm(ctx context.Context) (sb.CapacityModeValue, error) {
	return call(ctx, b.ex, b.dev.RemainingCapacityAlarm)
}

func (b *BatteryDevice) SetRemainingCapacityAlarm(ctx context.Context, capacity sb.CapacityModeValue) error {
	return run(ctx, b.ex, func() error { return b.dev.SetRemainingCapacityAlarm(capacity) })
}

func (b *BatteryDevice) RemainingTimeAlarm(ctx context.Context) (sb.Minutes, error) {
	return call(ctx, b.ex, b.dev.RemainingTimeAlarm)
}

func (b *BatteryDevice) SetRemainingTimeAlarm(ctx context.Context, time sb.Minutes) error {
	return run(ctx, b.ex, func() error { return b.dev.SetRemainingTimeAlarm(time) })
}

func (b *BatteryDevice) BatteryMode(ctx context.Context) (sb.BatteryModeFields, error) {
	return call(ctx, b.ex, b.dev.BatteryMode)
}

func (b *BatteryDevice) SetBatteryMode(ctx context.Context, flags sb.BatteryModeFields) error {
	return run(ctx, b.ex, func() error { return b.dev.SetBatteryMode(flags) })
}

func (b *BatteryDevice) AtRate(ctx context.Context) (sb.CapacityModeSignedValue, error) {
	return call(ctx, b.ex, b.dev.AtRate)
}

func (b *BatteryDevice) SetAtRate(ctx context.Context, rate sb.CapacityModeSignedValue) error {
	return run(ctx, b.ex, func() error { return b.dev.SetAtRate(rate) })
}

func (b *BatteryDevice) AtRateTimeToFull(ctx context.Context) (sb.Minutes, error) {
	return call(ctx, b.ex, b.dev.AtRateTimeToFull)
}

func (b *BatteryDevice) AtRateTimeToEmpty(ctx context.Context) (sb.Minutes, error) {
	return call(ctx, b.ex, b.dev.AtRateTimeToEmpty)
}

func (b *BatteryDevice) AtRateOK(ctx context.Context) (bool, error) {
	return call(ctx, b.ex, b.dev.AtRateOK)
}

func (b *BatteryDevice) Temperature(ctx context.Context) (sb.DeciKelvin, error) {
	return call(ctx, b.ex, b.dev.Temperature)
}

func (b *BatteryDevice) Voltage(ctx context.Context) (sb.MilliVolts, error) {
	return call(ctx, b.ex, b.dev.Voltage)
}

func (b *BatteryDevice) Current(ctx context.Context) (sb.MilliAmpsSigned, error) {
	return call(ctx, b.ex, b.dev.Current)
}

func (b *BatteryDevice) AverageCurrent(ctx context.Context) (sb.MilliAmpsSigned, error) {
	return call(ctx, b.ex, b.dev.AverageCurrent)
}

func (b *BatteryDevice) MaxError(ctx context.Context) (sb.Percent, error) {
	return call(ctx, b.ex, b.dev.MaxError)
}

func (b *BatteryDevice) RelativeStateOfCharge(ctx context.Context) (sb.Percent, error) {
	return call(ctx, b.ex, b.dev.RelativeStateOfCharge)
}

func (b *BatteryDevice) AbsoluteStateOfCharge(ctx context.Context) (sb.Percent, error) {
	return call(ctx, b.ex, b.dev.AbsoluteStateOfCharge)
}

func (b *BatteryDevice) RemainingCapacity(ctx context.Context) (sb.CapacityModeValue, error) {
	return call(ctx, b.ex, b.dev.RemainingCapacity)
}

func (b *BatteryDevice) FullChargeCapacity(ctx context.Context) (sb.CapacityModeValue, error) {
	return call(ctx, b.ex, b.dev.FullChargeCapacity)
}

func (b *BatteryDevice) RunTimeToEmpty(ctx context.Context) (sb.Minutes, error) {
	return call(ctx, b.ex, b.dev.RunTimeToEmpty)
}

func (b *BatteryDevice) AverageTimeToEmpty(ctx context.Context) (sb.Minutes, error) {
	return call(ctx, b.ex, b.dev.AverageTimeToEmpty)
}

func (b *BatteryDevice) AverageTimeToFull(ctx context.Context) (sb.Minutes, error) {
	return call(ctx, b.ex, b.dev.AverageTimeToFull)
}

func (b *BatteryDevice) ChargingCurrent(ctx context.Context) (sb.MilliAmps, error) {
	return call(ctx, b.ex, b.dev.ChargingCurrent)
}

func (b *BatteryDevice) ChargingVoltage(ctx context.Context) (sb.MilliVolts, error) {
	return call(ctx, b.ex, b.dev.ChargingVoltage)
}

func (b *BatteryDevice) BatteryStatus(ctx context.Context) (sb.BatteryStatusFields, error) {
	return call(ctx, b.ex, b.dev.BatteryStatus)
}

func (b *BatteryDevice) CycleCount(ctx context.Context) (sb.Cycles, error) {
	return call(ctx, b.ex, b.dev.CycleCount)
}

func (b *BatteryDevice) DesignCapacity(ctx context.Context) (sb.CapacityModeValue, error) {
	return call(ctx, b.ex, b.dev.DesignCapacity)
}

func (b *BatteryDevice) DesignVoltage(ctx context.Context) (sb.MilliVolts, error) {
	return call(ctx, b.ex, b.dev.DesignVoltage)
}

func (b *BatteryDevice) SpecificationInfo(ctx context.Context) (sb.SpecificationInfoFields, error) {
	return call(ctx, b.ex, b.dev.SpecificationInfo)
}

func (b *BatteryDevice) ManufactureDate(ctx context.Context) (sb.ManufactureDate, error) {
	return call(ctx, b.ex, b.dev.ManufactureDate)
}

func (b *BatteryDevice) SerialNumber(ctx context.Context) (uint16, error) {
	return call(ctx, b.ex, b.dev.SerialNumber)
}

func (b *BatteryDevice) ManufacturerName(ctx context.Context, name []byte) error {
	return run(ctx, b.ex, func() error { return b.dev.ManufacturerName(name) })
}

func (b *BatteryDevice) DeviceName(ctx context.Context, name []byte) error {
	return run(ctx, b.ex, func() error { return b.dev.DeviceName(name) })
}

func (b *BatteryDevice) DeviceChemistry(ctx context.Context, chemistry []byte) error {
	return run(ctx, b.ex, func() error { return b.dev.DeviceChemistry(chemistry) })
}

// ChargerDevice is the context-aware front end of a blocking charger.
type ChargerDevice struct {
	ex  executor
	dev charger.Charger
}

var _ Charger = (*ChargerDevice)(nil)

// DirectCharger runs each call of dev on the calling goroutine.
func DirectCharger(dev charger.Charger) *ChargerDevice {
	return &ChargerDevice{ex: direct{}, dev: dev}
}

func (c *ChargerDevice) ChargingCurrent(ctx context.Context, current charger.MilliAmps) (charger.MilliAmps, error) {
	return call(ctx, c.ex, func() (charger.MilliAmps, error) { return c.dev.ChargingCurrent(current) })
}

func (c *ChargerDevice) ChargingVoltage(ctx context.Context, voltage charger.MilliVolts) (charger.MilliVolts, error) {
	return call(ctx, c.ex, func() (charger.MilliVolts, error) { return c.dev.ChargingVoltage(voltage) })
}
