package async

import (
	"context"

	"embedded-batteries-go/charger"
	sb "embedded-batteries-go/smartbattery"
)

func convertErr(convert func(error) error, err error) error {
	if err == nil || convert == nil {
		return err
	}
	if c := convert(err); c != nil {
		return c
	}
	return err
}

// BatteryWrapper forwards to Inner and converts errors.
type BatteryWrapper struct {
	Inner   SmartBattery
	convert func(error) error
}

var _ SmartBattery = (*BatteryWrapper)(nil)

// WrapBattery is the context-aware counterpart of smartbattery.Wrap.
func WrapBattery(inner SmartBattery, convert func(error) error) *BatteryWrapper {
	return &BatteryWrapper{Inner: inner, convert: convert}
}

func (w *BatteryWrapper) RemainingCapacityAlarm(ctx context.Context) (sb.CapacityModeValue, error) {
	v, err := w.Inner.RemainingCapacityAlarm(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) SetRemainingCapacityAlarm(ctx context.Context, capacity sb.CapacityModeValue) error {
	return convertErr(w.convert, w.Inner.SetRemainingCapacityAlarm(ctx, capacity))
}

func (w *BatteryWrapper) RemainingTimeAlarm(ctx context.Context) (sb.Minutes, error) {
	v, err := w.Inner.RemainingTimeAlarm(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) SetRemainingTimeAlarm(ctx context.Context, time sb.Minutes) error {
	return convertErr(w.convert, w.Inner.SetRemainingTimeAlarm(ctx, time))
}

func (w *BatteryWrapper) BatteryMode(ctx context.Context) (sb.BatteryModeFields, error) {
	v, err := w.Inner.BatteryMode(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) SetBatteryMode(ctx context.Context, flags sb.BatteryModeFields) error {
	return convertErr(w.convert, w.Inner.SetBatteryMode(ctx, flags))
}

func (w *BatteryWrapper) AtRate(ctx context.Context) (sb.CapacityModeSignedValue, error) {
	v, err := w.Inner.AtRate(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) SetAtRate(ctx context.Context, rate sb.CapacityModeSignedValue) error {
	return convertErr(w.convert, w.Inner.SetAtRate(ctx, rate))
}

func (w *BatteryWrapper) AtRateTimeToFull(ctx context.Context) (sb.Minutes, error) {
	v, err := w.Inner.AtRateTimeToFull(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) AtRateTimeToEmpty(ctx context.Context) (sb.Minutes, error) {
	v, err := w.Inner.AtRateTimeToEmpty(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) AtRateOK(ctx context.Context) (bool, error) {
	v, err := w.Inner.AtRateOK(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) Temperature(ctx context.Context) (sb.DeciKelvin, error) {
	v, err := w.Inner.Temperature(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) Voltage(ctx context.Context) (sb.MilliVolts, error) {
	v, err := w.Inner.Voltage(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) Current(ctx context.Context) (sb.MilliAmpsSigned, error) {
	v, err := w.Inner.Current(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) AverageCurrent(ctx context.Context) (sb.MilliAmpsSigned, error) {
	v, err := w.Inner.AverageCurrent(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) MaxError(ctx context.Context) (sb.Percent, error) {
	v, err := w.Inner.MaxError(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) RelativeStateOfCharge(ctx context.Context) (sb.Percent, error) {
	v, err := w.Inner.RelativeStateOfCharge(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) AbsoluteStateOfCharge(ctx context.Context) (sb.Percent, error) {
	v, err := w.Inner.AbsoluteStateOfCharge(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) RemainingCapacity(ctx context.Context) (sb.CapacityModeValue, error) {
	v, err := w.Inner.RemainingCapacity(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) FullChargeCapacity(ctx context.Context) (sb.CapacityModeValue, error) {
	v, err := w.Inner.FullChargeCapacity(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) RunTimeToEmpty(ctx context.Context) (sb.Minutes, error) {
	v, err := w.Inner.RunTimeToEmpty(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) AverageTimeToEmpty(ctx context.Context) (sb.Minutes, error) {
	v, err := w.Inner.AverageTimeToEmpty(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) AverageTimeToFull(ctx context.Context) (sb.Minutes, error) {
	v, err := w.Inner.AverageTimeToFull(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) ChargingCurrent(ctx context.Context) (sb.MilliAmps, error) {
	v, err := w.Inner.ChargingCurrent(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) ChargingVoltage(ctx context.Context) (sb.MilliVolts, error) {
	v, err := w.Inner.ChargingVoltage(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) BatteryStatus(ctx context.Context) (sb.BatteryStatusFields, error) {
	v, err := w.Inner.BatteryStatus(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) CycleCount(ctx context.Context) (sb.Cycles, error) {
	v, err := w.Inner.CycleCount(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) DesignCapacity(ctx context.Context) (sb.CapacityModeValue, error) {
	v, err := w.Inner.DesignCapacity(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) DesignVoltage(ctx context.Context) (sb.MilliVolts, error) {
	v, err := w.Inner.DesignVoltage(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) SpecificationInfo(ctx context.Context) (sb.SpecificationInfoFields, error) {
	v, err := w.Inner.SpecificationInfo(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) ManufactureDate(ctx context.Context) (sb.ManufactureDate, error) {
	v, err := w.Inner.ManufactureDate(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) SerialNumber(ctx context.Context) (uint16, error) {
	v, err := w.Inner.SerialNumber(ctx)
	return v, convertErr(w.convert, err)
}

func (w *BatteryWrapper) ManufacturerName(ctx context.Context, name []byte) error {
	return convertErr(w.convert, w.Inner.ManufacturerName(ctx, name))
}

func (w *BatteryWrapper) DeviceName(ctx context.Context, name []byte) error {
	return convertErr(w.convert, w.Inner.DeviceName(ctx, name))
}

func (w *BatteryWrapper) DeviceChemistry(ctx context.Context, chemistry []byte) error {
	return convertErr(w.convert, w.Inner.DeviceChemistry(ctx, chemistry))
}

// ChargerWrapper forwards to Inner and converts errors.
type ChargerWrapper struct {
	Inner   Charger
	convert func(error) error
}

var _ Charger = (*ChargerWrapper)(nil)

func WrapCharger(inner Charger, convert func(error) error) *ChargerWrapper {
	return &ChargerWrapper{Inner: inner, convert: convert}
}

func (w *ChargerWrapper) ChargingCurrent(ctx context.Context, current charger.MilliAmps) (charger.MilliAmps, error) {
	v, err := w.Inner.ChargingCurrent(ctx, current)
	return v, convertErr(w.convert, err)
}

func (w *ChargerWrapper) ChargingVoltage(ctx context.Context, voltage charger.MilliVolts) (charger.MilliVolts, error) {
	v, err := w.Inner.ChargingVoltage(ctx, voltage)
	return v, convertErr(w.convert, err)
}
