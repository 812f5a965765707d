package smartbattery

// Wrapper forwards every SmartBattery call to Inner, converting returned
// errors with the conversion given to Wrap. Arguments and results pass through
// untouched.
//
// Embed a *Wrapper in a type that owns a battery to make that type a
// SmartBattery with its own error type.
type Wrapper struct {
	Inner   SmartBattery
	convert func(error) error
}

var _ SmartBattery = (*Wrapper)(nil)

// Wrap builds a forwarding wrapper. A nil convert forwards errors unchanged.
// If convert returns nil for a non-nil error the original error is kept, so
// a failure can never be turned into a success.
func Wrap(inner SmartBattery, convert func(error) error) *Wrapper {
	return &Wrapper{Inner: inner, convert: convert}
}

func (w *Wrapper) err(err error) error {
	if err == nil || w.convert == nil {
		return err
	}
	if c := w.convert(err); c != nil {
		return c
	}
	return err
}

func (w *Wrapper) RemainingCapacityAlarm() (CapacityModeValue, error) {
	v, err := w.Inner.RemainingCapacityAlarm()
	return v, w.err(err)
}

func (w *Wrapper) SetRemainingCapacityAlarm(capacity CapacityModeValue) error {
	return w.err(w.Inner.SetRemainingCapacityAlarm(capacity))
}

func (w *Wrapper) RemainingTimeAlarm() (Minutes, error) {
	v, err := w.Inner.RemainingTimeAlarm()
	return v, w.err(err)
}

func (w *Wrapper) SetRemainingTimeAlarm(time Minutes) error {
	return w.err(w.Inner.SetRemainingTimeAlarm(time))
}

func (w *Wrapper) BatteryMode() (BatteryModeFields, error) {
	v, err := w.Inner.BatteryMode()
	return v, w.err(err)
}

func (w *Wrapper) SetBatteryMode(flags BatteryModeFields) error {
	return w.err(w.Inner.SetBatteryMode(flags))
}

func (w *Wrapper) AtRate() (CapacityModeSignedValue, error) {
	v, err := w.Inner.AtRate()
	return v, w.err(err)
}

func (w *Wrapper) SetAtRate(rate CapacityModeSignedValue) error {
	return w.err(w.Inner.SetAtRate(rate))
}

func (w *Wrapper) AtRateTimeToFull() (Minutes, error) {
	v, err := w.Inner.AtRateTimeToFull()
	return v, w.err(err)
}

func (w *Wrapper) AtRateTimeToEmpty() (Minutes, error) {
	v, err := w.Inner.AtRateTimeToEmpty()
	return v, w.err(err)
}

func (w *Wrapper) AtRateOK() (bool, error) {
	v, err := w.Inner.AtRateOK()
	return v, w.err(err)
}

func (w *Wrapper) Temperature() (DeciKelvin, error) {
	v, err := w.Inner.Temperature()
	return v, w.err(err)
}

func (w *Wrapper) Voltage() (MilliVolts, error) {
	v, err := w.Inner.Voltage()
	return v, w.err(err)
}

func (w *Wrapper) Current() (MilliAmpsSigned, error) {
	v, err := w.Inner.Current()
	return v, w.err(err)
}

func (w *Wrapper) AverageCurrent() (MilliAmpsSigned, error) {
	v, err := w.Inner.AverageCurrent()
	return v, w.err(err)
}

func (w *Wrapper) MaxError() (Percent, error) {
	v, err := w.Inner.MaxError()
	return v, w.err(err)
}

func (w *Wrapper) RelativeStateOfCharge() (Percent, error) {
	v, err := w.Inner.RelativeStateOfCharge()
	return v, w.err(err)
}

func (w *Wrapper) AbsoluteStateOfCharge() (Percent, error) {
	v, err := w.Inner.AbsoluteStateOfCharge()
	return v, w.err(err)
}

func (w *Wrapper) RemainingCapacity() (CapacityModeValue, error) {
	v, err := w.Inner.RemainingCapacity()
	return v, w.err(err)
}

func (w *Wrapper) FullChargeCapacity() (CapacityModeValue, error) {
	v, err := w.Inner.FullChargeCapacity()
	return v, w.err(err)
}

func (w *Wrapper) RunTimeToEmpty() (Minutes, error) {
	v, err := w.Inner.RunTimeToEmpty()
	return v, w.err(err)
}

func (w *Wrapper) AverageTimeToEmpty() (Minutes, error) {
	v, err := w.Inner.AverageTimeToEmpty()
	return v, w.err(err)
}

func (w *Wrapper) AverageTimeToFull() (Minutes, error) {
	v, err := w.Inner.AverageTimeToFull()
	return v, w.err(err)
}

func (w *Wrapper) ChargingCurrent() (MilliAmps, error) {
	v, err := w.Inner.ChargingCurrent()
	return v, w.err(err)
}

func (w *Wrapper) ChargingVoltage() (MilliVolts, error) {
	v, err := w.Inner.ChargingVoltage()
	return v, w.err(err)
}

func (w *Wrapper) BatteryStatus() (BatteryStatusFields, error) {
	v, err := w.Inner.BatteryStatus()
	return v, w.err(err)
}

func (w *Wrapper) CycleCount() (Cycles, error) {
	v, err := w.Inner.CycleCount()
	return v, w.err(err)
}

func (w *Wrapper) DesignCapacity() (CapacityModeValue, error) {
	v, err := w.Inner.DesignCapacity()
	return v, w.err(err)
}

func (w *Wrapper) DesignVoltage() (MilliVolts, error) {
	v, err := w.Inner.DesignVoltage()
	return v, w.err(err)
}

func (w *Wrapper) SpecificationInfo() (SpecificationInfoFields, error) {
	v, err := w.Inner.SpecificationInfo()
	return v, w.err(err)
}

func (w *Wrapper) ManufactureDate() (ManufactureDate, error) {
	v, err := w.Inner.ManufactureDate()
	return v, w.err(err)
}

func (w *Wrapper) SerialNumber() (uint16, error) {
	v, err := w.Inner.SerialNumber()
	return v, w.err(err)
}

func (w *Wrapper) ManufacturerName(name []byte) error {
	return w.err(w.Inner.ManufacturerName(name))
}

func (w *Wrapper) DeviceName(name []byte) error {
	return w.err(w.Inner.DeviceName(name))
}

func (w *Wrapper) DeviceChemistry(chemistry []byte) error {
	return w.err(w.Inner.DeviceChemistry(chemistry))
}
