// Package osbattery presents the host's battery, as reported by the
// operating system, as a read-only smart battery.
//
// The OS reports energy (mWh) and power (mW), so the battery always runs in
// the power-based capacity mode. Currents are derived from power at the
// configured design voltage. Registers the host does not report fail with
// ErrNotSupported; every write fails with ErrReadOnly.
package osbattery

import (
	"fmt"
	"io"

	"github.com/distatus/battery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	sb "embedded-batteries-go/smartbattery"
)

var (
	ErrReadOnly     = errors.New("osbattery: battery is read-only")
	ErrNotSupported = errors.New("osbattery: not reported by the host")
	ErrNotFound     = errors.New("osbattery: no such battery")
)

// Error is returned by every Battery method.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "osbattery: " + e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Kind reports host query failures as comm errors.
func (e *Error) Kind() sb.ErrorKind {
	if errors.Is(e.Err, ErrReadOnly) || errors.Is(e.Err, ErrNotSupported) {
		return sb.ErrorKindOther
	}
	return sb.ErrorKindComm
}

// Source lists the host batteries.
type Source func() ([]*battery.Battery, error)

type Config struct {
	// Index selects the battery among those the host reports.
	Index int
	// DesignVoltage converts power to current. 0 leaves the current
	// registers unsupported.
	DesignVoltage sb.MilliVolts
	// Source defaults to battery.GetAll.
	Source Source
	Logger logrus.FieldLogger
}

func DefaultConfig() Config {
	return Config{DesignVoltage: 11100}
}

func (c Config) Validate() error {
	if c.Index < 0 {
		return errors.Errorf("osbattery: negative battery index %d", c.Index)
	}
	return nil
}

// Battery implements smartbattery.SmartBattery. Each call queries the host.
type Battery struct {
	index int
	dv    sb.MilliVolts
	get   Source
	log   logrus.FieldLogger
}

var _ sb.SmartBattery = (*Battery)(nil)

func New(cfg Config) *Battery {
	b := &Battery{index: cfg.Index, dv: cfg.DesignVoltage, get: cfg.Source, log: orDiscard(cfg.Logger)}
	if b.get == nil {
		b.get = battery.GetAll
	}
	return b
}

func orDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	q := logrus.New()
	q.SetOutput(io.Discard)
	return q
}

// sample fetches the selected battery. Partial results are accepted as long
// as the battery itself is present.
func (b *Battery) sample(op string) (*battery.Battery, error) {
	all, err := b.get()
	if b.index < len(all) && all[b.index] != nil {
		if err != nil {
			b.log.WithError(err).WithField("op", op).Debug("partial battery data")
		}
		return all[b.index], nil
	}
	if err != nil {
		return nil, &Error{Op: op, Err: errors.Wrap(err, "query host batteries")}
	}
	return nil, &Error{Op: op, Err: errors.Wrapf(ErrNotFound, "index %d of %d", b.index, len(all))}
}

func unsupported(op string) error { return &Error{Op: op, Err: ErrNotSupported} }
func readOnly(op string) error    { return &Error{Op: op, Err: ErrReadOnly} }

func clampU16(v float64) uint16 {
	switch {
	case v <= 0:
		return 0
	case v >= 0xFFFF:
		return 0xFFFF
	}
	return uint16(v + 0.5)
}

func percent(num, den float64) sb.Percent {
	if den <= 0 {
		return 0
	}
	p := num * 100 / den
	if p > 255 {
		return 255
	}
	return sb.Percent(clampU16(p))
}

// signedRate is the charge rate in mW, negative while discharging.
func signedRate(bat *battery.Battery) float64 {
	if bat.State == battery.Discharging {
		return -bat.ChargeRate
	}
	return bat.ChargeRate
}

func (b *Battery) capacity(op string, field func(*battery.Battery) float64) (sb.CapacityModeValue, error) {
	bat, err := b.sample(op)
	if err != nil {
		return sb.CapacityModeValue{}, err
	}
	return sb.CentiWattUnsigned(clampU16(field(bat) / 10)), nil
}

func (b *Battery) RemainingCapacityAlarm() (sb.CapacityModeValue, error) {
	return sb.CentiWattUnsigned(0), nil
}

func (b *Battery) SetRemainingCapacityAlarm(sb.CapacityModeValue) error {
	return readOnly("set_remaining_capacity_alarm")
}

func (b *Battery) RemainingTimeAlarm() (sb.Minutes, error) { return 0, nil }
func (b *Battery) SetRemainingTimeAlarm(sb.Minutes) error {
	return readOnly("set_remaining_time_alarm")
}

func (b *Battery) BatteryMode() (sb.BatteryModeFields, error) {
	return sb.CapacityModeFlag, nil
}

func (b *Battery) SetBatteryMode(sb.BatteryModeFields) error { return readOnly("set_battery_mode") }

func (b *Battery) AtRate() (sb.CapacityModeSignedValue, error) { return sb.CentiWattSigned(0), nil }
func (b *Battery) SetAtRate(sb.CapacityModeSignedValue) error  { return readOnly("set_at_rate") }

func (b *Battery) AtRateTimeToFull() (sb.Minutes, error)  { return sb.MinutesNotApplicable, nil }
func (b *Battery) AtRateTimeToEmpty() (sb.Minutes, error) { return sb.MinutesNotApplicable, nil }
func (b *Battery) AtRateOK() (bool, error)                { return true, nil }

func (b *Battery) Temperature() (sb.DeciKelvin, error) { return 0, unsupported("temperature") }
func (b *Battery) Voltage() (sb.MilliVolts, error)     { return 0, unsupported("voltage") }

// Current is the charge rate divided by the design voltage.
func (b *Battery) Current() (sb.MilliAmpsSigned, error) {
	if b.dv == 0 {
		return 0, unsupported("current")
	}
	bat, err := b.sample("current")
	if err != nil {
		return 0, err
	}
	mA := signedRate(bat) * 1000 / float64(b.dv)
	switch {
	case mA > 0x7FFF:
		mA = 0x7FFF
	case mA < -0x8000:
		mA = -0x8000
	}
	return sb.MilliAmpsSigned(mA), nil
}

// AverageCurrent is the instantaneous current; the host keeps no average.
func (b *Battery) AverageCurrent() (sb.MilliAmpsSigned, error) { return b.Current() }

func (b *Battery) MaxError() (sb.Percent, error) { return 0, unsupported("max_error") }

func (b *Battery) RelativeStateOfCharge() (sb.Percent, error) {
	bat, err := b.sample("relative_state_of_charge")
	if err != nil {
		return 0, err
	}
	return percent(bat.Current, bat.Full), nil
}

func (b *Battery) AbsoluteStateOfCharge() (sb.Percent, error) {
	bat, err := b.sample("absolute_state_of_charge")
	if err != nil {
		return 0, err
	}
	return percent(bat.Current, bat.Design), nil
}

func (b *Battery) RemainingCapacity() (sb.CapacityModeValue, error) {
	return b.capacity("remaining_capacity", func(bat *battery.Battery) float64 { return bat.Current })
}

func (b *Battery) FullChargeCapacity() (sb.CapacityModeValue, error) {
	return b.capacity("full_charge_capacity", func(bat *battery.Battery) float64 { return bat.Full })
}

func (b *Battery) DesignCapacity() (sb.CapacityModeValue, error) {
	return b.capacity("design_capacity", func(bat *battery.Battery) float64 { return bat.Design })
}

func minutes(energy, rate float64) sb.Minutes {
	if rate <= 0 {
		return sb.MinutesNotApplicable
	}
	m := clampU16(energy * 60 / rate)
	if m == sb.MinutesNotApplicable {
		m--
	}
	return m
}

func (b *Battery) RunTimeToEmpty() (sb.Minutes, error) {
	bat, err := b.sample("run_time_to_empty")
	if err != nil {
		return 0, err
	}
	if bat.State != battery.Discharging {
		return sb.MinutesNotApplicable, nil
	}
	return minutes(bat.Current, bat.ChargeRate), nil
}

func (b *Battery) AverageTimeToEmpty() (sb.Minutes, error) { return b.RunTimeToEmpty() }

func (b *Battery) AverageTimeToFull() (sb.Minutes, error) {
	bat, err := b.sample("average_time_to_full")
	if err != nil {
		return 0, err
	}
	if bat.State != battery.Charging {
		return sb.MinutesNotApplicable, nil
	}
	return minutes(bat.Full-bat.Current, bat.ChargeRate), nil
}

func (b *Battery) ChargingCurrent() (sb.MilliAmps, error) {
	return 0, unsupported("charging_current")
}

func (b *Battery) ChargingVoltage() (sb.MilliVolts, error) {
	return 0, unsupported("charging_voltage")
}

func (b *Battery) BatteryStatus() (sb.BatteryStatusFields, error) {
	bat, err := b.sample("battery_status")
	if err != nil {
		return 0, err
	}
	s := sb.Initialized
	switch bat.State {
	case battery.Full:
		s.SetFlag(sb.FullyCharged, true)
	case battery.Discharging:
		s.SetFlag(sb.Discharging, true)
	case battery.Empty:
		s.SetFlag(sb.FullyDischarged, true)
		s.SetFlag(sb.Discharging, true)
	}
	return s, nil
}

func (b *Battery) CycleCount() (sb.Cycles, error) { return 0, unsupported("cycle_count") }

func (b *Battery) DesignVoltage() (sb.MilliVolts, error) {
	if b.dv == 0 {
		return 0, unsupported("design_voltage")
	}
	return b.dv, nil
}

// SpecificationInfo reports SBS 1.1 with no scaling.
func (b *Battery) SpecificationInfo() (sb.SpecificationInfoFields, error) {
	return sb.NewSpecificationInfo(sb.RevisionV1, sb.Version1_1, 0, 0), nil
}

func (b *Battery) ManufactureDate() (sb.ManufactureDate, error) {
	return 0, unsupported("manufacture_date")
}

func (b *Battery) SerialNumber() (uint16, error) { return 0, unsupported("serial_number") }

func fill(op string, dst []byte, s string) error {
	if len(dst) == 0 {
		return &Error{Op: op, Err: errors.New("empty destination buffer")}
	}
	n := copy(dst[:len(dst)-1], s)
	dst[n] = 0
	return nil
}

func (b *Battery) ManufacturerName(name []byte) error {
	return fill("manufacturer_name", name, "HOST")
}

func (b *Battery) DeviceName(name []byte) error {
	if _, err := b.sample("device_name"); err != nil {
		return err
	}
	return fill("device_name", name, fmt.Sprintf("BAT%d", b.index))
}

func (b *Battery) DeviceChemistry([]byte) error { return unsupported("device_chemistry") }
