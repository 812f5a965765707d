package sbs

import (
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/drivers"

	sb "embedded-batteries-go/smartbattery"
)

// Battery is a Smart Battery on an SMBus. It is not safe for concurrent use;
// share it through async.Worker.
type Battery struct {
	i2c  drivers.I2C
	addr uint16
	cfg  Config
	log  logrus.FieldLogger

	mode      sb.CapacityMode
	modeKnown bool

	// Fixed buffers to avoid per-call heap allocations.
	w   [3]byte
	r   [2]byte
	blk [1 + sb.MaxStringLen]byte
}

var _ sb.SmartBattery = (*Battery)(nil)

// NewBattery constructs a Battery. A zero Address selects 0x0B.
func NewBattery(i2c drivers.I2C, cfg Config) *Battery {
	if cfg.Address == 0 {
		cfg.Address = sb.Address
	}
	return &Battery{
		i2c:  i2c,
		addr: cfg.Address,
		cfg:  cfg,
		log:  orDiscard(cfg.Logger).WithField("addr", cfg.Address),
	}
}

// ---------------- Transport ----------------

func (d *Battery) tx(op string, cmd byte, fn func() error) error {
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		be := d.explain(op, cmd, err)
		if !be.retryable() {
			return backoff.Permanent(be)
		}
		d.log.WithFields(logrus.Fields{"op": op, "cmd": cmd, "attempt": attempt}).
			WithError(be.Err).Debug("sbs: transaction failed, retrying")
		return be
	}, retryPolicy(d.cfg.Retries, d.cfg.RetryInterval, d.cfg.MaxRetryInterval))
}

// explain asks the battery why the transaction failed. The status read is
// not retried.
func (d *Battery) explain(op string, cmd byte, err error) *BatteryError {
	if be, ok := err.(*BatteryError); ok {
		return be
	}
	if d.cfg.QueryStatus && cmd != sb.CmdBatteryStatus {
		var w = [1]byte{sb.CmdBatteryStatus}
		var r [2]byte
		if d.i2c.Tx(d.addr, w[:], r[:]) == nil {
			st := sb.BatteryStatusFields(uint16(r[0]) | uint16(r[1])<<8)
			if c := st.ErrorCode(); c != sb.ErrorCodeOK {
				return &BatteryError{Op: op, Cmd: cmd, Err: &sb.StatusError{Code: c}}
			}
		}
	}
	return &BatteryError{Op: op, Cmd: cmd, Err: err}
}

func (d *Battery) readWord(cmd byte) (uint16, error) {
	var v uint16
	err := d.tx("read_word", cmd, func() error {
		d.w[0] = cmd
		if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:2]); err != nil {
			return err
		}
		v = uint16(d.r[0]) | uint16(d.r[1])<<8
		return nil
	})
	if err == nil {
		d.log.WithFields(logrus.Fields{"cmd": cmd, "value": v}).Trace("sbs: read")
	}
	return v, err
}

func (d *Battery) readS16(cmd byte) (int16, error) {
	u, err := d.readWord(cmd)
	return int16(u), err
}

func (d *Battery) writeWord(cmd byte, val uint16) error {
	err := d.tx("write_word", cmd, func() error {
		d.w[0] = cmd
		d.w[1] = byte(val)      // low
		d.w[2] = byte(val >> 8) // high
		return d.i2c.Tx(d.addr, d.w[:3], nil)
	})
	if err == nil {
		d.log.WithFields(logrus.Fields{"cmd": cmd, "value": val}).Trace("sbs: write")
	}
	return err
}

// readBlock copies a block string into dst and NUL-terminates it, truncating
// to len(dst)-1 bytes.
func (d *Battery) readBlock(cmd byte, dst []byte) error {
	if len(dst) == 0 {
		return &BatteryError{Op: "read_block", Cmd: cmd, Err: ErrShortBuffer}
	}
	var n int
	err := d.tx("read_block", cmd, func() error {
		d.w[0] = cmd
		if err := d.i2c.Tx(d.addr, d.w[:1], d.blk[:]); err != nil {
			return err
		}
		n = int(d.blk[0])
		if n > sb.MaxStringLen {
			return &BatteryError{Op: "read_block", Cmd: cmd, Err: ErrBlockLength}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if n > len(dst)-1 {
		n = len(dst) - 1
	}
	copy(dst, d.blk[1:1+n])
	dst[n] = 0
	return nil
}

// ---------------- Capacity mode ----------------

func (d *Battery) capacityMode() (sb.CapacityMode, error) {
	if d.modeKnown {
		return d.mode, nil
	}
	m, err := d.BatteryMode()
	return m.CapacityMode(), err
}

func (d *Battery) readCapacity(cmd byte) (sb.CapacityModeValue, error) {
	mode, err := d.capacityMode()
	if err != nil {
		return sb.CapacityModeValue{}, err
	}
	v, err := d.readWord(cmd)
	return sb.NewCapacityModeValue(mode, v), err
}

func (d *Battery) writeCapacity(cmd byte, v sb.CapacityModeValue) error {
	mode, err := d.capacityMode()
	if err != nil {
		return err
	}
	if v.Mode != mode {
		return &BatteryError{Op: "write_word", Cmd: cmd, Err: ErrModeMismatch}
	}
	return d.writeWord(cmd, v.Raw())
}

// ForgetCapacityMode drops the cached CAPACITY_MODE so the next capacity
// access re-reads BatteryMode. Use it after another host may have changed
// the mode.
func (d *Battery) ForgetCapacityMode() { d.modeKnown = false }

// UpdateBatteryMode sets and clears host-writable mode bits with a
// read-modify-write; read-only and reserved bits in set or clear are ignored.
func (d *Battery) UpdateBatteryMode(set, clear sb.BatteryModeFields) error {
	cur, err := d.BatteryMode()
	if err != nil {
		return err
	}
	next := cur.With(set & sb.BatteryModeWritable).Without(clear & sb.BatteryModeWritable)
	if next == cur {
		return nil
	}
	return d.SetBatteryMode(cur.Merge(next))
}

// ---------------- SmartBattery ----------------

func (d *Battery) RemainingCapacityAlarm() (sb.CapacityModeValue, error) {
	return d.readCapacity(sb.CmdRemainingCapacityAlarm)
}

func (d *Battery) SetRemainingCapacityAlarm(capacity sb.CapacityModeValue) error {
	return d.writeCapacity(sb.CmdRemainingCapacityAlarm, capacity)
}

func (d *Battery) RemainingTimeAlarm() (sb.Minutes, error) {
	return d.readWord(sb.CmdRemainingTimeAlarm)
}

func (d *Battery) SetRemainingTimeAlarm(time sb.Minutes) error {
	return d.writeWord(sb.CmdRemainingTimeAlarm, time)
}

func (d *Battery) BatteryMode() (sb.BatteryModeFields, error) {
	v, err := d.readWord(sb.CmdBatteryMode)
	if err != nil {
		return 0, err
	}
	m := sb.BatteryModeFields(v)
	d.mode, d.modeKnown = m.CapacityMode(), true
	return m, nil
}

func (d *Battery) SetBatteryMode(flags sb.BatteryModeFields) error {
	if err := d.writeWord(sb.CmdBatteryMode, flags.Bits()); err != nil {
		d.modeKnown = false
		return err
	}
	d.mode, d.modeKnown = flags.CapacityMode(), true
	return nil
}

func (d *Battery) AtRate() (sb.CapacityModeSignedValue, error) {
	mode, err := d.capacityMode()
	if err != nil {
		return sb.CapacityModeSignedValue{}, err
	}
	v, err := d.readS16(sb.CmdAtRate)
	return sb.NewCapacityModeSignedValue(mode, v), err
}

func (d *Battery) SetAtRate(rate sb.CapacityModeSignedValue) error {
	mode, err := d.capacityMode()
	if err != nil {
		return err
	}
	if rate.Mode != mode {
		return &BatteryError{Op: "write_word", Cmd: sb.CmdAtRate, Err: ErrModeMismatch}
	}
	return d.writeWord(sb.CmdAtRate, uint16(rate.Raw()))
}

func (d *Battery) AtRateTimeToFull() (sb.Minutes, error)  { return d.readWord(sb.CmdAtRateTimeToFull) }
func (d *Battery) AtRateTimeToEmpty() (sb.Minutes, error) { return d.readWord(sb.CmdAtRateTimeToEmpty) }

func (d *Battery) AtRateOK() (bool, error) {
	v, err := d.readWord(sb.CmdAtRateOK)
	return v != 0, err
}

func (d *Battery) Temperature() (sb.DeciKelvin, error) {
	v, err := d.readWord(sb.CmdTemperature)
	return sb.DeciKelvin(v), err
}

func (d *Battery) Voltage() (sb.MilliVolts, error)      { return d.readWord(sb.CmdVoltage) }
func (d *Battery) Current() (sb.MilliAmpsSigned, error) { return d.readS16(sb.CmdCurrent) }
func (d *Battery) AverageCurrent() (sb.MilliAmpsSigned, error) {
	return d.readS16(sb.CmdAverageCurrent)
}

func (d *Battery) readPercent(cmd byte) (sb.Percent, error) {
	v, err := d.readWord(cmd)
	if v > 0xFF {
		v = 0xFF
	}
	return sb.Percent(v), err
}

func (d *Battery) MaxError() (sb.Percent, error) { return d.readPercent(sb.CmdMaxError) }

func (d *Battery) RelativeStateOfCharge() (sb.Percent, error) {
	return d.readPercent(sb.CmdRelativeStateOfCharge)
}

func (d *Battery) AbsoluteStateOfCharge() (sb.Percent, error) {
	return d.readPercent(sb.CmdAbsoluteStateOfCharge)
}

func (d *Battery) RemainingCapacity() (sb.CapacityModeValue, error) {
	return d.readCapacity(sb.CmdRemainingCapacity)
}

func (d *Battery) FullChargeCapacity() (sb.CapacityModeValue, error) {
	return d.readCapacity(sb.CmdFullChargeCapacity)
}

func (d *Battery) RunTimeToEmpty() (sb.Minutes, error) { return d.readWord(sb.CmdRunTimeToEmpty) }
func (d *Battery) AverageTimeToEmpty() (sb.Minutes, error) {
	return d.readWord(sb.CmdAverageTimeToEmpty)
}
func (d *Battery) AverageTimeToFull() (sb.Minutes, error)  { return d.readWord(sb.CmdAverageTimeToFull) }
func (d *Battery) ChargingCurrent() (sb.MilliAmps, error)  { return d.readWord(sb.CmdChargingCurrent) }
func (d *Battery) ChargingVoltage() (sb.MilliVolts, error) { return d.readWord(sb.CmdChargingVoltage) }

func (d *Battery) BatteryStatus() (sb.BatteryStatusFields, error) {
	v, err := d.readWord(sb.CmdBatteryStatus)
	return sb.BatteryStatusFields(v), err
}

func (d *Battery) CycleCount() (sb.Cycles, error) { return d.readWord(sb.CmdCycleCount) }

func (d *Battery) DesignCapacity() (sb.CapacityModeValue, error) {
	return d.readCapacity(sb.CmdDesignCapacity)
}

func (d *Battery) DesignVoltage() (sb.MilliVolts, error) { return d.readWord(sb.CmdDesignVoltage) }

func (d *Battery) SpecificationInfo() (sb.SpecificationInfoFields, error) {
	v, err := d.readWord(sb.CmdSpecificationInfo)
	return sb.SpecificationInfoFields(v), err
}

func (d *Battery) ManufactureDate() (sb.ManufactureDate, error) {
	v, err := d.readWord(sb.CmdManufactureDate)
	return sb.ManufactureDate(v), err
}

func (d *Battery) SerialNumber() (uint16, error) { return d.readWord(sb.CmdSerialNumber) }

func (d *Battery) ManufacturerName(name []byte) error {
	return d.readBlock(sb.CmdManufacturerName, name)
}

func (d *Battery) DeviceName(name []byte) error { return d.readBlock(sb.CmdDeviceName, name) }

func (d *Battery) DeviceChemistry(chemistry []byte) error {
	return d.readBlock(sb.CmdDeviceChemistry, chemistry)
}
