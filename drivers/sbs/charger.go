package sbs

import (
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/drivers"

	"embedded-batteries-go/charger"
)

// Charger is a Smart Battery Charger on an SMBus.
type Charger struct {
	i2c  drivers.I2C
	addr uint16
	cfg  ChargerConfig
	log  logrus.FieldLogger

	w [3]byte
	r [2]byte
}

var _ charger.Charger = (*Charger)(nil)

// NewCharger constructs a Charger. A zero Address selects 0x09.
func NewCharger(i2c drivers.I2C, cfg ChargerConfig) *Charger {
	if cfg.Address == 0 {
		cfg.Address = charger.Address
	}
	return &Charger{
		i2c:  i2c,
		addr: cfg.Address,
		cfg:  cfg,
		log:  orDiscard(cfg.Logger).WithField("addr", cfg.Address),
	}
}

func (c *Charger) tx(op string, cmd byte, fn func() error) error {
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		if err := fn(); err != nil {
			c.log.WithFields(logrus.Fields{"op": op, "cmd": cmd, "attempt": attempt}).
				WithError(err).Debug("sbs charger: transaction failed")
			return &ChargerError{Op: op, Cmd: cmd, Err: err}
		}
		return nil
	}, retryPolicy(c.cfg.Retries, c.cfg.RetryInterval, c.cfg.MaxRetryInterval))
}

func (c *Charger) readWord(cmd byte) (uint16, error) {
	var v uint16
	err := c.tx("read_word", cmd, func() error {
		c.w[0] = cmd
		if err := c.i2c.Tx(c.addr, c.w[:1], c.r[:2]); err != nil {
			return err
		}
		v = uint16(c.r[0]) | uint16(c.r[1])<<8
		return nil
	})
	return v, err
}

func (c *Charger) writeWord(cmd byte, val uint16) error {
	return c.tx("write_word", cmd, func() error {
		c.w[0] = cmd
		c.w[1] = byte(val)
		c.w[2] = byte(val >> 8)
		return c.i2c.Tx(c.addr, c.w[:3], nil)
	})
}

// setAndAck writes a limit and returns what the charger holds afterwards,
// or the requested value when read-back is disabled.
func (c *Charger) setAndAck(cmd byte, v uint16) (uint16, error) {
	if err := c.writeWord(cmd, v); err != nil {
		return 0, err
	}
	if !c.cfg.ReadBack {
		return v, nil
	}
	ack, err := c.readWord(cmd)
	if err != nil {
		return 0, err
	}
	if ack != v {
		c.log.WithFields(logrus.Fields{"cmd": cmd, "requested": v, "acknowledged": ack}).
			Debug("sbs charger: limit adjusted by charger")
	}
	return ack, nil
}

// ChargingCurrent programs the charge current limit. ChargingDisabled stops
// charging; ConstantSource requests constant-voltage operation.
func (c *Charger) ChargingCurrent(current charger.MilliAmps) (charger.MilliAmps, error) {
	return c.setAndAck(charger.CmdChargingCurrent, current)
}

// ChargingVoltage programs the charge voltage limit. ChargingDisabled stops
// charging; ConstantSource requests constant-current operation.
func (c *Charger) ChargingVoltage(voltage charger.MilliVolts) (charger.MilliVolts, error) {
	return c.setAndAck(charger.CmdChargingVoltage, voltage)
}

func (c *Charger) Status() (charger.StatusFields, error) {
	v, err := c.readWord(charger.CmdChargerStatus)
	return charger.StatusFields(v), err
}

func (c *Charger) SetMode(m charger.ModeFields) error {
	return c.writeWord(charger.CmdChargerMode, uint16(m))
}

// SpecInfo returns the raw ChargerSpecInfo word.
func (c *Charger) SpecInfo() (uint16, error) { return c.readWord(charger.CmdChargerSpecInfo) }
