package sim

import "embedded-batteries-go/charger"

// Charger is a simulated Level 2 Smart Battery Charger. Limits are
// quantised to CurrentStep/VoltageStep and clamped to the maxima; a zero
// limit inhibits charging.
type Charger struct {
	MaxCurrent  charger.MilliAmps
	MaxVoltage  charger.MilliVolts
	CurrentStep charger.MilliAmps
	VoltageStep charger.MilliVolts

	Status charger.StatusFields
	Mode   charger.ModeFields

	current charger.MilliAmps
	voltage charger.MilliVolts
}

func NewCharger() *Charger {
	return &Charger{
		MaxCurrent:  4096,
		MaxVoltage:  16800,
		CurrentStep: 64,
		VoltageStep: 16,
		Status:      charger.Level2 | charger.BatteryPresent | charger.ACPresent | charger.ChargeInhibited,
	}
}

// Limits returns the programmed current and voltage.
func (c *Charger) Limits() (charger.MilliAmps, charger.MilliVolts) { return c.current, c.voltage }

func quantise(v, step, hi uint16) uint16 {
	if v == charger.ConstantSource {
		return v
	}
	if v > hi {
		v = hi
	}
	if step > 1 {
		v -= v % step
	}
	return v
}

func (c *Charger) tx(w, r []byte) error {
	if len(w) == 0 {
		return ErrNack
	}
	cmd := w[0]
	if len(w) == 3 && len(r) == 0 {
		v := word(w)
		switch cmd {
		case charger.CmdChargingCurrent:
			c.current = quantise(v, c.CurrentStep, c.MaxCurrent)
		case charger.CmdChargingVoltage:
			c.voltage = quantise(v, c.VoltageStep, c.MaxVoltage)
		case charger.CmdChargerMode:
			c.Mode = charger.ModeFields(v)
		default:
			return ErrNack
		}
		c.update()
		return nil
	}
	if len(w) != 1 || len(r) != 2 {
		return ErrNack
	}
	switch cmd {
	case charger.CmdChargingCurrent:
		putWord(r, c.current)
	case charger.CmdChargingVoltage:
		putWord(r, c.voltage)
	case charger.CmdChargerStatus:
		putWord(r, uint16(c.Status))
	case charger.CmdChargerSpecInfo:
		putWord(r, 0x0001) // SBS charger spec 1.0
	default:
		return ErrNack
	}
	return nil
}

func (c *Charger) update() {
	inhibit := c.current == charger.ChargingDisabled || c.voltage == charger.ChargingDisabled ||
		c.Mode.Has(charger.InhibitCharge)
	if inhibit {
		c.Status |= charger.ChargeInhibited
	} else {
		c.Status &^= charger.ChargeInhibited
	}
}
