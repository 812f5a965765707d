package charger

// Wrapper forwards to Inner and converts errors. See Wrap.
type Wrapper struct {
	Inner   Charger
	convert func(error) error
}

var _ Charger = (*Wrapper)(nil)

// Wrap builds a forwarding wrapper. A nil convert, or a convert that returns
// nil, leaves the inner error unchanged.
func Wrap(inner Charger, convert func(error) error) *Wrapper {
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

func (w *Wrapper) ChargingCurrent(current MilliAmps) (MilliAmps, error) {
	v, err := w.Inner.ChargingCurrent(current)
	return v, w.err(err)
}

func (w *Wrapper) ChargingVoltage(voltage MilliVolts) (MilliVolts, error) {
	v, err := w.Inner.ChargingVoltage(voltage)
	return v, w.err(err)
}
