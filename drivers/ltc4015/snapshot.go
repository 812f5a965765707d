package ltc4015

// Snapshot collects the charger telemetry in one pass.
// Zero values remain where individual reads fail.
type Snapshot struct {
	Pack_mV    int32
	Vin_mV     int32
	IBat_mA    int32
	Iin_mA     int32
	IinLim_mA  int32
	Die_mC     int32
	VCharge_mV int32
	ICharge_mA int32
	State      ChargerState
	Charge     ChargeStatus
	System     SystemStatus
	Suspended  bool
}

func (d *Device) Snapshot() Snapshot {
	var s Snapshot
	if v, e := d.BatteryMilliVolts(); e == nil {
		s.Pack_mV = v
	}
	if v, e := d.InputMilliVolts(); e == nil {
		s.Vin_mV = v
	}
	if v, e := d.BatteryMilliAmps(); e == nil {
		s.IBat_mA = v
	}
	if v, e := d.InputMilliAmps(); e == nil {
		s.Iin_mA = v
	}
	if v, e := d.InputCurrentLimit(); e == nil {
		s.IinLim_mA = v
	}
	if v, e := d.DieMilliCelsius(); e == nil {
		s.Die_mC = v
	}
	if mV, mA, e := d.ChargeTargets(); e == nil {
		s.VCharge_mV, s.ICharge_mA = mV, mA
	}
	if v, e := d.ChargerState(); e == nil {
		s.State = v
	}
	if v, e := d.ChargeStatus(); e == nil {
		s.Charge = v
	}
	if v, e := d.SystemStatus(); e == nil {
		s.System = v
	}
	if v, e := d.Suspended(); e == nil {
		s.Suspended = v
	}
	return s
}
