package ltc4015

// BatteryMilliVolts returns the pack voltage. VBAT is per cell: 192.264 µV
// per LSB for lithium chemistries and 128.176 µV for lead-acid.
func (d *Device) BatteryMilliVolts() (int32, error) {
	raw, err := d.readWord(regVBAT)
	if err != nil {
		return 0, err
	}
	nV := int64(192_264)
	if d.chem == ChemLeadAcid {
		nV = 128_176
	}
	mV := int64(raw) * nV / 1_000_000
	if d.cells != 0 {
		mV *= int64(d.cells)
	}
	return int32(mV), nil
}

// InputMilliVolts returns VIN at 1.648 mV per LSB.
func (d *Device) InputMilliVolts() (int32, error) {
	raw, err := d.readWord(regVIN)
	if err != nil {
		return 0, err
	}
	return int32(int64(raw) * 1648 / 1000), nil
}

// BatteryMilliAmps returns IBAT (1.46487 µV/RSNSB per LSB); positive while
// charging.
func (d *Device) BatteryMilliAmps() (int32, error) {
	if d.rsnsB_uOhm == 0 {
		return 0, &Error{Op: "read", Reg: regIBAT, Err: ErrRSNSBUnset}
	}
	raw, err := d.readS16(regIBAT)
	if err != nil {
		return 0, err
	}
	return int32(int64(raw) * 1_464_870 / int64(d.rsnsB_uOhm) / 1000), nil
}

// DieMilliCelsius returns the die temperature.
func (d *Device) DieMilliCelsius() (int32, error) {
	raw, err := d.readS16(regDieTemp)
	if err != nil {
		return 0, err
	}
	return int32((int64(raw) - 12010) * 10000 / 456), nil
}

func (d *Device) ChargerState() (ChargerState, error) {
	v, err := d.readWord(regChargerState)
	return ChargerState(v), err
}

func (d *Device) SystemStatus() (SystemStatus, error) {
	v, err := d.readWord(regSystemStatus)
	return SystemStatus(v), err
}

// ChargeTargets returns the currently applied DAC values (after JEITA and
// thermal adjustment) in pack mV and mA.
func (d *Device) ChargeTargets() (mV int32, mA int32, err error) {
	vc, err := d.readWord(regVChargeDAC)
	if err != nil {
		return 0, 0, err
	}
	ic, err := d.readWord(regIChargeDAC)
	if err != nil {
		return 0, 0, err
	}
	if scale, ok := vchargeScale[d.chem]; ok {
		mV = int32(scale.value(int64(vc&0x3F)) * int64(d.cells) / 1000)
	}
	if d.rsnsB_uOhm != 0 {
		mA = int32(d.currentFromCode(int64(ic & 0x1F)))
	}
	return mV, mA, nil
}
