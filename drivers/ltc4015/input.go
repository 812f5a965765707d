package ltc4015

import "embedded-batteries-go/internal/mathx"

const iinLimitMaxCode = 63

// InputMilliAmps returns IIN (1.46487 µV/RSNSI per LSB).
func (d *Device) InputMilliAmps() (int32, error) {
	if d.rsnsI_uOhm == 0 {
		return 0, &Error{Op: "read", Reg: regIIN, Err: ErrRSNSIUnset}
	}
	raw, err := d.readS16(regIIN)
	if err != nil {
		return 0, err
	}
	return int32(int64(raw) * 1_464_870 / int64(d.rsnsI_uOhm) / 1000), nil
}

// SetInputCurrentLimit programs IIN_LIMIT_SETTING and returns the quantised
// limit in mA. The limit is (code+1)·500 µV across RSNSI.
func (d *Device) SetInputCurrentLimit(mA int32) (int32, error) {
	if d.rsnsI_uOhm == 0 {
		return 0, &Error{Op: "iin_limit", Reg: regIinLimitSetting, Err: ErrRSNSIUnset}
	}
	code := mathx.Clamp(mathx.RoundDiv(int64(mA)*int64(d.rsnsI_uOhm), 500_000)-1, 0, iinLimitMaxCode)
	if err := d.writeWord(regIinLimitSetting, uint16(code)); err != nil {
		return 0, err
	}
	return d.inputLimitFromCode(code), nil
}

// InputCurrentLimit reads back the programmed input current limit in mA.
func (d *Device) InputCurrentLimit() (int32, error) {
	if d.rsnsI_uOhm == 0 {
		return 0, &Error{Op: "iin_limit", Reg: regIinLimitSetting, Err: ErrRSNSIUnset}
	}
	v, err := d.readWord(regIinLimitSetting)
	if err != nil {
		return 0, err
	}
	return d.inputLimitFromCode(int64(v & iinLimitMaxCode)), nil
}

func (d *Device) inputLimitFromCode(code int64) int32 {
	return int32((code + 1) * 500_000 / int64(d.rsnsI_uOhm))
}

// ChargeStatus reports which control loop is limiting the charge current.
func (d *Device) ChargeStatus() (ChargeStatus, error) {
	v, err := d.readWord(regChargeStatus)
	return ChargeStatus(v), err
}
