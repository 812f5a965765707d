package ltc4015

import (
	"embedded-batteries-go/charger"
	"embedded-batteries-go/internal/mathx"
)

var _ charger.Charger = (*Device)(nil)

// Per-cell VCHARGE_SETTING scales in µV.
var vchargeScale = map[Chemistry]linearScale{
	ChemLithiumIon: {offset: 3_812_500, num: 12_500, den: 1, maxCode: 31},
	ChemLiFePO4:    {offset: 3_412_500, num: 12_500, den: 1, maxCode: 31},
	ChemLeadAcid:   {offset: 2_000_000, num: 1_000_000, den: 105, maxCode: 63},
}

const ichargeMaxCode = 31

// ChargingCurrent sets ICHARGE_TARGET and returns the quantised current.
// ChargingDisabled suspends the charger; ConstantSource selects the largest
// target.
func (d *Device) ChargingCurrent(current charger.MilliAmps) (charger.MilliAmps, error) {
	if d.rsnsB_uOhm == 0 {
		return 0, &Error{Op: "charging_current", Reg: regIChargeTarget, Err: ErrRSNSBUnset}
	}
	if current == charger.ChargingDisabled {
		d.iZero = true
		return 0, d.applySuspend()
	}
	code := int64(ichargeMaxCode)
	if current != charger.ConstantSource {
		// I = (code+1)·1 mV / RSNSB
		code = mathx.Clamp(mathx.RoundDiv(int64(current)*int64(d.rsnsB_uOhm), 1_000_000)-1, 0, ichargeMaxCode)
	}
	if err := d.writeWord(regIChargeTarget, uint16(code)); err != nil {
		return 0, err
	}
	d.iZero = false
	if err := d.applySuspend(); err != nil {
		return 0, err
	}
	return d.currentFromCode(code), nil
}

func (d *Device) currentFromCode(code int64) charger.MilliAmps {
	return charger.MilliAmps(mathx.Clamp((code+1)*1_000_000/int64(d.rsnsB_uOhm), 0, 0xFFFE))
}

// ChargingVoltage sets VCHARGE_SETTING from a pack voltage and returns the
// quantised pack voltage. Fixed-chemistry variants ignore the write.
func (d *Device) ChargingVoltage(voltage charger.MilliVolts) (charger.MilliVolts, error) {
	if d.cells == 0 {
		return 0, &Error{Op: "charging_voltage", Reg: regVChargeSetting, Err: ErrCellsUnknown}
	}
	scale, ok := vchargeScale[d.chem]
	if !ok {
		return 0, &Error{Op: "charging_voltage", Reg: regVChargeSetting, Err: ErrChemistryUnknown}
	}
	if voltage == charger.ChargingDisabled {
		d.vZero = true
		return 0, d.applySuspend()
	}
	code := scale.maxCode
	if voltage != charger.ConstantSource {
		perCell_uV := int64(voltage) * 1000 / int64(d.cells)
		code = scale.code(perCell_uV)
	}
	if err := d.writeWord(regVChargeSetting, uint16(code)); err != nil {
		return 0, err
	}
	d.vZero = false
	if err := d.applySuspend(); err != nil {
		return 0, err
	}
	pack_mV := scale.value(code) * int64(d.cells) / 1000
	return charger.MilliVolts(mathx.Clamp(pack_mV, 0, 0xFFFE)), nil
}

func (d *Device) applySuspend() error {
	if d.iZero || d.vZero {
		return d.modifyBitmaskRegister(regConfigBits, cfgSuspendCharger, 0)
	}
	return d.modifyBitmaskRegister(regConfigBits, 0, cfgSuspendCharger)
}

// Suspended reports whether the suspend_charger bit is set.
func (d *Device) Suspended() (bool, error) {
	v, err := d.readWord(regConfigBits)
	return v&cfgSuspendCharger != 0, err
}
