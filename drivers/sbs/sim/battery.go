package sim

import (
	sb "embedded-batteries-go/smartbattery"
)

// capacityRegs hold values in mA/mAh internally and are reported in 10 mW
// units while CAPACITY_MODE is set.
var capacityRegs = map[byte]bool{
	sb.CmdRemainingCapacityAlarm: true,
	sb.CmdAtRate:                 true,
	sb.CmdRemainingCapacity:      true,
	sb.CmdFullChargeCapacity:     true,
	sb.CmdDesignCapacity:         true,
}

var writableRegs = map[byte]bool{
	sb.CmdManufacturerAccess:     true,
	sb.CmdRemainingCapacityAlarm: true,
	sb.CmdRemainingTimeAlarm:     true,
	sb.CmdBatteryMode:            true,
	sb.CmdAtRate:                 true,
}

// Battery is a simulated Smart Battery. Fields may be changed between
// transactions while the owning Bus is idle.
type Battery struct {
	Regs    map[byte]uint16
	Strings map[byte]string

	// Busy makes the next n transactions (other than BatteryStatus reads)
	// fail with ErrorCodeBusy.
	Busy int

	code sb.ErrorCode
}

// NewBattery returns a 3-cell Li-ion pack at 80% charge, discharging.
func NewBattery() *Battery {
	return &Battery{
		Regs: map[byte]uint16{
			sb.CmdRemainingCapacityAlarm: 520,
			sb.CmdRemainingTimeAlarm:     10,
			sb.CmdBatteryMode:            uint16(sb.InternalChargeController | sb.PrimaryBatterySupport | sb.AlarmMode | sb.ChargerMode),
			sb.CmdAtRate:                 0,
			sb.CmdAtRateTimeToFull:       sb.MinutesNotApplicable,
			sb.CmdAtRateTimeToEmpty:      sb.MinutesNotApplicable,
			sb.CmdTemperature:            2982,
			sb.CmdVoltage:                11850,
			sb.CmdCurrent:                u16(-1500),
			sb.CmdAverageCurrent:         u16(-1450),
			sb.CmdMaxError:               2,
			sb.CmdRelativeStateOfCharge:  80,
			sb.CmdAbsoluteStateOfCharge:  77,
			sb.CmdRemainingCapacity:      4000,
			sb.CmdFullChargeCapacity:     5000,
			sb.CmdRunTimeToEmpty:         160,
			sb.CmdAverageTimeToEmpty:     165,
			sb.CmdAverageTimeToFull:      sb.MinutesNotApplicable,
			sb.CmdChargingCurrent:        2500,
			sb.CmdChargingVoltage:        12600,
			sb.CmdBatteryStatus:          uint16(sb.Initialized | sb.Discharging),
			sb.CmdCycleCount:             42,
			sb.CmdDesignCapacity:         5200,
			sb.CmdDesignVoltage:          11100,
			sb.CmdSpecificationInfo:      uint16(sb.NewSpecificationInfo(sb.RevisionV1, sb.Version1_1, 0, 0)),
			sb.CmdManufactureDate:        uint16(sb.NewManufactureDate(15, 6, 44)),
			sb.CmdSerialNumber:           0x0042,
		},
		Strings: map[byte]string{
			sb.CmdManufacturerName: "ACME",
			sb.CmdDeviceName:       "SIM3S1P",
			sb.CmdDeviceChemistry:  "LION",
		},
	}
}

// Code returns the error code the last transaction left behind.
func (b *Battery) Code() sb.ErrorCode { return b.code }

func (b *Battery) mode() sb.BatteryModeFields {
	return sb.BatteryModeFields(b.Regs[sb.CmdBatteryMode])
}

func (b *Battery) fail(c sb.ErrorCode) error {
	b.code = c
	return ErrNack
}

func (b *Battery) tx(w, r []byte) error {
	if len(w) == 0 {
		return b.fail(sb.ErrorCodeBadSize)
	}
	cmd := w[0]
	if cmd == sb.CmdBatteryStatus && len(w) == 1 && len(r) == 2 {
		st := sb.BatteryStatusFields(b.Regs[sb.CmdBatteryStatus])
		st.SetErrorCode(b.code)
		putWord(r, st.Bits())
		b.code = sb.ErrorCodeOK
		return nil
	}
	if b.Busy > 0 {
		b.Busy--
		return b.fail(sb.ErrorCodeBusy)
	}
	if cmd >= 0x24 || (cmd > sb.CmdSerialNumber && cmd < sb.CmdManufacturerName) {
		return b.fail(sb.ErrorCodeReservedCommand)
	}

	switch {
	case len(w) == 3 && len(r) == 0:
		return b.write(cmd, word(w))
	case len(w) == 1 && len(r) == 2:
		if cmd == sb.CmdAtRateOK {
			putWord(r, b.atRateOK())
			break
		}
		v, ok := b.Regs[cmd]
		if !ok {
			return b.fail(sb.ErrorCodeUnsupportedCommand)
		}
		if capacityRegs[cmd] && b.mode().Has(sb.CapacityModeFlag) {
			v = b.toPower(cmd, v)
		}
		putWord(r, v)
	case len(w) == 1 && len(r) > 2:
		s, ok := b.Strings[cmd]
		if !ok {
			return b.fail(sb.ErrorCodeUnsupportedCommand)
		}
		if len(r) < len(s)+1 {
			return b.fail(sb.ErrorCodeBadSize)
		}
		r[0] = byte(len(s))
		n := 1 + copy(r[1:], s)
		for i := n; i < len(r); i++ {
			r[i] = 0xFF
		}
	default:
		return b.fail(sb.ErrorCodeBadSize)
	}
	b.code = sb.ErrorCodeOK
	return nil
}

func (b *Battery) write(cmd byte, v uint16) error {
	if _, isString := b.Strings[cmd]; isString || !writableRegs[cmd] {
		if _, known := b.Regs[cmd]; known || isString {
			return b.fail(sb.ErrorCodeAccessDenied)
		}
		return b.fail(sb.ErrorCodeUnsupportedCommand)
	}
	switch {
	case cmd == sb.CmdBatteryMode:
		v = b.mode().Merge(sb.BatteryModeFields(v)).Bits()
	case capacityRegs[cmd] && b.mode().Has(sb.CapacityModeFlag):
		v = b.fromPower(cmd, v)
	}
	b.Regs[cmd] = v
	if cmd == sb.CmdAtRate {
		b.updateAtRate()
	}
	b.code = sb.ErrorCodeOK
	return nil
}

// toPower converts an internal mA value to 10 mW at the design voltage.
func (b *Battery) toPower(cmd byte, v uint16) uint16 {
	dv := int32(b.Regs[sb.CmdDesignVoltage])
	if cmd == sb.CmdAtRate {
		return uint16(int16(int32(int16(v)) * dv / 10000))
	}
	return uint16(uint32(v) * uint32(dv) / 10000)
}

func (b *Battery) fromPower(cmd byte, v uint16) uint16 {
	dv := int32(b.Regs[sb.CmdDesignVoltage])
	if dv == 0 {
		return 0
	}
	if cmd == sb.CmdAtRate {
		return uint16(int16(int32(int16(v)) * 10000 / dv))
	}
	return uint16(uint32(v) * 10000 / uint32(dv))
}

// updateAtRate recomputes the AtRate predictions from the remaining and full
// charge capacities.
func (b *Battery) updateAtRate() {
	rate := int32(int16(b.Regs[sb.CmdAtRate]))
	remaining := int32(b.Regs[sb.CmdRemainingCapacity])
	full := int32(b.Regs[sb.CmdFullChargeCapacity])
	b.Regs[sb.CmdAtRateTimeToFull] = sb.MinutesNotApplicable
	b.Regs[sb.CmdAtRateTimeToEmpty] = sb.MinutesNotApplicable
	switch {
	case rate > 0:
		b.Regs[sb.CmdAtRateTimeToFull] = clampMinutes((full - remaining) * 60 / rate)
	case rate < 0:
		b.Regs[sb.CmdAtRateTimeToEmpty] = clampMinutes(remaining * 60 / -rate)
	}
}

// atRateOK reports 1 when the remaining capacity covers another 10 s at
// AtRate.
func (b *Battery) atRateOK() uint16 {
	rate := int32(int16(b.Regs[sb.CmdAtRate]))
	if rate >= 0 || int32(b.Regs[sb.CmdRemainingCapacity])*360 >= -rate {
		return 1
	}
	return 0
}

func u16(v int16) uint16 { return uint16(v) }

func clampMinutes(v int32) uint16 {
	if v < 0 {
		return 0
	}
	if v >= int32(sb.MinutesNotApplicable) {
		return sb.MinutesNotApplicable - 1
	}
	return uint16(v)
}
