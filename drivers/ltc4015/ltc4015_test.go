package ltc4015

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"embedded-batteries-go/charger"
)

// regBus is a word-register map behind drivers.I2C.
type regBus struct {
	regs   map[byte]uint16
	writes []byte
	fail   error
}

func newRegBus() *regBus { return &regBus{regs: map[byte]uint16{}} }

func (b *regBus) Tx(addr uint16, w, r []byte) error {
	if b.fail != nil {
		return b.fail
	}
	if addr != AddressDefault || len(w) == 0 {
		return errors.New("nack")
	}
	reg := w[0]
	if len(w) == 3 {
		b.regs[reg] = uint16(w[1]) | uint16(w[2])<<8
		b.writes = append(b.writes, reg)
		return nil
	}
	v := b.regs[reg]
	if len(r) >= 2 {
		r[0], r[1] = byte(v), byte(v>>8)
	}
	return nil
}

func liIon3S(bus *regBus) *Device {
	return New(bus, Config{RSNSB_uOhm: 10_000, Cells: 3, Chem: ChemLithiumIon})
}

func TestConfigValidate(t *testing.T) {
	require.ErrorIs(t, DefaultConfig().Validate(), ErrRSNSBUnset)

	cfg := DefaultConfig()
	cfg.RSNSB_uOhm = 10_000
	require.NoError(t, cfg.Validate())

	cfg.Address = 0x80
	require.Error(t, cfg.Validate())
}

func TestChargingCurrentQuantises(t *testing.T) {
	bus := newRegBus()
	d := liIon3S(bus)

	got, err := d.ChargingCurrent(2000)
	require.NoError(t, err)
	require.Equal(t, charger.MilliAmps(2000), got)
	require.Equal(t, uint16(19), bus.regs[regIChargeTarget])

	got, err = d.ChargingCurrent(3500)
	require.NoError(t, err)
	require.Equal(t, charger.MilliAmps(3200), got, "clamped at the largest target")

	got, err = d.ChargingCurrent(charger.ConstantSource)
	require.NoError(t, err)
	require.Equal(t, charger.MilliAmps(3200), got)
	require.Equal(t, uint16(ichargeMaxCode), bus.regs[regIChargeTarget])
}

func TestChargingVoltagePerChemistry(t *testing.T) {
	bus := newRegBus()
	d := liIon3S(bus)

	got, err := d.ChargingVoltage(12600)
	require.NoError(t, err)
	require.Equal(t, charger.MilliVolts(12600), got)
	require.Equal(t, uint16(31), bus.regs[regVChargeSetting])

	got, err = d.ChargingVoltage(12000)
	require.NoError(t, err)
	require.Equal(t, charger.MilliVolts(12000), got)
	require.Equal(t, uint16(15), bus.regs[regVChargeSetting])

	got, err = d.ChargingVoltage(9000)
	require.NoError(t, err)
	require.Equal(t, charger.MilliVolts(11437), got, "below range selects code 0")

	la := New(newRegBus(), Config{RSNSB_uOhm: 10_000, Cells: 6, Chem: ChemLeadAcid})
	got, err = la.ChargingVoltage(14400)
	require.NoError(t, err)
	require.Equal(t, charger.MilliVolts(14400), got)
}

func TestZeroLimitSuspends(t *testing.T) {
	bus := newRegBus()
	d := liIon3S(bus)

	got, err := d.ChargingCurrent(charger.ChargingDisabled)
	require.NoError(t, err)
	require.Zero(t, got)
	s, err := d.Suspended()
	require.NoError(t, err)
	require.True(t, s)

	_, err = d.ChargingVoltage(charger.ChargingDisabled)
	require.NoError(t, err)

	// One non-zero limit is not enough to resume.
	_, err = d.ChargingCurrent(1000)
	require.NoError(t, err)
	s, _ = d.Suspended()
	require.True(t, s)

	_, err = d.ChargingVoltage(12600)
	require.NoError(t, err)
	s, _ = d.Suspended()
	require.False(t, s)
}

func TestConfigureFromStrap(t *testing.T) {
	bus := newRegBus()
	bus.regs[regChemCells] = 0x0704 // lead-acid fixed, 4 cells
	d := New(bus, Config{RSNSB_uOhm: 10_000})
	require.NoError(t, d.Configure())
	require.Equal(t, uint8(4), d.Cells())
	require.Equal(t, ChemLeadAcid, d.Chemistry())

	bus.regs[regChemCells] = 0x0F03
	d = New(bus, Config{RSNSB_uOhm: 10_000})
	err := d.Configure()
	require.ErrorIs(t, err, ErrChemistryUnknown)
	var le *Error
	require.ErrorAs(t, err, &le)
	require.Equal(t, charger.ErrorKindOther, le.Kind())
}

func TestErrorKinds(t *testing.T) {
	d := New(newRegBus(), Config{})
	_, err := d.ChargingCurrent(1000)
	require.ErrorIs(t, err, ErrRSNSBUnset)
	require.Equal(t, charger.ErrorKindOther, charger.KindOf(err))

	_, err = d.ChargingVoltage(12000)
	require.ErrorIs(t, err, ErrCellsUnknown)

	bus := newRegBus()
	bus.fail = errors.New("bus fault")
	d = liIon3S(bus)
	_, err = d.ChargingCurrent(1000)
	require.Error(t, err)
	require.Equal(t, charger.ErrorKindComm, charger.KindOf(err))
}

func TestSnapshot(t *testing.T) {
	bus := newRegBus()
	bus.regs[regVBAT] = 21845 // ≈4.2 V per cell
	bus.regs[regVIN] = 10000
	bus.regs[regIBAT] = 1000
	bus.regs[regDieTemp] = 12010 + 456*25/10 // 25 °C
	bus.regs[regVChargeDAC] = 31
	bus.regs[regIChargeDAC] = 19
	bus.regs[regChargerState] = uint16(StateCCCVCharge)
	bus.regs[regSystemStatus] = uint16(SysChargerEnabled | SysOKToCharge)

	s := liIon3S(bus).Snapshot()
	require.Equal(t, int32(12600), s.Pack_mV)
	require.Equal(t, int32(16480), s.Vin_mV)
	require.Equal(t, int32(146), s.IBat_mA)
	require.Equal(t, int32(25000), s.Die_mC)
	require.Equal(t, int32(12600), s.VCharge_mV)
	require.Equal(t, int32(2000), s.ICharge_mA)
	require.True(t, s.State.Has(StateCCCVCharge))
	require.True(t, s.System.Has(SysOKToCharge))
	require.False(t, s.Suspended)
}

func TestInputCurrent(t *testing.T) {
	bus := newRegBus()
	d := New(bus, Config{RSNSB_uOhm: 10_000, RSNSI_uOhm: 5_000, Cells: 3, Chem: ChemLithiumIon})

	got, err := d.SetInputCurrentLimit(3000)
	require.NoError(t, err)
	require.Equal(t, int32(3000), got)
	require.Equal(t, uint16(29), bus.regs[regIinLimitSetting])

	got, err = d.SetInputCurrentLimit(50_000)
	require.NoError(t, err)
	require.Equal(t, int32(6400), got, "clamped at the largest limit")

	got, err = d.InputCurrentLimit()
	require.NoError(t, err)
	require.Equal(t, int32(6400), got)

	bus.regs[regIIN] = 1000
	bus.regs[regChargeStatus] = uint16(ChargeIinLimitActive | ChargeConstantCurrent)
	s := d.Snapshot()
	require.Equal(t, int32(292), s.Iin_mA)
	require.Equal(t, int32(6400), s.IinLim_mA)
	require.True(t, s.Charge.Has(ChargeIinLimitActive))
	require.False(t, s.Charge.Has(ChargeConstantVoltage))
}

func TestInputCurrentNeedsRSNSI(t *testing.T) {
	d := liIon3S(newRegBus())
	_, err := d.InputMilliAmps()
	require.ErrorIs(t, err, ErrRSNSIUnset)
	require.Equal(t, charger.ErrorKindOther, charger.KindOf(err))

	_, err = d.SetInputCurrentLimit(1000)
	require.ErrorIs(t, err, ErrRSNSIUnset)

	s := d.Snapshot()
	require.Zero(t, s.Iin_mA)
	require.Zero(t, s.IinLim_mA)
}
