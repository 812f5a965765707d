package sbs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"embedded-batteries-go/drivers/sbs/sim"
	sb "embedded-batteries-go/smartbattery"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryInterval = time.Microsecond
	cfg.MaxRetryInterval = time.Millisecond
	return cfg
}

func newTestBattery(t *testing.T) (*Battery, *sim.Bus) {
	t.Helper()
	bus := sim.New()
	cfg := testConfig()
	require.NoError(t, cfg.Validate())
	return NewBattery(bus, cfg), bus
}

func TestBatteryReads(t *testing.T) {
	d, _ := newTestBattery(t)

	v, err := d.Voltage()
	require.NoError(t, err)
	require.EqualValues(t, 11850, v)

	i, err := d.Current()
	require.NoError(t, err)
	require.EqualValues(t, -1500, i)

	temp, err := d.Temperature()
	require.NoError(t, err)
	require.EqualValues(t, 25050, temp.MilliCelsius())

	capacity, err := d.DesignCapacity()
	require.NoError(t, err)
	ma, ok := capacity.MilliAmps()
	require.True(t, ok)
	require.EqualValues(t, 5200, ma)

	rsoc, err := d.RelativeStateOfCharge()
	require.NoError(t, err)
	require.EqualValues(t, 80, rsoc)

	status, err := d.BatteryStatus()
	require.NoError(t, err)
	require.True(t, status.Has(sb.Initialized|sb.Discharging))
	require.Equal(t, sb.ErrorCodeOK, status.ErrorCode())

	info, err := d.SpecificationInfo()
	require.NoError(t, err)
	require.Equal(t, sb.RevisionV1, info.Revision())
	require.Equal(t, sb.Version1_1, info.Version())

	date, err := d.ManufactureDate()
	require.NoError(t, err)
	require.Equal(t, "2024-06-15", date.String())

	ttf, err := d.AverageTimeToFull()
	require.NoError(t, err)
	require.Equal(t, sb.MinutesNotApplicable, ttf)
}

func TestBatteryStrings(t *testing.T) {
	d, _ := newTestBattery(t)

	buf := make([]byte, sb.MaxStringLen+1)
	require.NoError(t, d.DeviceChemistry(buf))
	require.Equal(t, "LION", sb.CString(buf))

	require.NoError(t, d.ManufacturerName(buf))
	require.Equal(t, "ACME", sb.CString(buf))

	short := make([]byte, 4)
	require.NoError(t, d.DeviceName(short))
	require.Equal(t, []byte("SIM\x00"), short)

	err := d.DeviceName(nil)
	require.ErrorIs(t, err, ErrShortBuffer)
	require.Equal(t, sb.ErrorKindOther, sb.KindOf(err))
}

func TestCapacityModeTracking(t *testing.T) {
	d, _ := newTestBattery(t)

	require.NoError(t, d.UpdateBatteryMode(sb.CapacityModeFlag, 0))

	capacity, err := d.DesignCapacity()
	require.NoError(t, err)
	cw, ok := capacity.CentiWatts()
	require.True(t, ok, "capacity should be power based after switching mode")
	require.EqualValues(t, 5772, cw) // 5200 mAh at 11.1 V

	err = d.SetRemainingCapacityAlarm(sb.MilliAmpUnsigned(300))
	require.ErrorIs(t, err, ErrModeMismatch)
	require.Equal(t, sb.ErrorKindOther, sb.KindOf(err))

	require.NoError(t, d.SetRemainingCapacityAlarm(sb.CentiWattUnsigned(555)))
	alarm, err := d.RemainingCapacityAlarm()
	require.NoError(t, err)
	require.Equal(t, sb.PowerBased, alarm.Mode)

	require.NoError(t, d.UpdateBatteryMode(0, sb.CapacityModeFlag))
	capacity, err = d.FullChargeCapacity()
	require.NoError(t, err)
	ma, ok := capacity.MilliAmps()
	require.True(t, ok)
	require.EqualValues(t, 5000, ma)
}

func TestUpdateBatteryModeKeepsReadOnlyBits(t *testing.T) {
	d, bus := newTestBattery(t)

	require.NoError(t, d.UpdateBatteryMode(sb.ConditionFlag|sb.PrimaryBattery, sb.InternalChargeController|sb.ChargerMode))

	m, err := d.BatteryMode()
	require.NoError(t, err)
	require.True(t, m.Has(sb.InternalChargeController|sb.PrimaryBatterySupport))
	require.True(t, m.Has(sb.PrimaryBattery))
	require.False(t, m.Has(sb.ChargerMode))
	require.False(t, m.Has(sb.ConditionFlag))

	// No-op updates do not touch the bus beyond the read.
	before := bus.Transactions()
	require.NoError(t, d.UpdateBatteryMode(sb.PrimaryBattery, 0))
	require.Equal(t, before+1, bus.Transactions())
}

func TestAtRate(t *testing.T) {
	d, _ := newTestBattery(t)

	require.NoError(t, d.SetAtRate(sb.MilliAmpSigned(-1000)))
	rate, err := d.AtRate()
	require.NoError(t, err)
	ma, ok := rate.MilliAmps()
	require.True(t, ok)
	require.EqualValues(t, -1000, ma)

	tte, err := d.AtRateTimeToEmpty()
	require.NoError(t, err)
	require.EqualValues(t, 240, tte)

	ok, err = d.AtRateOK()
	require.NoError(t, err)
	require.True(t, ok)

	require.ErrorIs(t, d.SetAtRate(sb.CentiWattSigned(-10)), ErrModeMismatch)
}

func TestStatusCodeErrors(t *testing.T) {
	d, bus := newTestBattery(t)
	delete(bus.Battery.Regs, sb.CmdCycleCount)

	before := bus.Transactions()
	_, err := d.CycleCount()
	require.Error(t, err)
	require.Equal(t, sb.ErrorKindBatteryStatus, sb.KindOf(err))
	code, ok := sb.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, sb.ErrorCodeUnsupportedCommand, code)
	// One attempt plus the status query; unsupported commands are not retried.
	require.Equal(t, before+2, bus.Transactions())

	var be *BatteryError
	require.True(t, errors.As(err, &be))
	require.Equal(t, sb.CmdCycleCount, be.Cmd)
}

func TestBusyIsRetried(t *testing.T) {
	d, bus := newTestBattery(t)
	bus.Battery.Busy = 2

	v, err := d.Voltage()
	require.NoError(t, err)
	require.EqualValues(t, 11850, v)

	cfg := testConfig()
	cfg.Retries = 0
	d = NewBattery(bus, cfg)
	bus.Battery.Busy = 1
	_, err = d.Voltage()
	require.ErrorIs(t, err, &sb.StatusError{Code: sb.ErrorCodeBusy})
}

func TestBusFaults(t *testing.T) {
	d, bus := newTestBattery(t)

	bus.InjectFaults(1)
	v, err := d.DesignVoltage()
	require.NoError(t, err)
	require.EqualValues(t, 11100, v)

	cfg := testConfig()
	cfg.Retries = 1
	d = NewBattery(bus, cfg)
	bus.InjectFaults(10)
	_, err = d.DesignVoltage()
	require.ErrorIs(t, err, sim.ErrBusFault)
	require.Equal(t, sb.ErrorKindComm, sb.KindOf(err))
}

func TestNoStatusQuery(t *testing.T) {
	bus := sim.New()
	cfg := testConfig()
	cfg.QueryStatus = false
	cfg.Retries = 0
	d := NewBattery(bus, cfg)
	delete(bus.Battery.Regs, sb.CmdSerialNumber)

	_, err := d.SerialNumber()
	require.ErrorIs(t, err, sim.ErrNack)
	require.Equal(t, sb.ErrorKindComm, sb.KindOf(err))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, DefaultChargerConfig().Validate())

	cfg := DefaultConfig()
	cfg.Address = 0x80
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.RetryInterval = 0
	require.Error(t, cfg.Validate())

	cfg.Retries = 0
	require.NoError(t, cfg.Validate())

	cc := DefaultChargerConfig()
	cc.MaxRetryInterval = time.Microsecond
	require.Error(t, cc.Validate())
}
