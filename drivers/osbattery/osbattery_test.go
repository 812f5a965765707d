package osbattery

import (
	"bytes"
	"io"
	"testing"

	"github.com/distatus/battery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	sb "embedded-batteries-go/smartbattery"
)

func fixed(bats ...*battery.Battery) Source {
	return func() ([]*battery.Battery, error) { return bats, nil }
}

func discharging() *battery.Battery {
	return &battery.Battery{
		State:      battery.Discharging,
		Current:    40000, // mWh
		Full:       50000,
		Design:     55500,
		ChargeRate: 11100, // mW
	}
}

func TestReads(t *testing.T) {
	b := New(Config{DesignVoltage: 11100, Source: fixed(discharging())})

	mode, err := b.BatteryMode()
	require.NoError(t, err)
	require.Equal(t, sb.PowerBased, mode.CapacityMode())

	rem, err := b.RemainingCapacity()
	require.NoError(t, err)
	cw, ok := rem.CentiWatts()
	require.True(t, ok)
	require.Equal(t, sb.CentiWatts(4000), cw)

	rsoc, err := b.RelativeStateOfCharge()
	require.NoError(t, err)
	require.Equal(t, sb.Percent(80), rsoc)

	asoc, err := b.AbsoluteStateOfCharge()
	require.NoError(t, err)
	require.Equal(t, sb.Percent(72), asoc)

	cur, err := b.Current()
	require.NoError(t, err)
	require.Equal(t, sb.MilliAmpsSigned(-1000), cur)

	tte, err := b.RunTimeToEmpty()
	require.NoError(t, err)
	require.Equal(t, sb.Minutes(216), tte)

	ttf, err := b.AverageTimeToFull()
	require.NoError(t, err)
	require.Equal(t, sb.MinutesNotApplicable, ttf)

	st, err := b.BatteryStatus()
	require.NoError(t, err)
	require.True(t, st.Has(sb.Discharging|sb.Initialized))
	require.False(t, st.Has(sb.FullyCharged))

	name := make([]byte, 8)
	require.NoError(t, b.DeviceName(name))
	require.Equal(t, "BAT0", sb.CString(name))
}

func TestCharging(t *testing.T) {
	bat := discharging()
	bat.State = battery.Charging
	b := New(Config{DesignVoltage: 11100, Source: fixed(bat)})

	cur, err := b.Current()
	require.NoError(t, err)
	require.Equal(t, sb.MilliAmpsSigned(1000), cur)

	ttf, err := b.AverageTimeToFull()
	require.NoError(t, err)
	require.Equal(t, sb.Minutes(54), ttf)

	tte, err := b.RunTimeToEmpty()
	require.NoError(t, err)
	require.Equal(t, sb.MinutesNotApplicable, tte)
}

func TestWritesAreReadOnly(t *testing.T) {
	b := New(Config{Source: fixed(discharging())})
	for _, err := range []error{
		b.SetBatteryMode(0),
		b.SetAtRate(sb.CentiWattSigned(-100)),
		b.SetRemainingTimeAlarm(10),
		b.SetRemainingCapacityAlarm(sb.CentiWattUnsigned(10)),
	} {
		require.ErrorIs(t, err, ErrReadOnly)
		require.Equal(t, sb.ErrorKindOther, sb.KindOf(err))
	}
}

func TestUnsupportedAndMissing(t *testing.T) {
	b := New(Config{Source: fixed(discharging())})
	_, err := b.Current()
	require.ErrorIs(t, err, ErrNotSupported, "no design voltage")
	_, err = b.Temperature()
	require.Equal(t, sb.ErrorKindOther, sb.KindOf(err))

	b = New(Config{Index: 1, Source: fixed(discharging())})
	_, err = b.RelativeStateOfCharge()
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, sb.ErrorKindComm, sb.KindOf(err))

	host := errors.New("no power supply class")
	b = New(Config{Source: func() ([]*battery.Battery, error) { return nil, host }})
	_, err = b.BatteryStatus()
	require.ErrorIs(t, err, host)
	require.Equal(t, sb.ErrorKindComm, sb.KindOf(err))

	// Partial data still yields a reading.
	b = New(Config{Source: func() ([]*battery.Battery, error) { return []*battery.Battery{discharging()}, host }})
	_, err = b.RemainingCapacity()
	require.NoError(t, err)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.Error(t, Config{Index: -1}.Validate())
}

func TestPartialDataLogging(t *testing.T) {
	partial := func() ([]*battery.Battery, error) {
		return []*battery.Battery{discharging()}, errors.New("voltage unavailable")
	}

	var out bytes.Buffer
	l := logrus.New()
	l.SetOutput(&out)
	l.SetLevel(logrus.DebugLevel)
	b := New(Config{DesignVoltage: 11100, Source: partial, Logger: l})
	_, err := b.RemainingCapacity()
	require.NoError(t, err)
	require.Contains(t, out.String(), "partial battery data")

	quiet := New(Config{DesignVoltage: 11100, Source: partial})
	require.Equal(t, io.Discard, quiet.log.(*logrus.Logger).Out)
	_, err = quiet.RemainingCapacity()
	require.NoError(t, err)
}
