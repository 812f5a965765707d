package acpibridge

import (
	"encoding/binary"
	"testing"

	"github.com/distatus/battery"
	"github.com/stretchr/testify/require"

	"embedded-batteries-go/acpi"
	"embedded-batteries-go/drivers/osbattery"
	"embedded-batteries-go/drivers/sbs"
	"embedded-batteries-go/drivers/sbs/sim"
	sb "embedded-batteries-go/smartbattery"
)

func simBridge(t *testing.T) (*Bridge, *sim.Bus, *sbs.Battery) {
	t.Helper()
	bus := sim.New()
	bat := sbs.NewBattery(bus, sbs.DefaultConfig())
	return New(bat, DefaultConfig()), bus, bat
}

func TestBstCurrentMode(t *testing.T) {
	br, _, _ := simBridge(t)
	bst, err := br.Bst()
	require.NoError(t, err)
	require.Equal(t, acpi.BstReturn{
		State:             acpi.BatteryDischarging,
		PresentRate:       1500,
		RemainingCapacity: 4000,
		PresentVoltage:    11850,
	}, bst)

	psr, err := br.Psr()
	require.NoError(t, err)
	require.Equal(t, acpi.Offline, psr.PowerSource)
}

func TestBstPowerModeAndScaling(t *testing.T) {
	br, bus, bat := simBridge(t)
	bus.Battery.Regs[sb.CmdSpecificationInfo] = uint16(sb.NewSpecificationInfo(sb.RevisionV1, sb.Version1_1, 1, 0))
	require.NoError(t, bat.UpdateBatteryMode(sb.CapacityModeFlag, 0))

	bst, err := br.Bst()
	require.NoError(t, err)
	require.Equal(t, uint32(118500), bst.PresentVoltage)
	// 4000 mAh at 11.1 V reads as 4440 x 10 mWh; the voltage scale adds another 10.
	require.Equal(t, uint32(4440*10*10), bst.RemainingCapacity)
	require.Equal(t, uint32(1500*118500/1000), bst.PresentRate)
}

func TestBstStateFlags(t *testing.T) {
	require.Equal(t, acpi.BatteryCharging, batteryState(sb.Initialized, 800, true))
	require.Zero(t, batteryState(sb.Initialized, 800, false))
	require.Equal(t, acpi.BatteryDischarging|acpi.BatteryCritical,
		batteryState(sb.Discharging|sb.FullyDischarged, -100, true))
	require.Equal(t, acpi.BatteryChargeLimiting, batteryState(sb.TerminateChargeAlarm, 0, true))
	require.Zero(t, batteryState(sb.TerminateChargeAlarm|sb.FullyCharged, 0, true))
}

func TestBix(t *testing.T) {
	br, _, _ := simBridge(t)
	bix, err := br.Bix()
	require.NoError(t, err)
	require.Equal(t, acpi.PowerUnitMilliAmps, bix.PowerUnit)
	require.Equal(t, uint32(5200), bix.DesignCapacity)
	require.Equal(t, uint32(5000), bix.LastFullChargeCapacity)
	require.Equal(t, uint32(11100), bix.DesignVoltage)
	require.Equal(t, uint32(520), bix.DesignCapacityOfWarning, "remaining capacity alarm")
	require.Equal(t, uint32(260), bix.DesignCapacityOfLow)
	require.Equal(t, uint32(42), bix.CycleCount)
	require.Equal(t, uint32(98000), bix.MeasurementAccuracy)
	require.Equal(t, []byte("SIM3S1P\x00"), bix.ModelNumber)
	require.Equal(t, []byte("0042\x00"), bix.SerialNumber)
	require.Equal(t, []byte("LION\x00"), bix.BatteryType)
	require.Equal(t, []byte("ACME\x00"), bix.OEMInfo)

	dst := make([]byte, 128)
	n, err := br.BixBytes(dst)
	require.NoError(t, err)
	require.Equal(t, acpi.BixHeaderSize+8+5+5+5, n)
	require.Equal(t, uint32(5200), binary.LittleEndian.Uint32(dst[8:]))
	require.Equal(t, "SIM3S1P\x00", string(dst[acpi.BixHeaderSize:acpi.BixHeaderSize+8]))

	_, err = br.BixBytes(dst[:70])
	require.ErrorIs(t, err, acpi.ErrBufferTooSmall)
}

func TestPif(t *testing.T) {
	br, _, _ := simBridge(t)
	pif, err := br.Pif()
	require.NoError(t, err)
	require.Equal(t, uint32(2500*12600/1000), pif.MaxOutputPower)
	require.Equal(t, acpi.Unknown, pif.MaxInputPower)

	dst := make([]byte, 64)
	n, err := br.PifBytes(dst)
	require.NoError(t, err)
	require.Equal(t, acpi.PifHeaderSize+8+5+5, n)
}

func TestPifIgnoresScales(t *testing.T) {
	br, bus, _ := simBridge(t)
	bus.Battery.Regs[sb.CmdSpecificationInfo] = uint16(sb.NewSpecificationInfo(sb.RevisionV1, sb.Version1_1, 1, 1))
	pif, err := br.Pif()
	require.NoError(t, err)
	require.Equal(t, uint32(31500), pif.MaxOutputPower)
}

func TestBixSaturatesLargeScales(t *testing.T) {
	br, bus, bat := simBridge(t)
	bus.Battery.Regs[sb.CmdSpecificationInfo] = uint16(sb.NewSpecificationInfo(sb.RevisionV1, sb.Version1_1, 3, 3))
	require.NoError(t, bat.UpdateBatteryMode(sb.CapacityModeFlag, 0))

	bix, err := br.Bix()
	require.NoError(t, err)
	require.Equal(t, acpi.PowerUnitMilliWatts, bix.PowerUnit)
	// 5772 x 10 mWh at 10^3 x 10^3 does not fit in 32 bits.
	require.Equal(t, acpi.Unknown-1, bix.DesignCapacity)
	require.Equal(t, acpi.Unknown-1, bix.LastFullChargeCapacity)
	require.Equal(t, acpi.Unknown-1, bix.DesignCapacityOfWarning)
	require.Equal(t, uint32(2_886_000_000), bix.DesignCapacityOfLow)
	require.Equal(t, uint32(10_000_000), bix.CapacityGranularity1)
	require.Equal(t, uint32(11_100_000), bix.DesignVoltage)

	bst, err := br.Bst()
	require.NoError(t, err)
	require.Equal(t, acpi.Unknown-1, bst.RemainingCapacity)
}

func TestPifBusFailure(t *testing.T) {
	br, bus, _ := simBridge(t)
	bus.InjectFaults(100)
	_, err := br.Pif()
	require.Equal(t, sb.ErrorKindComm, sb.KindOf(err))
}

func TestBusFailurePropagates(t *testing.T) {
	br, bus, _ := simBridge(t)
	bus.InjectFaults(100)
	_, err := br.Bst()
	require.Error(t, err)
	require.Equal(t, sb.ErrorKindComm, sb.KindOf(err))
}

func TestHostBatteryPowerUnit(t *testing.T) {
	host := osbattery.New(osbattery.Config{
		DesignVoltage: 11100,
		Source: func() ([]*battery.Battery, error) {
			return []*battery.Battery{{State: battery.Charging, Current: 40000, Full: 50000, Design: 55500, ChargeRate: 11100}}, nil
		},
	})
	br := New(host, DefaultConfig())

	bst, err := br.Bst()
	require.NoError(t, err)
	require.Equal(t, acpi.BatteryCharging, bst.State)
	require.Equal(t, uint32(40000), bst.RemainingCapacity)
	require.Equal(t, acpi.Unknown, bst.PresentVoltage)
	require.Equal(t, acpi.Unknown, bst.PresentRate, "power needs the present voltage")

	bix, err := br.Bix()
	require.NoError(t, err)
	require.Equal(t, acpi.PowerUnitMilliWatts, bix.PowerUnit)
	require.Equal(t, uint32(55500), bix.DesignCapacity)
	require.Equal(t, uint32(5550), bix.DesignCapacityOfWarning)
	require.Equal(t, acpi.Unknown, bix.CycleCount)
	require.Equal(t, []byte{0}, bix.BatteryType)

	psr, err := br.Psr()
	require.NoError(t, err)
	require.Equal(t, acpi.Online, psr.PowerSource)
}
