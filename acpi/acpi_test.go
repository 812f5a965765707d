package acpi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestPifExample(t *testing.T) {
	p := Pif{State: PowerSourceRedundant | PowerSourceShared, MaxOutputPower: 100, MaxInputPower: 200}
	dst := make([]byte, 12)
	n, err := p.ToBytes(dst, 0, 0, 0)
	if err != nil || n != 12 {
		t.Fatalf("ToBytes: n=%d err=%v", n, err)
	}
	want := []byte{0x03, 0, 0, 0, 0x64, 0, 0, 0, 0xC8, 0, 0, 0}
	if !bytes.Equal(dst, want) {
		t.Fatalf("got % X", dst)
	}
}

func TestPifStrings(t *testing.T) {
	p := Pif{
		MaxOutputPower: Unknown,
		ModelNumber:    []byte("AD65\x00"),
		SerialNumber:   []byte("7\x00"),
		OEMInfo:        []byte("X\x00"),
	}
	size := p.Size(5, 2, 2)
	dst := make([]byte, size)
	n, err := p.ToBytes(dst, 5, 2, 2)
	if err != nil || n != size {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if !bytes.Equal(dst[12:], []byte("AD65\x007\x00X\x00")) {
		t.Fatalf("tail % X", dst[12:])
	}
	if binary.LittleEndian.Uint32(dst[4:]) != Unknown {
		t.Fatalf("max output % X", dst[4:8])
	}

	if _, err := p.ToBytes(make([]byte, size-1), 5, 2, 2); !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("short buffer: %v", err)
	}
	if _, err := p.ToBytes(make([]byte, 64), 5, 3, 2); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("mismatch: %v", err)
	}
}

func testBix() BixReturn {
	return BixReturn{
		Revision:                BixRevision,
		PowerUnit:               PowerUnitMilliAmps,
		DesignCapacity:          5200,
		LastFullChargeCapacity:  5000,
		Technology:              Secondary,
		DesignVoltage:           11100,
		DesignCapacityOfWarning: 520,
		DesignCapacityOfLow:     156,
		CycleCount:              42,
		MeasurementAccuracy:     95000,
		MaxSamplingTime:         1000,
		MinSamplingTime:         250,
		MaxAveragingInterval:    60000,
		MinAveragingInterval:    1000,
		CapacityGranularity1:    10,
		CapacityGranularity2:    20,
		ModelNumber:             []byte("M1\x00"),
		SerialNumber:            []byte("0042\x00"),
		BatteryType:             []byte("LION\x00"),
		OEMInfo:                 []byte("ACME\x00"),
		SwappingCapability:      ColdSwappable,
	}
}

func TestBixLayout(t *testing.T) {
	b := testBix()
	size := b.Size(3, 5, 5, 5)
	if size != 64+18 {
		t.Fatalf("size %d", size)
	}
	dst := make([]byte, size)
	n, err := b.ToBytes(dst, 3, 5, 5, 5)
	if err != nil || n != size {
		t.Fatalf("n=%d err=%v", n, err)
	}
	words := []uint32{1, 1, 5200, 5000, 1, 11100, 520, 156, 42, 95000, 1000, 250, 60000, 1000, 10, 20}
	for i, w := range words {
		if got := binary.LittleEndian.Uint32(dst[4*i:]); got != w {
			t.Fatalf("word %d: got %d want %d", i, got, w)
		}
	}
	if got := string(dst[64:]); got != "M1\x000042\x00LION\x00ACME\x00" {
		t.Fatalf("strings %q", got)
	}
}

func TestBixExactBufferAndLarger(t *testing.T) {
	b := testBix()
	dst := bytes.Repeat([]byte{0xAA}, 100)
	n, err := b.ToBytes(dst, 3, 5, 5, 5)
	if err != nil || n != 82 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if dst[82] != 0xAA {
		t.Fatal("wrote past the encoded length")
	}
}

func TestBixErrors(t *testing.T) {
	b := testBix()
	_, err := b.ToBytes(make([]byte, 81), 3, 5, 5, 5)
	if !errors.Is(err, ErrBufferTooSmall) || errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("short buffer: %v", err)
	}
	var se *SerializeError
	if !errors.As(err, &se) || se.Want != 82 || se.Got != 81 || se.Op != "_BIX" {
		t.Fatalf("detail: %+v", se)
	}

	// The mismatch wins even when the buffer is also too small.
	_, err = b.ToBytes(make([]byte, 10), 3, 5, 4, 5)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("mismatch with short buffer: %v", err)
	}
	if !errors.As(err, &se) || se.Field != "battery_type" || se.Want != 4 || se.Got != 5 {
		t.Fatalf("detail: %+v", se)
	}

	_, err = b.ToBytes(make([]byte, 200), 3, 5, 5, 6)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("mismatch with large buffer: %v", err)
	}
}

func TestFixedStructures(t *testing.T) {
	bst := BstReturn{State: BatteryCharging, PresentRate: Unknown, RemainingCapacity: 3000, PresentVoltage: 12000}
	dst := make([]byte, BstSize)
	if n, err := bst.ToBytes(dst); err != nil || n != BstSize {
		t.Fatalf("_BST: %d %v", n, err)
	}
	if dst[0] != 0x02 || binary.LittleEndian.Uint32(dst[4:]) != Unknown || binary.LittleEndian.Uint32(dst[12:]) != 12000 {
		t.Fatalf("_BST % X", dst)
	}
	if _, err := bst.ToBytes(dst[:BstSize-1]); !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("_BST short: %v", err)
	}

	psr := PsrReturn{PowerSource: Online}
	dst = make([]byte, PsrSize)
	if _, err := psr.ToBytes(dst); err != nil || !bytes.Equal(dst, []byte{1, 0, 0, 0}) {
		t.Fatalf("_PSR % X %v", dst, err)
	}

	bps := Bps{Revision: 1, InstantaneousPeakPowerLevel: 45000, InstantaneousPeakPowerPeriod: 10}
	dst = make([]byte, BpsSize)
	if n, err := bps.ToBytes(dst); err != nil || n != BpsSize || binary.LittleEndian.Uint32(dst[4:]) != 45000 {
		t.Fatalf("_BPS % X %v", dst, err)
	}

	bmd := Bmd{Status: BmdChargingDisabled, Capabilities: BmdChargerDisableSupported | BmdGlobalControl, SlowRecalibrateTime: Unknown}
	dst = make([]byte, BmdSize)
	if n, err := bmd.ToBytes(dst); err != nil || n != BmdSize {
		t.Fatalf("_BMD %v", err)
	}
	if dst[0] != 0x02 || dst[4] != 0x0A || binary.LittleEndian.Uint32(dst[16:]) != Unknown {
		t.Fatalf("_BMD % X", dst)
	}
}

func TestBpcValidate(t *testing.T) {
	bpc := Bpc{
		Revision:                           1,
		PowerThresholdSupport:              ThresholdSupportInstantaneous,
		MaxInstantaneousPeakPowerThreshold: 60000,
	}
	dst := make([]byte, BpcSize)
	if n, err := bpc.ToBytes(dst); err != nil || n != BpcSize || dst[4] != 1 {
		t.Fatalf("_BPC % X %v", dst, err)
	}

	cases := []struct {
		req  Bpt
		want BptReturnStatus
	}{
		{Bpt{Revision: 1, ThresholdID: ThresholdInstantaneousPeakPower, ThresholdValue: 50000}, BptSuccess},
		{Bpt{Revision: 1, ThresholdID: ThresholdInstantaneousPeakPower, ThresholdValue: 70000}, BptInvalidThresholdValue},
		{Bpt{Revision: 1, ThresholdID: ThresholdSustainablePeakPower, ThresholdValue: 1}, BptUnsupportedThresholdType},
		{Bpt{Revision: 1, ThresholdID: 9}, BptUnsupportedThresholdType},
		{Bpt{Revision: 2, ThresholdID: ThresholdClearAll}, BptUnsupportedRevision},
		{Bpt{Revision: 1, ThresholdID: ThresholdClearAll}, BptSuccess},
	}
	for i, c := range cases {
		if got := bpc.Validate(c.req); got != c.want {
			t.Errorf("case %d: got %d want %d", i, got, c.want)
		}
	}
}

func TestRequestDecoders(t *testing.T) {
	raw := []byte{1, 0, 0, 0, 2, 0, 0, 0, 0x10, 0x27, 0, 0}
	bpt, err := BptFromBytes(raw)
	if err != nil || bpt.Revision != 1 || bpt.ThresholdID != ThresholdSustainablePeakPower || bpt.ThresholdValue != 10000 {
		t.Fatalf("_BPT %+v %v", bpt, err)
	}
	if _, err := BptFromBytes(raw[:11]); !errors.Is(err, ErrShortInput) {
		t.Fatalf("_BPT short: %v", err)
	}
	btp, err := BtpFromBytes(raw[8:])
	if err != nil || btp.TripPoint != 10000 {
		t.Fatalf("_BTP %+v %v", btp, err)
	}
	bmc, err := BmcFromBytes([]byte{0x06, 0, 0, 0})
	if err != nil || !bmc.MaintenanceControlFlags.Has(BmcDisableCharging|BmcAllowDischargeOnAC) || bmc.MaintenanceControlFlags.Has(BmcCalibrationCycle) {
		t.Fatalf("_BMC %+v %v", bmc, err)
	}
}

func TestResults(t *testing.T) {
	if _, ok := BctResult(0).Seconds(); ok {
		t.Fatal("invalid target has no estimate")
	}
	if _, ok := BctResult(Unknown).Seconds(); ok {
		t.Fatal("unknown has no estimate")
	}
	if s, ok := BctResult(3600).Seconds(); !ok || s != 3600 {
		t.Fatalf("estimate %d %v", s, ok)
	}
	if BtmResult(0).String() != "rate_too_high_or_critical" || BtmResult(90).String() != "90s" {
		t.Fatalf("strings %s %s", BtmResult(0), BtmResult(90))
	}
	if CheckRange(0, 0, 100) != MeasurementOutOfRange || CheckRange(50, 10, 100) != MeasurementSuccess || CheckRange(101, 10, 100) != MeasurementOutOfRange {
		t.Fatal("CheckRange")
	}
}
