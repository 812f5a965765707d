package acpi

import "fmt"

// BmcControlFlags is the _BMC argument.
type BmcControlFlags uint32

const (
	BmcCalibrationCycle      BmcControlFlags = 1 << 0
	BmcDisableCharging       BmcControlFlags = 1 << 1
	BmcAllowDischargeOnAC    BmcControlFlags = 1 << 2
	BmcSuspendChargeLimiting BmcControlFlags = 1 << 3
)

func (f BmcControlFlags) Has(flag BmcControlFlags) bool { return f&flag == flag }

type Bmc struct {
	MaintenanceControlFlags BmcControlFlags
}

func BmcFromBytes(src []byte) (Bmc, error) {
	var w uint32
	err := decode("_BMC", src, &w)
	return Bmc{MaintenanceControlFlags: BmcControlFlags(w)}, err
}

type BmdStatusFlags uint32

const (
	BmdAMLCalibrationActive   BmdStatusFlags = 1 << 0
	BmdChargingDisabled       BmdStatusFlags = 1 << 1
	BmdDischargeOnAC          BmdStatusFlags = 1 << 2
	BmdRecalibrationNeeded    BmdStatusFlags = 1 << 3
	BmdStandbyRecommended     BmdStatusFlags = 1 << 4
	BmdChargeLimitThermalLock BmdStatusFlags = 1 << 5
	BmdChargeLimitProtectLock BmdStatusFlags = 1 << 6
)

type BmdCapabilityFlags uint32

const (
	BmdAMLCalibrationSupported     BmdCapabilityFlags = 1 << 0
	BmdChargerDisableSupported     BmdCapabilityFlags = 1 << 1
	BmdDischargeOnACSupported      BmdCapabilityFlags = 1 << 2
	BmdGlobalControl               BmdCapabilityFlags = 1 << 3
	BmdFullChargeBeforeCalibration BmdCapabilityFlags = 1 << 4
	BmdChargeLimitSuspendSupported BmdCapabilityFlags = 1 << 5
)

// Bmd is the _BMD package. RecalibrateCount 0 means calibrate only when
// BmdRecalibrationNeeded is set. The recalibrate times are in seconds with
// Unknown for "time unknown".
type Bmd struct {
	Status               BmdStatusFlags
	Capabilities         BmdCapabilityFlags
	RecalibrateCount     uint32
	QuickRecalibrateTime uint32
	SlowRecalibrateTime  uint32
}

const BmdSize = 20

func (b *Bmd) ToBytes(dst []byte) (int, error) {
	return encode("_BMD", dst, []uint32{
		uint32(b.Status),
		uint32(b.Capabilities),
		b.RecalibrateCount,
		b.QuickRecalibrateTime,
		b.SlowRecalibrateTime,
	})
}

// Bct is the _BCT argument: target charge as % of last full charge (1-100).
type Bct struct {
	ChargeLevelPercent uint32
}

// BctResult is the _BCT return value. 0 means the target is invalid and
// Unknown means the time cannot be estimated; anything else is seconds.
type BctResult uint32

const BctInvalidTarget BctResult = 0

// Seconds returns the estimate and whether the result carries one.
func (r BctResult) Seconds() (uint32, bool) {
	return uint32(r), r != BctInvalidTarget && uint32(r) != Unknown
}

func (r BctResult) String() string {
	switch {
	case r == BctInvalidTarget:
		return "invalid_target"
	case uint32(r) == Unknown:
		return "unknown"
	}
	return fmt.Sprintf("%ds", uint32(r))
}

// Btm is the _BTM argument: discharge rate in mA or mW, 0 for the present
// average rate.
type Btm struct {
	DischargeRate uint32
}

// BtmResult is the _BTM return value. 0 means the rate is too high (or the
// battery is critical when the rate was 0); Unknown means unknown.
type BtmResult uint32

const BtmRateTooHighOrCritical BtmResult = 0

func (r BtmResult) Seconds() (uint32, bool) {
	return uint32(r), r != BtmRateTooHighOrCritical && uint32(r) != Unknown
}

func (r BtmResult) String() string {
	switch {
	case r == BtmRateTooHighOrCritical:
		return "rate_too_high_or_critical"
	case uint32(r) == Unknown:
		return "unknown"
	}
	return fmt.Sprintf("%ds", uint32(r))
}

// Bms is the _BMS argument: sampling time in ms.
type Bms struct {
	SamplingTimeMs uint32
}

// Bma is the _BMA argument: averaging interval in ms.
type Bma struct {
	AveragingIntervalMs uint32
}

// MeasurementResult is the result of _BMS and _BMA.
type MeasurementResult uint32

const (
	MeasurementSuccess    MeasurementResult = 0
	MeasurementOutOfRange MeasurementResult = 1
)

// BmsResult and BmaResult share the same codes.
type (
	BmsResult = MeasurementResult
	BmaResult = MeasurementResult
)

// CheckRange validates a _BMS or _BMA request against the supported
// [lo, hi] window. Zero is never valid.
func CheckRange(v, lo, hi uint32) MeasurementResult {
	if v == 0 || v < lo || v > hi {
		return MeasurementOutOfRange
	}
	return MeasurementSuccess
}
