package smartbattery

// CapacityMode selects the unit family of capacity and rate values. It is
// mirrored by the CAPACITY_MODE bit of BatteryMode.
type CapacityMode uint8

const (
	// CurrentBased values are mA / mAh.
	CurrentBased CapacityMode = iota
	// PowerBased values are 10 mW / 10 mWh.
	PowerBased
)

func (m CapacityMode) String() string {
	if m == PowerBased {
		return "power"
	}
	return "current"
}

// CapacityModeValue is an unsigned capacity whose unit depends on the
// battery's capacity mode. The tag is set by whoever constructs the value;
// the raw number itself carries no unit, so caller and device must agree on
// the mode out of band.
type CapacityModeValue struct {
	Mode CapacityMode
	raw  uint16
}

// MilliAmpUnsigned builds a current-based capacity (mA or mAh).
func MilliAmpUnsigned(v MilliAmps) CapacityModeValue {
	return CapacityModeValue{Mode: CurrentBased, raw: v}
}

// CentiWattUnsigned builds a power-based capacity (10 mW or 10 mWh).
func CentiWattUnsigned(v CentiWatts) CapacityModeValue {
	return CapacityModeValue{Mode: PowerBased, raw: v}
}

// NewCapacityModeValue tags raw with mode.
func NewCapacityModeValue(mode CapacityMode, raw uint16) CapacityModeValue {
	return CapacityModeValue{Mode: mode, raw: raw}
}

// MilliAmps returns the value if it is current-based.
func (c CapacityModeValue) MilliAmps() (MilliAmps, bool) {
	return c.raw, c.Mode == CurrentBased
}

// CentiWatts returns the value if it is power-based.
func (c CapacityModeValue) CentiWatts() (CentiWatts, bool) {
	return c.raw, c.Mode == PowerBased
}

// Raw returns the register word regardless of mode.
func (c CapacityModeValue) Raw() uint16 { return c.raw }

// CapacityModeSignedValue is the signed counterpart used for rates, where a
// negative value means discharge.
type CapacityModeSignedValue struct {
	Mode CapacityMode
	raw  int16
}

// MilliAmpSigned builds a current-based rate in mA.
func MilliAmpSigned(v MilliAmpsSigned) CapacityModeSignedValue {
	return CapacityModeSignedValue{Mode: CurrentBased, raw: v}
}

// CentiWattSigned builds a power-based rate in 10 mW.
func CentiWattSigned(v CentiWattsSigned) CapacityModeSignedValue {
	return CapacityModeSignedValue{Mode: PowerBased, raw: v}
}

// NewCapacityModeSignedValue tags raw with mode.
func NewCapacityModeSignedValue(mode CapacityMode, raw int16) CapacityModeSignedValue {
	return CapacityModeSignedValue{Mode: mode, raw: raw}
}

// MilliAmps returns the value if it is current-based.
func (c CapacityModeSignedValue) MilliAmps() (MilliAmpsSigned, bool) {
	return c.raw, c.Mode == CurrentBased
}

// CentiWatts returns the value if it is power-based.
func (c CapacityModeSignedValue) CentiWatts() (CentiWattsSigned, bool) {
	return c.raw, c.Mode == PowerBased
}

// Raw returns the register value regardless of mode.
func (c CapacityModeSignedValue) Raw() int16 { return c.raw }
