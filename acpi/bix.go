package acpi

// PowerUnit selects the unit of capacities and rates.
type PowerUnit uint32

const (
	PowerUnitMilliWatts PowerUnit = 0 // mWh / mW
	PowerUnitMilliAmps  PowerUnit = 1 // mAh / mA
)

func (u PowerUnit) String() string {
	if u == PowerUnitMilliAmps {
		return "mA"
	}
	return "mW"
}

type BatteryTechnology uint32

const (
	Primary   BatteryTechnology = 0 // non-rechargeable
	Secondary BatteryTechnology = 1 // rechargeable
)

type BatterySwapCapability uint32

const (
	NonSwappable  BatterySwapCapability = 0
	ColdSwappable BatterySwapCapability = 1
	HotSwappable  BatterySwapCapability = 2
)

// BixRevision is the current _BIX revision.
const BixRevision = 1

// BixHeaderSize is the length of the sixteen fixed words of _BIX.
const BixHeaderSize = 64

// BixReturn is the _BIX package: static information that holds until the
// battery is replaced.
//
// MeasurementAccuracy is in thousandths of a percent (80000 = 80.000%).
// Sampling times and averaging intervals are in ms.
type BixReturn struct {
	Revision                uint32
	PowerUnit               PowerUnit
	DesignCapacity          uint32
	LastFullChargeCapacity  uint32
	Technology              BatteryTechnology
	DesignVoltage           uint32
	DesignCapacityOfWarning uint32
	DesignCapacityOfLow     uint32
	CycleCount              uint32
	MeasurementAccuracy     uint32
	MaxSamplingTime         uint32
	MinSamplingTime         uint32
	MaxAveragingInterval    uint32
	MinAveragingInterval    uint32
	CapacityGranularity1    uint32
	CapacityGranularity2    uint32
	ModelNumber             []byte
	SerialNumber            []byte
	BatteryType             []byte
	OEMInfo                 []byte
	SwappingCapability      BatterySwapCapability
}

// Size returns the encoded length for the given string lengths.
func (b *BixReturn) Size(modelLen, serialLen, typeLen, oemLen int) int {
	return BixHeaderSize + modelLen + serialLen + typeLen + oemLen
}

// ToBytes writes the 64-byte header followed by the model number, serial
// number, battery type and OEM info, unpadded. Each length must equal the
// length of the matching slice. SwappingCapability is not encoded.
func (b *BixReturn) ToBytes(dst []byte, modelLen, serialLen, typeLen, oemLen int) (int, error) {
	header := []uint32{
		b.Revision,
		uint32(b.PowerUnit),
		b.DesignCapacity,
		b.LastFullChargeCapacity,
		uint32(b.Technology),
		b.DesignVoltage,
		b.DesignCapacityOfWarning,
		b.DesignCapacityOfLow,
		b.CycleCount,
		b.MeasurementAccuracy,
		b.MaxSamplingTime,
		b.MinSamplingTime,
		b.MaxAveragingInterval,
		b.MinAveragingInterval,
		b.CapacityGranularity1,
		b.CapacityGranularity2,
	}
	return encode("_BIX", dst, header,
		varField{"model_number", b.ModelNumber, modelLen},
		varField{"serial_number", b.SerialNumber, serialLen},
		varField{"battery_type", b.BatteryType, typeLen},
		varField{"oem_info", b.OEMInfo, oemLen},
	)
}
