package acpi

// PowerSource is the _PSR result.
type PowerSource uint32

const (
	Offline PowerSource = 0
	Online  PowerSource = 1
)

// PsrReturn is the _PSR package.
type PsrReturn struct {
	PowerSource PowerSource
}

const PsrSize = 4

func (p *PsrReturn) ToBytes(dst []byte) (int, error) {
	return encode("_PSR", dst, []uint32{uint32(p.PowerSource)})
}

// PowerSourceState is the _PIF state word.
type PowerSourceState uint32

const (
	PowerSourceRedundant PowerSourceState = 1 << 0
	PowerSourceShared    PowerSourceState = 1 << 1
)

func (s PowerSourceState) Has(flag PowerSourceState) bool { return s&flag == flag }

// PifHeaderSize is the length of the three fixed words of _PIF.
const PifHeaderSize = 12

// Pif is the _PIF package describing a power source. Power values are in mW;
// Unknown means unavailable. Empty strings are allowed.
type Pif struct {
	State          PowerSourceState
	MaxOutputPower uint32
	MaxInputPower  uint32
	ModelNumber    []byte
	SerialNumber   []byte
	OEMInfo        []byte
}

func (p *Pif) Size(modelLen, serialLen, oemLen int) int {
	return PifHeaderSize + modelLen + serialLen + oemLen
}

// ToBytes writes the 12-byte header followed by the model number, serial
// number and OEM info, unpadded.
func (p *Pif) ToBytes(dst []byte, modelLen, serialLen, oemLen int) (int, error) {
	return encode("_PIF", dst, []uint32{uint32(p.State), p.MaxOutputPower, p.MaxInputPower},
		varField{"model_number", p.ModelNumber, modelLen},
		varField{"serial_number", p.SerialNumber, serialLen},
		varField{"oem_info", p.OEMInfo, oemLen},
	)
}

// Bps is the _BPS package (battery power source). Levels are in mW or mA
// per the _BIX power unit; periods in ms. Zero means unsupported.
type Bps struct {
	Revision                     uint32
	InstantaneousPeakPowerLevel  uint32
	InstantaneousPeakPowerPeriod uint32
	SustainablePeakPowerLevel    uint32
	SustainablePeakPowerPeriod   uint32
}

const BpsSize = 20

func (b *Bps) ToBytes(dst []byte) (int, error) {
	return encode("_BPS", dst, []uint32{
		b.Revision,
		b.InstantaneousPeakPowerLevel,
		b.InstantaneousPeakPowerPeriod,
		b.SustainablePeakPowerLevel,
		b.SustainablePeakPowerPeriod,
	})
}

// Btp is the _BTP argument. 0 clears the trip point; 1..0x7FFFFFFF sets it.
type Btp struct {
	TripPoint uint32
}

func BtpFromBytes(src []byte) (Btp, error) {
	var b Btp
	err := decode("_BTP", src, &b.TripPoint)
	return b, err
}

type ThresholdID uint32

const (
	ThresholdClearAll               ThresholdID = 0
	ThresholdInstantaneousPeakPower ThresholdID = 1
	ThresholdSustainablePeakPower   ThresholdID = 2
)

// Bpt is the _BPT argument package. A zero value disables the threshold.
type Bpt struct {
	Revision       uint32
	ThresholdID    ThresholdID
	ThresholdValue uint32
}

func BptFromBytes(src []byte) (Bpt, error) {
	var b Bpt
	var id uint32
	err := decode("_BPT", src, &b.Revision, &id, &b.ThresholdValue)
	b.ThresholdID = ThresholdID(id)
	return b, err
}

// BptReturnStatus is the _BPT result code.
type BptReturnStatus uint32

const (
	BptSuccess                  BptReturnStatus = 0
	BptInvalidThresholdValue    BptReturnStatus = 1
	BptHardwareTimeout          BptReturnStatus = 2
	BptUnknownHardwareError     BptReturnStatus = 3
	BptUnsupportedThresholdType BptReturnStatus = 4
	BptUnsupportedRevision      BptReturnStatus = 5
)

// PowerThresholdSupport is the _BPC capability word.
type PowerThresholdSupport uint32

const (
	ThresholdSupportInstantaneous PowerThresholdSupport = 1 << 0
	ThresholdSupportSustainable   PowerThresholdSupport = 1 << 1
)

func (s PowerThresholdSupport) Has(flag PowerThresholdSupport) bool { return s&flag == flag }

// Bpc is the _BPC package.
type Bpc struct {
	Revision                           uint32
	PowerThresholdSupport              PowerThresholdSupport
	MaxInstantaneousPeakPowerThreshold uint32
	MaxSustainablePeakPowerThreshold   uint32
}

const BpcSize = 16

func (b *Bpc) ToBytes(dst []byte) (int, error) {
	return encode("_BPC", dst, []uint32{
		b.Revision,
		uint32(b.PowerThresholdSupport),
		b.MaxInstantaneousPeakPowerThreshold,
		b.MaxSustainablePeakPowerThreshold,
	})
}

// Validate checks a _BPT request against the limits reported here.
func (b *Bpc) Validate(req Bpt) BptReturnStatus {
	if req.Revision != 1 {
		return BptUnsupportedRevision
	}
	switch req.ThresholdID {
	case ThresholdClearAll:
		return BptSuccess
	case ThresholdInstantaneousPeakPower:
		if !b.PowerThresholdSupport.Has(ThresholdSupportInstantaneous) {
			return BptUnsupportedThresholdType
		}
		if req.ThresholdValue > b.MaxInstantaneousPeakPowerThreshold {
			return BptInvalidThresholdValue
		}
	case ThresholdSustainablePeakPower:
		if !b.PowerThresholdSupport.Has(ThresholdSupportSustainable) {
			return BptUnsupportedThresholdType
		}
		if req.ThresholdValue > b.MaxSustainablePeakPowerThreshold {
			return BptInvalidThresholdValue
		}
	default:
		return BptUnsupportedThresholdType
	}
	return BptSuccess
}
