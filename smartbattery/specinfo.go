package smartbattery

import "embedded-batteries-go/internal/bitfield"

// Revision is the SBS data revision nibble of SpecificationInfo.
type Revision uint8

const (
	// RevisionV1 is the only revision defined by SBS 1.x.
	RevisionV1 Revision = 1
	// RevisionReserved stands for every other bit pattern.
	RevisionReserved Revision = 0xFF
)

// RevisionFromBits maps the nibble to RevisionV1 or RevisionReserved.
func RevisionFromBits(bits uint8) Revision {
	if bits&0x0F == uint8(RevisionV1) {
		return RevisionV1
	}
	return RevisionReserved
}

func (r Revision) String() string {
	if r == RevisionV1 {
		return "1"
	}
	return "reserved"
}

// Version is the SBS specification version nibble.
type Version uint8

const (
	VersionUnknown    Version = 0
	Version1_0        Version = 1
	Version1_1        Version = 2
	Version1_1WithPEC Version = 3
)

// VersionFromBits maps 1..3 to a known version and everything else to
// VersionUnknown.
func VersionFromBits(bits uint8) Version {
	switch v := Version(bits & 0x0F); v {
	case Version1_0, Version1_1, Version1_1WithPEC:
		return v
	default:
		return VersionUnknown
	}
}

func (v Version) String() string {
	switch v {
	case Version1_0:
		return "1.0"
	case Version1_1:
		return "1.1"
	case Version1_1WithPEC:
		return "1.1+PEC"
	default:
		return "unknown"
	}
}

// SpecificationInfoFields is the SpecificationInfo() word (0x1A).
//
//	bits 0-3   Revision
//	bits 4-7   Version
//	bits 8-11  VScale  (voltages are multiplied by 10^VScale)
//	bits 12-15 IPScale (currents and capacities are multiplied by 10^IPScale)
//
// The scales do not apply to ChargingCurrent and ChargingVoltage.
type SpecificationInfoFields uint16

const (
	revisionShift = 0
	versionShift  = 4
	vScaleShift   = 8
	ipScaleShift  = 12
	nibble        = 4
)

// NewSpecificationInfo packs the four nibbles. Unknown revision/version
// constants encode as 0.
func NewSpecificationInfo(rev Revision, ver Version, vScale, ipScale uint8) SpecificationInfoFields {
	var s SpecificationInfoFields
	s.SetRevision(rev)
	s.SetVersion(ver)
	s.SetVScale(vScale)
	s.SetIPScale(ipScale)
	return s
}

// Bits returns the register word.
func (s SpecificationInfoFields) Bits() uint16 { return uint16(s) }

func (s SpecificationInfoFields) get(shift uint) uint8 {
	return uint8(bitfield.Get(uint16(s), shift, nibble))
}

func (s *SpecificationInfoFields) set(shift uint, v uint8) {
	*s = SpecificationInfoFields(bitfield.Set(uint16(*s), shift, nibble, uint16(v)))
}

func (s SpecificationInfoFields) Revision() Revision { return RevisionFromBits(s.get(revisionShift)) }

// RevisionBits returns the undecoded revision nibble.
func (s SpecificationInfoFields) RevisionBits() uint8 { return s.get(revisionShift) }

func (s *SpecificationInfoFields) SetRevision(r Revision) {
	if r == RevisionReserved {
		r = 0
	}
	s.set(revisionShift, uint8(r))
}

func (s SpecificationInfoFields) Version() Version { return VersionFromBits(s.get(versionShift)) }

func (s *SpecificationInfoFields) SetVersion(v Version) { s.set(versionShift, uint8(v)) }

func (s SpecificationInfoFields) VScale() uint8             { return s.get(vScaleShift) }
func (s *SpecificationInfoFields) SetVScale(v uint8)        { s.set(vScaleShift, v) }
func (s SpecificationInfoFields) IPScale() uint8            { return s.get(ipScaleShift) }
func (s *SpecificationInfoFields) SetIPScale(v uint8)       { s.set(ipScaleShift, v) }
func (s SpecificationInfoFields) SupportsPEC() bool         { return s.Version() == Version1_1WithPEC }
func (s SpecificationInfoFields) VoltageMultiplier() uint32 { return pow10(s.VScale()) }

// CurrentMultiplier also applies to capacities; power scales by the product
// of both multipliers.
func (s SpecificationInfoFields) CurrentMultiplier() uint32 { return pow10(s.IPScale()) }

// pow10 saturates past 10^9, which no SBS scale reaches (defined range 0..3).
func pow10(n uint8) uint32 {
	if n > 9 {
		n = 9
	}
	v := uint32(1)
	for ; n > 0; n-- {
		v *= 10
	}
	return v
}
