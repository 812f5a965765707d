package acpi

// BatteryState is the _BST state word.
type BatteryState uint32

const (
	BatteryDischarging    BatteryState = 1 << 0
	BatteryCharging       BatteryState = 1 << 1
	BatteryCritical       BatteryState = 1 << 2
	BatteryChargeLimiting BatteryState = 1 << 3
)

func (s BatteryState) Has(flag BatteryState) bool { return s&flag == flag }

// BstReturn is the _BST package. Rate and capacity use the power unit
// reported by _BIX; Unknown marks a value that is not available.
type BstReturn struct {
	State             BatteryState
	PresentRate       uint32
	RemainingCapacity uint32
	PresentVoltage    uint32
}

// BstSize is the encoded length of BstReturn.
const BstSize = 16

// ToBytes writes the four words into dst.
func (b *BstReturn) ToBytes(dst []byte) (int, error) {
	return encode("_BST", dst, []uint32{uint32(b.State), b.PresentRate, b.RemainingCapacity, b.PresentVoltage})
}
