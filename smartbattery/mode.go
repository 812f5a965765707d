package smartbattery

// BatteryModeFields is the BatteryMode() word (0x03).
//
// Bits 0, 1 and 7 are owned by the battery firmware; the host must leave them
// alone when writing. Bits 2-6 and 10-12 are reserved.
type BatteryModeFields uint16

const (
	InternalChargeController BatteryModeFields = 1 << 0 // R: internal charge controller supported
	PrimaryBatterySupport    BatteryModeFields = 1 << 1 // R: can act as primary or secondary battery
	ConditionFlag            BatteryModeFields = 1 << 7 // R: conditioning cycle requested
	ChargeControllerEnabled  BatteryModeFields = 1 << 8 // R/W
	PrimaryBattery           BatteryModeFields = 1 << 9 // R/W: operating as the primary battery
	AlarmMode                BatteryModeFields = 1 << 13
	ChargerMode              BatteryModeFields = 1 << 14
	CapacityModeFlag         BatteryModeFields = 1 << 15

	// BatteryModeWritable covers the bits a host may change.
	BatteryModeWritable = ChargeControllerEnabled | PrimaryBattery | AlarmMode | ChargerMode | CapacityModeFlag
	// BatteryModeReserved covers bits 2-6 and 10-12.
	BatteryModeReserved BatteryModeFields = 0x1C7C
)

func (m BatteryModeFields) Has(flag BatteryModeFields) bool { return m&flag == flag }

// With returns m with flag set.
func (m BatteryModeFields) With(flag BatteryModeFields) BatteryModeFields { return m | flag }

// Without returns m with flag cleared.
func (m BatteryModeFields) Without(flag BatteryModeFields) BatteryModeFields { return m &^ flag }

// Bits returns the register word.
func (m BatteryModeFields) Bits() uint16 { return uint16(m) }

// CapacityMode reports which unit family capacity and rate reads use.
func (m BatteryModeFields) CapacityMode() CapacityMode {
	if m.Has(CapacityModeFlag) {
		return PowerBased
	}
	return CurrentBased
}

// SetCapacityMode sets or clears CAPACITY_MODE.
func (m *BatteryModeFields) SetCapacityMode(mode CapacityMode) {
	if mode == PowerBased {
		*m |= CapacityModeFlag
	} else {
		*m &^= CapacityModeFlag
	}
}

// Merge returns the host-writable bits of next combined with every other bit
// of m. Use it to build a write from a value just read from the device.
func (m BatteryModeFields) Merge(next BatteryModeFields) BatteryModeFields {
	return (m &^ BatteryModeWritable) | (next & BatteryModeWritable)
}

var batteryModeNames = [...]struct {
	bit  BatteryModeFields
	name string
}{
	{InternalChargeController, "internal_charge_controller"},
	{PrimaryBatterySupport, "primary_battery_support"},
	{ConditionFlag, "condition_flag"},
	{ChargeControllerEnabled, "charge_controller_enabled"},
	{PrimaryBattery, "primary_battery"},
	{AlarmMode, "alarm_mode"},
	{ChargerMode, "charger_mode"},
	{CapacityModeFlag, "capacity_mode"},
}

// Names lists the set flags in bit order.
func (m BatteryModeFields) Names() []string {
	var out []string
	for _, e := range batteryModeNames {
		if m.Has(e.bit) {
			out = append(out, e.name)
		}
	}
	return out
}
