package charger

// ModeFields is the ChargerMode() word (0x12). Write-only on the device.
type ModeFields uint16

const (
	InhibitCharge ModeFields = 1 << 0
	EnablePolling ModeFields = 1 << 1
	PORReset      ModeFields = 1 << 2
	ResetToZero   ModeFields = 1 << 3
)

func (m ModeFields) Has(flag ModeFields) bool { return m&flag == flag }

// StatusFields is the ChargerStatus() word (0x13).
type StatusFields uint16

const (
	ChargeInhibited StatusFields = 1 << 0
	MasterMode      StatusFields = 1 << 1
	VoltageNotReg   StatusFields = 1 << 2
	CurrentNotReg   StatusFields = 1 << 3
	Level2          StatusFields = 1 << 4
	Level3          StatusFields = 1 << 5
	CurrentOR       StatusFields = 1 << 6
	VoltageOR       StatusFields = 1 << 7
	ResOR           StatusFields = 1 << 8  // thermistor open
	ResCold         StatusFields = 1 << 9  // thermistor cold
	ResHot          StatusFields = 1 << 10 // thermistor hot
	ResUR           StatusFields = 1 << 11 // thermistor under range
	AlarmInhibited  StatusFields = 1 << 12
	PowerFail       StatusFields = 1 << 13
	BatteryPresent  StatusFields = 1 << 14
	ACPresent       StatusFields = 1 << 15
)

func (s StatusFields) Has(flag StatusFields) bool { return s&flag == flag }

var statusNames = [...]struct {
	bit  StatusFields
	name string
}{
	{ChargeInhibited, "charge_inhibited"},
	{MasterMode, "master_mode"},
	{VoltageNotReg, "voltage_notreg"},
	{CurrentNotReg, "current_notreg"},
	{Level2, "level_2"},
	{Level3, "level_3"},
	{CurrentOR, "current_or"},
	{VoltageOR, "voltage_or"},
	{ResOR, "res_or"},
	{ResCold, "res_cold"},
	{ResHot, "res_hot"},
	{ResUR, "res_ur"},
	{AlarmInhibited, "alarm_inhibited"},
	{PowerFail, "power_fail"},
	{BatteryPresent, "battery_present"},
	{ACPresent, "ac_present"},
}

// Names lists the set flags in bit order.
func (s StatusFields) Names() []string {
	var out []string
	for _, e := range statusNames {
		if s.Has(e.bit) {
			out = append(out, e.name)
		}
	}
	return out
}
