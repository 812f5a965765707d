package smartbattery

// SBS command codes.
const (
	CmdManufacturerAccess     byte = 0x00
	CmdRemainingCapacityAlarm byte = 0x01
	CmdRemainingTimeAlarm     byte = 0x02
	CmdBatteryMode            byte = 0x03
	CmdAtRate                 byte = 0x04
	CmdAtRateTimeToFull       byte = 0x05
	CmdAtRateTimeToEmpty      byte = 0x06
	CmdAtRateOK               byte = 0x07
	CmdTemperature            byte = 0x08
	CmdVoltage                byte = 0x09
	CmdCurrent                byte = 0x0A
	CmdAverageCurrent         byte = 0x0B
	CmdMaxError               byte = 0x0C
	CmdRelativeStateOfCharge  byte = 0x0D
	CmdAbsoluteStateOfCharge  byte = 0x0E
	CmdRemainingCapacity      byte = 0x0F
	CmdFullChargeCapacity     byte = 0x10
	CmdRunTimeToEmpty         byte = 0x11
	CmdAverageTimeToEmpty     byte = 0x12
	CmdAverageTimeToFull      byte = 0x13
	CmdChargingCurrent        byte = 0x14
	CmdChargingVoltage        byte = 0x15
	CmdBatteryStatus          byte = 0x16
	CmdCycleCount             byte = 0x17
	CmdDesignCapacity         byte = 0x18
	CmdDesignVoltage          byte = 0x19
	CmdSpecificationInfo      byte = 0x1A
	CmdManufactureDate        byte = 0x1B
	CmdSerialNumber           byte = 0x1C
	CmdManufacturerName       byte = 0x20
	CmdDeviceName             byte = 0x21
	CmdDeviceChemistry        byte = 0x22
	CmdManufacturerData       byte = 0x23
)

// Address is the 7-bit SMBus address of a Smart Battery.
const Address = 0x0B

// MaxStringLen is the longest SBS block string (32 bytes, excluding NUL).
const MaxStringLen = 32

// SmartBattery is the blocking Smart Battery register surface. Each call
// completes its bus transaction before returning. Implementations are not
// required to be safe for concurrent use; callers serialize access to the
// device (see package async for a worker that does this).
//
// Capacity and rate values are tagged with the capacity mode the battery was
// in; callers that switch CAPACITY_MODE must rewrite AtRate and the alarm
// thresholds in the new units.
type SmartBattery interface {
	// RemainingCapacityAlarm returns the low capacity threshold (0x01). Below
	// it the battery sends AlarmWarning with REMAINING_CAPACITY_ALARM set. 0
	// disables the alarm.
	RemainingCapacityAlarm() (CapacityModeValue, error)
	SetRemainingCapacityAlarm(capacity CapacityModeValue) error

	// RemainingTimeAlarm returns the remaining time threshold (0x02) checked
	// against AverageTimeToEmpty. 0 disables the alarm.
	RemainingTimeAlarm() (Minutes, error)
	SetRemainingTimeAlarm(time Minutes) error

	// BatteryMode returns the mode word (0x03). Writes must preserve the
	// read-only bits; see BatteryModeFields.Merge.
	BatteryMode() (BatteryModeFields, error)
	SetBatteryMode(flags BatteryModeFields) error

	// AtRate is the rate used by the AtRate* calculations (0x04), in mA or
	// 10 mW depending on CAPACITY_MODE. Negative means discharge.
	AtRate() (CapacityModeSignedValue, error)
	SetAtRate(rate CapacityModeSignedValue) error

	// AtRateTimeToFull predicts minutes to full at AtRate (0x05). 65535
	// means over range.
	AtRateTimeToFull() (Minutes, error)
	// AtRateTimeToEmpty predicts minutes to empty at AtRate (0x06).
	AtRateTimeToEmpty() (Minutes, error)
	// AtRateOK reports whether the battery can deliver AtRate for another 10
	// seconds (0x07). Always true when AtRate is zero or positive.
	AtRateOK() (bool, error)

	// Temperature is the pack temperature in 0.1 K (0x08).
	Temperature() (DeciKelvin, error)
	// Voltage is the pack voltage in mV (0x09).
	Voltage() (MilliVolts, error)
	// Current is the terminal current in mA, negative when discharging (0x0A).
	Current() (MilliAmpsSigned, error)
	// AverageCurrent is the one-minute rolling average of Current (0x0B).
	AverageCurrent() (MilliAmpsSigned, error)
	// MaxError is the expected error of the state-of-charge estimate (0x0C).
	MaxError() (Percent, error)
	// RelativeStateOfCharge is remaining capacity as % of FullChargeCapacity (0x0D).
	RelativeStateOfCharge() (Percent, error)
	// AbsoluteStateOfCharge is remaining capacity as % of DesignCapacity (0x0E).
	// It may exceed 100.
	AbsoluteStateOfCharge() (Percent, error)
	// RemainingCapacity is the predicted remaining capacity (0x0F).
	RemainingCapacity() (CapacityModeValue, error)
	// FullChargeCapacity is the predicted capacity when full (0x10).
	FullChargeCapacity() (CapacityModeValue, error)
	// RunTimeToEmpty is the predicted life at the present rate (0x11). 65535
	// means not discharging.
	RunTimeToEmpty() (Minutes, error)
	// AverageTimeToEmpty is the one-minute rolling average of RunTimeToEmpty
	// (0x12). 65535 means not discharging.
	AverageTimeToEmpty() (Minutes, error)
	// AverageTimeToFull is the one-minute rolling average time to full (0x13).
	// 65535 means not charging.
	AverageTimeToFull() (Minutes, error)
	// ChargingCurrent is the current the battery wants from the charger
	// (0x14). 65535 requests a constant-voltage source.
	ChargingCurrent() (MilliAmps, error)
	// ChargingVoltage is the voltage the battery wants from the charger
	// (0x15). 65535 requests a constant-current source.
	ChargingVoltage() (MilliVolts, error)
	// BatteryStatus returns the alarm and status word (0x16).
	BatteryStatus() (BatteryStatusFields, error)
	// CycleCount is the number of cycles experienced (0x17).
	CycleCount() (Cycles, error)
	// DesignCapacity is the theoretical capacity of a new pack (0x18).
	DesignCapacity() (CapacityModeValue, error)
	// DesignVoltage is the theoretical voltage of a new pack in mV (0x19).
	DesignVoltage() (MilliVolts, error)
	// SpecificationInfo returns the SBS version and scaling word (0x1A).
	SpecificationInfo() (SpecificationInfoFields, error)
	// ManufactureDate returns the packed manufacture date (0x1B).
	ManufactureDate() (ManufactureDate, error)
	// SerialNumber returns the pack serial number (0x1C).
	SerialNumber() (uint16, error)

	// ManufacturerName fills name with a NUL-terminated string (0x20).
	ManufacturerName(name []byte) error
	// DeviceName fills name with a NUL-terminated string (0x21).
	DeviceName(name []byte) error
	// DeviceChemistry fills chemistry with a NUL-terminated string, e.g.
	// "LION" (0x22).
	DeviceChemistry(chemistry []byte) error
}

// CString returns the bytes of b up to the first NUL.
func CString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
