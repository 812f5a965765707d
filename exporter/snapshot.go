package exporter

import (
	"context"

	"embedded-batteries-go/async"
	sb "embedded-batteries-go/smartbattery"
)

// Snapshot is every readable battery register in one pass. Zero values
// remain where individual reads fail; Failed names those registers.
type Snapshot struct {
	Manufacturer string `json:"manufacturer"`
	Device       string `json:"device"`
	Chemistry    string `json:"chemistry"`
	Serial       uint16 `json:"serial"`
	Manufactured string `json:"manufactured,omitempty"`
	Version      string `json:"sbs_version"`

	CapacityMode string   `json:"capacity_mode,omitempty"`
	Mode         []string `json:"mode,omitempty"`
	Status       []string `json:"status,omitempty"`
	ErrorCode    string   `json:"error_code,omitempty"`

	Voltage_mV        uint16 `json:"voltage_mv"`
	Current_mA        int16  `json:"current_ma"`
	AverageCurrent_mA int16  `json:"average_current_ma"`
	Temperature_mC    int32  `json:"temperature_mc"`

	RelativeSOC uint8 `json:"relative_soc"`
	AbsoluteSOC uint8 `json:"absolute_soc"`
	MaxError    uint8 `json:"max_error"`

	// In CapacityMode units: mAh or 10 mWh.
	RemainingCapacity  uint16 `json:"remaining_capacity"`
	FullChargeCapacity uint16 `json:"full_charge_capacity"`
	DesignCapacity     uint16 `json:"design_capacity"`
	DesignVoltage_mV   uint16 `json:"design_voltage_mv"`

	RunTimeToEmpty_min     uint16 `json:"run_time_to_empty_min"`
	AverageTimeToEmpty_min uint16 `json:"average_time_to_empty_min"`
	AverageTimeToFull_min  uint16 `json:"average_time_to_full_min"`

	ChargingCurrent_mA uint16 `json:"charging_current_ma"`
	ChargingVoltage_mV uint16 `json:"charging_voltage_mv"`
	CycleCount         uint16 `json:"cycle_count"`

	Failed map[string]string `json:"failed,omitempty"`
}

// OK reports whether the named register was read.
func (s *Snapshot) OK(register string) bool {
	_, failed := s.Failed[register]
	return !failed
}

func (s *Snapshot) fail(register string, err error) {
	if s.Failed == nil {
		s.Failed = make(map[string]string)
	}
	s.Failed[register] = err.Error()
}

func get[T any](ctx context.Context, s *Snapshot, register string, read func(context.Context) (T, error)) T {
	v, err := read(ctx)
	if err != nil {
		s.fail(register, err)
	}
	return v
}

func text(ctx context.Context, s *Snapshot, register string, read func(context.Context, []byte) error) string {
	var buf [sb.MaxStringLen + 1]byte
	if err := read(ctx, buf[:]); err != nil {
		s.fail(register, err)
		return ""
	}
	return sb.CString(buf[:])
}

// Read takes a snapshot of bat.
func Read(ctx context.Context, bat async.SmartBattery) Snapshot {
	var s Snapshot

	s.Manufacturer = text(ctx, &s, "manufacturer_name", bat.ManufacturerName)
	s.Device = text(ctx, &s, "device_name", bat.DeviceName)
	s.Chemistry = text(ctx, &s, "device_chemistry", bat.DeviceChemistry)
	s.Serial = get(ctx, &s, "serial_number", bat.SerialNumber)
	if d := get(ctx, &s, "manufacture_date", bat.ManufactureDate); s.OK("manufacture_date") {
		s.Manufactured = d.String()
	}
	if v := get(ctx, &s, "specification_info", bat.SpecificationInfo); s.OK("specification_info") {
		s.Version = v.Version().String()
	}

	if mode := get(ctx, &s, "battery_mode", bat.BatteryMode); s.OK("battery_mode") {
		s.CapacityMode = mode.CapacityMode().String()
		s.Mode = mode.Names()
	}
	if status := get(ctx, &s, "battery_status", bat.BatteryStatus); s.OK("battery_status") {
		s.Status = status.Names()
		s.ErrorCode = status.ErrorCode().String()
	}

	s.Voltage_mV = get(ctx, &s, "voltage", bat.Voltage)
	s.Current_mA = get(ctx, &s, "current", bat.Current)
	s.AverageCurrent_mA = get(ctx, &s, "average_current", bat.AverageCurrent)
	if t := get(ctx, &s, "temperature", bat.Temperature); s.OK("temperature") {
		s.Temperature_mC = t.MilliCelsius()
	}

	s.RelativeSOC = get(ctx, &s, "relative_state_of_charge", bat.RelativeStateOfCharge)
	s.AbsoluteSOC = get(ctx, &s, "absolute_state_of_charge", bat.AbsoluteStateOfCharge)
	s.MaxError = get(ctx, &s, "max_error", bat.MaxError)

	s.RemainingCapacity = get(ctx, &s, "remaining_capacity", bat.RemainingCapacity).Raw()
	s.FullChargeCapacity = get(ctx, &s, "full_charge_capacity", bat.FullChargeCapacity).Raw()
	s.DesignCapacity = get(ctx, &s, "design_capacity", bat.DesignCapacity).Raw()
	s.DesignVoltage_mV = get(ctx, &s, "design_voltage", bat.DesignVoltage)

	s.RunTimeToEmpty_min = get(ctx, &s, "run_time_to_empty", bat.RunTimeToEmpty)
	s.AverageTimeToEmpty_min = get(ctx, &s, "average_time_to_empty", bat.AverageTimeToEmpty)
	s.AverageTimeToFull_min = get(ctx, &s, "average_time_to_full", bat.AverageTimeToFull)

	s.ChargingCurrent_mA = get(ctx, &s, "charging_current", bat.ChargingCurrent)
	s.ChargingVoltage_mV = get(ctx, &s, "charging_voltage", bat.ChargingVoltage)
	s.CycleCount = get(ctx, &s, "cycle_count", bat.CycleCount)
	return s
}
