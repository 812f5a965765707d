package exporter

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"embedded-batteries-go/async"
	sb "embedded-batteries-go/smartbattery"
)

const namespace = "sbs"

type gauge struct {
	desc     *prometheus.Desc
	register string
	value    func(*Snapshot) float64
}

// Collector reads the battery on every scrape.
type Collector struct {
	bat     async.SmartBattery
	name    string
	timeout time.Duration

	gauges   []gauge
	capacity *prometheus.Desc
	status   *prometheus.Desc
	failures *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func newDesc(name, help string, labels ...string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(namespace, "battery", name), help, append([]string{"battery"}, labels...), nil)
}

func NewCollector(bat async.SmartBattery, name string, timeout time.Duration) *Collector {
	minutes := func(v uint16) float64 {
		if v == sb.MinutesNotApplicable {
			return -1
		}
		return float64(v)
	}
	return &Collector{
		bat:     bat,
		name:    name,
		timeout: timeout,
		gauges: []gauge{
			{newDesc("voltage_volts", "Pack voltage."), "voltage",
				func(s *Snapshot) float64 { return float64(s.Voltage_mV) / 1000 }},
			{newDesc("current_amps", "Terminal current, negative while discharging."), "current",
				func(s *Snapshot) float64 { return float64(s.Current_mA) / 1000 }},
			{newDesc("average_current_amps", "One-minute average current."), "average_current",
				func(s *Snapshot) float64 { return float64(s.AverageCurrent_mA) / 1000 }},
			{newDesc("temperature_celsius", "Pack temperature."), "temperature",
				func(s *Snapshot) float64 { return float64(s.Temperature_mC) / 1000 }},
			{newDesc("relative_state_of_charge_percent", "Remaining capacity as a share of full charge capacity."), "relative_state_of_charge",
				func(s *Snapshot) float64 { return float64(s.RelativeSOC) }},
			{newDesc("absolute_state_of_charge_percent", "Remaining capacity as a share of design capacity."), "absolute_state_of_charge",
				func(s *Snapshot) float64 { return float64(s.AbsoluteSOC) }},
			{newDesc("run_time_to_empty_minutes", "Predicted run time at the present rate, -1 when not discharging."), "run_time_to_empty",
				func(s *Snapshot) float64 { return minutes(s.RunTimeToEmpty_min) }},
			{newDesc("average_time_to_full_minutes", "Predicted time to full, -1 when not charging."), "average_time_to_full",
				func(s *Snapshot) float64 { return minutes(s.AverageTimeToFull_min) }},
			{newDesc("charging_current_amps", "Current requested from the charger."), "charging_current",
				func(s *Snapshot) float64 { return float64(s.ChargingCurrent_mA) / 1000 }},
			{newDesc("charging_voltage_volts", "Voltage requested from the charger."), "charging_voltage",
				func(s *Snapshot) float64 { return float64(s.ChargingVoltage_mV) / 1000 }},
			{newDesc("cycle_count", "Charge cycles experienced."), "cycle_count",
				func(s *Snapshot) float64 { return float64(s.CycleCount) }},
		},
		capacity: newDesc("capacity", "Capacity registers in the battery's capacity mode unit.", "register", "unit"),
		status:   newDesc("status", "BatteryStatus flags, 1 when set.", "flag"),
		failures: newDesc("read_failures", "Registers that failed to read in this scrape."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range c.gauges {
		ch <- g.desc
	}
	ch <- c.capacity
	ch <- c.status
	ch <- c.failures
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	s := Read(ctx, c.bat)

	for _, g := range c.gauges {
		if s.OK(g.register) {
			ch <- prometheus.MustNewConstMetric(g.desc, prometheus.GaugeValue, g.value(&s), c.name)
		}
	}
	if s.OK("battery_mode") {
		unit := "mAh"
		if s.CapacityMode == sb.PowerBased.String() {
			unit = "10mWh"
		}
		for register, v := range map[string]uint16{
			"remaining_capacity":   s.RemainingCapacity,
			"full_charge_capacity": s.FullChargeCapacity,
			"design_capacity":      s.DesignCapacity,
		} {
			if s.OK(register) {
				ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(v), c.name, register, unit)
			}
		}
	}
	if s.OK("battery_status") {
		set := make(map[string]bool, len(s.Status))
		for _, f := range s.Status {
			set[f] = true
		}
		for _, f := range sb.BatteryStatusFields(0xFFF0).Names() {
			v := 0.0
			if set[f] {
				v = 1
			}
			ch <- prometheus.MustNewConstMetric(c.status, prometheus.GaugeValue, v, c.name, f)
		}
	}
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.GaugeValue, float64(len(s.Failed)), c.name)
}
