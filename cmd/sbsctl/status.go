package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"embedded-batteries-go/async"
	"embedded-batteries-go/exporter"
	sb "embedded-batteries-go/smartbattery"
)

var bold = color.New(color.Bold).SprintfFunc()

func NewStatusCommand(cfg *Config) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gRead,
		Short:   "Show battery status",
		Long:    `Read every battery register once and print a summary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer s.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()
			snap := exporter.Read(ctx, async.Direct(s.battery))

			if asJSON {
				b, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(b))
				return nil
			}
			printStatus(cmd, &snap)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

func printStatus(cmd *cobra.Command, s *exporter.Snapshot) {
	cmd.Println(bold("Battery:"))
	cmd.Printf("  Device: %s %s (%s), serial %04X\n", s.Manufacturer, s.Device, s.Chemistry, s.Serial)
	if s.Manufactured != "" {
		cmd.Printf("  Manufactured: %s\n", s.Manufactured)
	}
	cmd.Printf("  SBS version: %s\n", s.Version)
	cmd.Println()

	cmd.Println(bold("State:"))
	state := "idle"
	switch {
	case contains(s.Status, "fully_charged"):
		state = "full"
	case contains(s.Status, "discharging"):
		state = color.RedString("discharging")
	case s.Current_mA > 0:
		state = color.GreenString("charging")
	}
	cmd.Printf("  State: %s\n", bold("%s", state))
	cmd.Printf("  Charge: %s (absolute %d%%)\n", bold("%d%%", s.RelativeSOC), s.AbsoluteSOC)
	cmd.Printf("  Voltage: %s\n", bold("%.3f V", float64(s.Voltage_mV)/1000))
	cmd.Printf("  Current: %s (average %+d mA)\n", bold("%+d mA", s.Current_mA), s.AverageCurrent_mA)
	cmd.Printf("  Temperature: %s\n", bold("%.1f °C", float64(s.Temperature_mC)/1000))

	unit := "mAh"
	if s.CapacityMode == sb.PowerBased.String() {
		unit = "10mWh"
	}
	cmd.Printf("  Capacity: %d / %d %s (design %d)\n", s.RemainingCapacity, s.FullChargeCapacity, unit, s.DesignCapacity)
	if s.RunTimeToEmpty_min != sb.MinutesNotApplicable {
		cmd.Printf("  Time to empty: %d min\n", s.RunTimeToEmpty_min)
	}
	if s.AverageTimeToFull_min != sb.MinutesNotApplicable {
		cmd.Printf("  Time to full: %d min\n", s.AverageTimeToFull_min)
	}
	cmd.Printf("  Cycles: %d\n", s.CycleCount)
	cmd.Printf("  Charger request: %d mA at %d mV\n", s.ChargingCurrent_mA, s.ChargingVoltage_mV)

	var alarms []string
	for _, f := range s.Status {
		if strings.HasSuffix(f, "_alarm") {
			alarms = append(alarms, f)
		}
	}
	if len(alarms) > 0 {
		cmd.Printf("  Alarms: %s\n", color.RedString(strings.Join(alarms, ", ")))
	}
	cmd.Printf("  Mode: %s\n", strings.Join(s.Mode, ", "))

	if len(s.Failed) > 0 {
		names := make([]string, 0, len(s.Failed))
		for n := range s.Failed {
			names = append(names, n)
		}
		sort.Strings(names)
		cmd.Println()
		cmd.Println(color.YellowString("Unreadable registers:"))
		for _, n := range names {
			cmd.Printf("  %s: %s\n", n, s.Failed[n])
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// modeFlag maps a BatteryMode flag name to its bit.
func modeFlag(name string) (sb.BatteryModeFields, error) {
	for bit := 0; bit < 16; bit++ {
		f := sb.BatteryModeFields(1 << bit)
		if names := f.Names(); len(names) == 1 && names[0] == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown battery mode flag %q", name)
}
