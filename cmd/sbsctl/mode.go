package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"embedded-batteries-go/drivers/sbs"
	sb "embedded-batteries-go/smartbattery"
)

func NewModeCommand(cfg *Config) *cobra.Command {
	var set, unset []string
	cmd := &cobra.Command{
		Use:     "mode",
		GroupID: gControl,
		Short:   "Show or change BatteryMode flags",
		Long: `Show the BatteryMode flags, or set and clear writable ones.

Writable flags: charge_controller_enabled, primary_battery, alarm_mode,
charger_mode, capacity_mode.`,
		Example: `  sbsctl mode --set capacity_mode --clear alarm_mode`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var on, off sb.BatteryModeFields
			for _, n := range set {
				f, err := modeFlag(n)
				if err != nil {
					return err
				}
				on |= f
			}
			for _, n := range unset {
				f, err := modeFlag(n)
				if err != nil {
					return err
				}
				off |= f
			}
			if (on|off)&^sb.BatteryModeWritable != 0 {
				return errors.Errorf("read-only flags: %s", strings.Join(((on|off)&^sb.BatteryModeWritable).Names(), ", "))
			}

			s, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer s.close()

			if on|off != 0 {
				if err := updateMode(s.battery, on, off); err != nil {
					return errors.Wrap(err, "failed to update battery mode")
				}
			}
			mode, err := s.battery.BatteryMode()
			if err != nil {
				return errors.Wrap(err, "failed to read battery mode")
			}
			cmd.Printf("BatteryMode: 0x%04X\n", mode.Bits())
			cmd.Printf("  Capacity mode: %s\n", bold("%s", mode.CapacityMode()))
			for _, n := range mode.Names() {
				cmd.Printf("  %s\n", n)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&set, "set", nil, "flags to set")
	cmd.Flags().StringSliceVar(&unset, "clear", nil, "flags to clear")
	return cmd
}

func updateMode(bat sb.SmartBattery, on, off sb.BatteryModeFields) error {
	if d, ok := bat.(*sbs.Battery); ok {
		return d.UpdateBatteryMode(on, off)
	}
	cur, err := bat.BatteryMode()
	if err != nil {
		return err
	}
	return bat.SetBatteryMode(cur.Merge((cur | on) &^ off))
}
