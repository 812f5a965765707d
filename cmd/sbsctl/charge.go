package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"embedded-batteries-go/charger"
	"embedded-batteries-go/drivers/ltc4015"
	"embedded-batteries-go/drivers/sbs"
)

func NewChargeCommand(cfg *Config) *cobra.Command {
	var (
		current uint16
		voltage uint16
		follow  bool
		disable bool
	)
	cmd := &cobra.Command{
		Use:     "charge",
		GroupID: gControl,
		Short:   "Set the charger's current and voltage limits",
		Long: `Set the charger's current and voltage limits and print the values the
charger acknowledged.

With --follow the limits are the ones the battery requests through its
ChargingCurrent and ChargingVoltage registers, as a smart charger does.
0 disables charging; 65535 selects a constant source.`,
		Example: `  sbsctl charge --current 2000 --voltage 12600
  sbsctl charge --follow
  sbsctl charge --disable`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer s.close()
			chg, err := s.chargerFor()
			if err != nil {
				return err
			}

			switch {
			case disable:
				current, voltage = charger.ChargingDisabled, charger.ChargingDisabled
			case follow:
				if current, err = s.battery.ChargingCurrent(); err != nil {
					return errors.Wrap(err, "failed to read the requested charging current")
				}
				if voltage, err = s.battery.ChargingVoltage(); err != nil {
					return errors.Wrap(err, "failed to read the requested charging voltage")
				}
			case !cmd.Flags().Changed("current") && !cmd.Flags().Changed("voltage"):
				return errors.New("nothing to do: pass --current/--voltage, --follow or --disable")
			}

			// Voltage first so the charger never sees the new current at the
			// old voltage.
			if cmd.Flags().Changed("voltage") || follow || disable {
				ack, err := chg.ChargingVoltage(voltage)
				if err != nil {
					return errors.Wrap(err, "failed to set charging voltage")
				}
				cmd.Printf("Charging voltage: %s (requested %d mV)\n", bold("%d mV", ack), voltage)
			}
			if cmd.Flags().Changed("current") || follow || disable {
				ack, err := chg.ChargingCurrent(current)
				if err != nil {
					return errors.Wrap(err, "failed to set charging current")
				}
				cmd.Printf("Charging current: %s (requested %d mA)\n", bold("%d mA", ack), current)
			}
			printChargerState(cmd, chg)
			return nil
		},
	}
	f := cmd.Flags()
	f.Uint16Var(&current, "current", 0, "charging current in mA")
	f.Uint16Var(&voltage, "voltage", 0, "charging voltage in mV")
	f.BoolVar(&follow, "follow", false, "use the limits the battery requests")
	f.BoolVar(&disable, "disable", false, "disable charging")
	cmd.MarkFlagsMutuallyExclusive("follow", "disable")
	return cmd
}

func printChargerState(cmd *cobra.Command, chg charger.Charger) {
	switch d := chg.(type) {
	case *sbs.Charger:
		if st, err := d.Status(); err == nil {
			cmd.Printf("Charger status: %v\n", st.Names())
		}
	case *ltc4015.Device:
		snap := d.Snapshot()
		cmd.Printf("Charger: %s %dS, pack %d mV, ibat %d mA, suspended %t\n",
			d.Chemistry(), d.Cells(), snap.Pack_mV, snap.IBat_mA, snap.Suspended)
		if snap.IinLim_mA != 0 {
			cmd.Printf("Input: %d mV, %d mA (limit %d mA, limiting %t)\n",
				snap.Vin_mV, snap.Iin_mA, snap.IinLim_mA, snap.Charge.Has(ltc4015.ChargeIinLimitActive))
		}
	}
}
