package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"embedded-batteries-go/acpi"
	"embedded-batteries-go/acpibridge"
)

func NewACPICommand(cfg *Config) *cobra.Command {
	var swap string
	cmd := &cobra.Command{
		Use:       "acpi {bst|bix|psr|pif}",
		GroupID:   gRead,
		Short:     "Print an ACPI battery method return",
		Long:      `Build the ACPI return for _BST, _BIX, _PSR or _PIF from the battery and dump its bytes.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bst", "bix", "psr", "pif"},
		RunE: func(cmd *cobra.Command, args []string) error {
			bc := acpibridge.DefaultConfig()
			switch swap {
			case "none":
				bc.Swap = acpi.NonSwappable
			case "cold":
				bc.Swap = acpi.ColdSwappable
			case "hot":
				bc.Swap = acpi.HotSwappable
			default:
				return fmt.Errorf("unknown swap capability %q", swap)
			}

			s, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer s.close()
			br := acpibridge.New(s.battery, bc)

			buf := make([]byte, 512)
			var n int
			switch args[0] {
			case "bst":
				bst, err := br.Bst()
				if err != nil {
					return err
				}
				cmd.Printf("%+v\n", bst)
				if n, err = bst.ToBytes(buf); err != nil {
					return err
				}
			case "bix":
				bix, err := br.Bix()
				if err != nil {
					return err
				}
				cmd.Printf("PowerUnit:%d DesignCapacity:%d LastFullChargeCapacity:%d DesignVoltage:%d CycleCount:%d\n",
					bix.PowerUnit, bix.DesignCapacity, bix.LastFullChargeCapacity, bix.DesignVoltage, bix.CycleCount)
				cmd.Printf("Model:%q Serial:%q Type:%q OEM:%q Swap:%d\n",
					bix.ModelNumber, bix.SerialNumber, bix.BatteryType, bix.OEMInfo, bix.SwappingCapability)
				if n, err = br.BixBytes(buf); err != nil {
					return err
				}
			case "psr":
				psr, err := br.Psr()
				if err != nil {
					return err
				}
				cmd.Printf("%+v\n", psr)
				if n, err = psr.ToBytes(buf); err != nil {
					return err
				}
			case "pif":
				pif, err := br.Pif()
				if err != nil {
					return err
				}
				cmd.Printf("MaxOutputPower:%d MaxInputPower:%d\n", pif.MaxOutputPower, pif.MaxInputPower)
				if n, err = br.PifBytes(buf); err != nil {
					return err
				}
			}
			cmd.Print(hex.Dump(buf[:n]))
			return nil
		},
	}
	cmd.Flags().StringVar(&swap, "swap", "cold", "swapping capability reported in _BIX (none, cold, hot)")
	return cmd
}
