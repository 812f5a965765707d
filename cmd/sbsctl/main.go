package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	gRead    = "Read:"
	gControl = "Control:"
)

func setupLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.Kitchen,
	})
	return nil
}

func main() {
	cmd, err := NewCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewCommand builds the command tree. Environment variables (SBSCTL_*)
// provide the flag defaults.
func NewCommand() (*cobra.Command, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:   "sbsctl",
		Short: "sbsctl inspects and controls Smart Battery System devices",
		Long: `sbsctl inspects and controls Smart Battery System batteries and chargers
over SMBus, a built-in simulator, or the operating system's battery.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := setupLogger(cfg.LogLevel); err != nil {
				return err
			}
			return cfg.Validate()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	f.StringVar(&cfg.Backend, "backend", cfg.Backend, "battery backend (smbus, sim, os)")
	f.IntVar(&cfg.Bus, "bus", cfg.Bus, "i2c adapter number for the smbus backend")
	f.Uint16Var(&cfg.Address, "address", cfg.Address, "battery SMBus address")
	f.Uint64Var(&cfg.Retries, "retries", cfg.Retries, "retries after a bus fault or busy battery")
	f.StringVar(&cfg.Charger, "charger", cfg.Charger, "charger driver (sbs, ltc4015, none)")
	f.Uint16Var(&cfg.ChargerAddress, "charger-address", cfg.ChargerAddress, "charger SMBus address")
	f.Uint32Var(&cfg.RSNSB, "rsnsb-uohm", cfg.RSNSB, "LTC4015 battery sense resistor in µΩ")
	f.Uint32Var(&cfg.RSNSI, "rsnsi-uohm", cfg.RSNSI, "LTC4015 input sense resistor in µΩ (0 skips input current)")
	f.Uint8Var(&cfg.Cells, "cells", cfg.Cells, "LTC4015 cell count (0 reads the strap)")
	f.IntVar(&cfg.OSIndex, "os-index", cfg.OSIndex, "battery index for the os backend")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout for one battery read pass")

	for _, g := range []string{gRead, gControl} {
		cmd.AddGroup(&cobra.Group{ID: g, Title: g})
	}

	cmd.AddCommand(
		NewStatusCommand(&cfg),
		NewModeCommand(&cfg),
		NewACPICommand(&cfg),
		NewChargeCommand(&cfg),
		NewServeCommand(&cfg),
	)
	return cmd, nil
}
