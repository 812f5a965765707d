// Package ltc4015 drives the LTC4015 multi-chemistry synchronous buck
// battery charger as a Smart Battery Charger.
//
// Design notes (datasheet references):
//   - I2C/SMBus read/write word protocol; data-low then data-high.
//   - Charge current limit maps onto ICHARGE_TARGET: (code+1)·1 mV across RSNSB.
//   - Charge voltage limit maps onto VCHARGE_SETTING, per cell, in the
//     chemistry-specific scale.
//   - A zero limit suspends the charger (CONFIG_BITS suspend_charger).
//   - Integer-only telemetry scaling.
package ltc4015

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Chemistry selects the VCHARGE_SETTING and VBAT scales.
type Chemistry uint8

const (
	ChemUnknown    Chemistry = iota
	ChemLithiumIon           // 3.8125 V + code·12.5 mV per cell
	ChemLiFePO4              // 3.4125 V + code·12.5 mV per cell
	ChemLeadAcid             // 2.0 V + code/105 V per cell
)

func (c Chemistry) String() string {
	switch c {
	case ChemLithiumIon:
		return "li-ion"
	case ChemLiFePO4:
		return "lifepo4"
	case ChemLeadAcid:
		return "lead-acid"
	}
	return "unknown"
}

var (
	ErrRSNSBUnset       = errors.New("ltc4015: RSNSB_uOhm must be set for battery current operations")
	ErrRSNSIUnset       = errors.New("ltc4015: RSNSI_uOhm must be set for input current operations")
	ErrCellsUnknown     = errors.New("ltc4015: cell count unknown")
	ErrChemistryUnknown = errors.New("ltc4015: unable to determine chemistry")
	errAddress          = errors.New("ltc4015: address must be a non-zero 7-bit address")
)

// Config is integer-only.
type Config struct {
	Address    uint16
	RSNSB_uOhm uint32 // battery path sense resistor in µΩ
	RSNSI_uOhm uint32 // input path sense resistor in µΩ; 0 disables the input current reads
	Cells      uint8  // read from the CHEM_CELLS strap if 0
	Chem       Chemistry
}

// DefaultConfig leaves the sense resistors and cell count to the caller.
func DefaultConfig() Config {
	return Config{
		Address: AddressDefault,
		Chem:    ChemLithiumIon,
	}
}

func (c Config) Validate() error {
	if c.Address == 0 || c.Address > 0x7F {
		return errAddress
	}
	if c.RSNSB_uOhm == 0 {
		return ErrRSNSBUnset
	}
	return nil
}

// Device is an LTC4015 on an I²C bus. It is not safe for concurrent use.
type Device struct {
	i2c   drivers.I2C
	addr  uint16
	cells uint8
	chem  Chemistry

	rsnsB_uOhm uint32
	rsnsI_uOhm uint32

	// Either limit at zero keeps the charger suspended.
	iZero, vZero bool

	// Fixed buffers to avoid per-call heap allocations.
	w [3]byte
	r [2]byte
}

func New(i2c drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	return &Device{
		i2c:        i2c,
		addr:       addr,
		cells:      cfg.Cells,
		chem:       cfg.Chem,
		rsnsB_uOhm: cfg.RSNSB_uOhm,
		rsnsI_uOhm: cfg.RSNSI_uOhm,
	}
}

// Configure fills in the cell count and chemistry from the CHEM_CELLS
// register where the config left them unset.
func (d *Device) Configure() error {
	if d.cells != 0 && d.chem != ChemUnknown {
		return nil
	}
	v, err := d.readWord(regChemCells)
	if err != nil {
		return err
	}
	if d.cells == 0 {
		d.cells = uint8(v & 0x000F)
	}
	if d.chem == ChemUnknown {
		d.chem = chemistryFromStrap(uint8(v>>8) & 0x0F)
		if d.chem == ChemUnknown {
			return &Error{Op: "configure", Reg: regChemCells, Err: ErrChemistryUnknown}
		}
	}
	return nil
}

func chemistryFromStrap(code uint8) Chemistry {
	switch {
	case code <= 3:
		return ChemLithiumIon
	case code <= 6:
		return ChemLiFePO4
	case code <= 8:
		return ChemLeadAcid
	}
	return ChemUnknown
}

func (d *Device) Cells() uint8         { return d.cells }
func (d *Device) Chemistry() Chemistry { return d.chem }
