package ltc4015

const (
	// 7-bit I2C address (1101_000b).
	AddressDefault = 0x68

	// CONFIG_BITS (0x14)
	cfgSuspendCharger uint16 = 1 << 8

	// Config / control
	regConfigBits      = 0x14 // R/W
	regIinLimitSetting = 0x15 // R/W
	regIChargeTarget   = 0x1A // R/W, 5 bits
	regVChargeSetting  = 0x1B // R/W, 5 or 6 bits

	// Readouts / status
	regChargerState = 0x34 // R
	regChargeStatus = 0x35 // R
	regSystemStatus = 0x39 // R
	regVBAT         = 0x3A // R
	regVIN          = 0x3B // R
	regIBAT         = 0x3D // R
	regIIN          = 0x3E // R
	regDieTemp      = 0x3F // R
	regChemCells    = 0x43 // R
	regIChargeDAC   = 0x44 // R
	regVChargeDAC   = 0x45 // R
)

// ChargerState is the one-hot CHARGER_STATE register.
type ChargerState uint16

const (
	StateBatShortFault   ChargerState = 1 << 0
	StateBatMissingFault ChargerState = 1 << 1
	StateMaxChargeTime   ChargerState = 1 << 2
	StateCOverXTerm      ChargerState = 1 << 3
	StateTimerTerm       ChargerState = 1 << 4
	StateNTCPause        ChargerState = 1 << 5
	StateCCCVCharge      ChargerState = 1 << 6
	StatePrecharge       ChargerState = 1 << 7
	StateChargerSuspend  ChargerState = 1 << 8
	StateAbsorbCharge    ChargerState = 1 << 9
	StateEqualizeCharge  ChargerState = 1 << 10
)

func (s ChargerState) Has(flag ChargerState) bool { return s&flag != 0 }

// SystemStatus is the SYSTEM_STATUS register.
type SystemStatus uint16

const (
	SysChargerEnabled SystemStatus = 1 << 13
	SysMPPTEnPin      SystemStatus = 1 << 11
	SysEqualizeReq    SystemStatus = 1 << 10
	SysDrvccGood      SystemStatus = 1 << 9
	SysCellCountErr   SystemStatus = 1 << 8
	SysOKToCharge     SystemStatus = 1 << 6
	SysNoRt           SystemStatus = 1 << 5
	SysThermalShdn    SystemStatus = 1 << 4
	SysVinOVLO        SystemStatus = 1 << 3
	SysVinGtVbat      SystemStatus = 1 << 2
	SysIntvccGt4p3V   SystemStatus = 1 << 1
	SysIntvccGt2p8V   SystemStatus = 1 << 0
)

// ChargeStatus is the CHARGE_STATUS register: which loop limits the charger.
type ChargeStatus uint16

const (
	ChargeConstantVoltage ChargeStatus = 1 << 0
	ChargeConstantCurrent ChargeStatus = 1 << 1
	ChargeIinLimitActive  ChargeStatus = 1 << 2
	ChargeVinUVCLActive   ChargeStatus = 1 << 3
)

func (s ChargeStatus) Has(flag ChargeStatus) bool { return s&flag != 0 }

func (s SystemStatus) Has(flag SystemStatus) bool { return s&flag != 0 }
