// Package sim is a register-level Smart Battery and Smart Battery Charger
// simulator. A Bus answers SMBus word and block transactions at the battery
// and charger addresses and implements tinygo.org/x/drivers.I2C, so drivers
// can be exercised on a host without hardware.
//
// Failed transactions NACK with ErrNack and leave the reason in the
// battery's BatteryStatus error code, as a real pack does.
package sim

import (
	"errors"
	"sync"

	"embedded-batteries-go/charger"
	sb "embedded-batteries-go/smartbattery"

	"tinygo.org/x/drivers"
)

var (
	// ErrNack is returned when the addressed device rejects a transaction.
	ErrNack = errors.New("sim: nack")
	// ErrNoDevice is returned for addresses nothing answers on.
	ErrNoDevice = errors.New("sim: no device at address")
	// ErrBusFault is returned for injected bus failures.
	ErrBusFault = errors.New("sim: bus fault")
)

var _ drivers.I2C = (*Bus)(nil)

// Bus routes transactions to the simulated devices. Either device may be nil.
type Bus struct {
	mu      sync.Mutex
	Battery *Battery
	Charger *Charger

	faults int
	txs    int
}

// New returns a bus with a default battery and charger attached.
func New() *Bus {
	return &Bus{Battery: NewBattery(), Charger: NewCharger()}
}

// InjectFaults makes the next n transactions fail with ErrBusFault before
// reaching any device.
func (b *Bus) InjectFaults(n int) {
	b.mu.Lock()
	b.faults = n
	b.mu.Unlock()
}

// Transactions returns the number of Tx calls seen so far.
func (b *Bus) Transactions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.txs
}

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.txs++
	if b.faults > 0 {
		b.faults--
		return ErrBusFault
	}
	switch {
	case addr == sb.Address && b.Battery != nil:
		return b.Battery.tx(w, r)
	case addr == charger.Address && b.Charger != nil:
		return b.Charger.tx(w, r)
	}
	return ErrNoDevice
}

func putWord(r []byte, v uint16) {
	r[0] = byte(v)
	r[1] = byte(v >> 8)
}

func word(w []byte) uint16 { return uint16(w[1]) | uint16(w[2])<<8 }
