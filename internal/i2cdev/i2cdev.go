// Package i2cdev exposes a Linux /dev/i2c-N adapter as a drivers.I2C bus so
// the SMBus drivers can run on a host as well as on a microcontroller.
package i2cdev

import (
	"fmt"

	"github.com/pkg/errors"
	"tinygo.org/x/drivers"
)

// ErrEmptyTx is returned for a transaction with neither a write nor a read.
var ErrEmptyTx = errors.New("i2cdev: empty transaction")

// Path returns the character device of adapter n.
func Path(n int) string { return fmt.Sprintf("/dev/i2c-%d", n) }

var _ drivers.I2C = (*Bus)(nil)
