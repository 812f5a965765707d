//go:build !linux

package i2cdev

import "github.com/pkg/errors"

// ErrUnsupported is returned by Open on platforms without i2c-dev.
var ErrUnsupported = errors.New("i2cdev: only supported on linux")

type Bus struct{}

func Open(path string) (*Bus, error) { return nil, errors.Wrap(ErrUnsupported, path) }

func (*Bus) Tx(addr uint16, w, r []byte) error { return ErrUnsupported }
func (*Bus) Close() error                      { return nil }
