// Package sbs drives Smart Battery Data Specification batteries and Smart
// Battery Chargers over SMBus.
//
// Design notes:
//   - Word protocol, little-endian (data-low then data-high).
//   - Strings use the SMBus block read: a count byte followed by up to 32 bytes.
//   - After a NACK the battery's BatteryStatus error code is read to tell a
//     protocol refusal (access denied, unsupported command...) from a bus fault.
//   - Bus faults and Busy are retried with exponential backoff; other status
//     codes are returned immediately.
//   - Capacity and rate values are tagged with the cached CAPACITY_MODE bit,
//     which is refreshed by every BatteryMode read or write.
package sbs

import (
	"errors"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"embedded-batteries-go/charger"
	sb "embedded-batteries-go/smartbattery"
)

// Config configures a Battery.
type Config struct {
	Address          uint16
	Retries          uint64        // extra attempts after a bus fault or Busy
	RetryInterval    time.Duration // first backoff delay
	MaxRetryInterval time.Duration
	QueryStatus      bool               // read BatteryStatus after a NACK
	Logger           logrus.FieldLogger // nil disables logging
}

// DefaultConfig returns the settings used for a battery at 0x0B.
func DefaultConfig() Config {
	return Config{
		Address:          sb.Address,
		Retries:          3,
		RetryInterval:    2 * time.Millisecond,
		MaxRetryInterval: 50 * time.Millisecond,
		QueryStatus:      true,
	}
}

func (c Config) Validate() error {
	if err := validateAddress(c.Address); err != nil {
		return err
	}
	return validateRetry(c.Retries, c.RetryInterval, c.MaxRetryInterval)
}

// ChargerConfig configures a Charger.
type ChargerConfig struct {
	Address          uint16
	ReadBack         bool // read the limit back after writing it
	Retries          uint64
	RetryInterval    time.Duration
	MaxRetryInterval time.Duration
	Logger           logrus.FieldLogger
}

func DefaultChargerConfig() ChargerConfig {
	return ChargerConfig{
		Address:          charger.Address,
		ReadBack:         true,
		Retries:          3,
		RetryInterval:    2 * time.Millisecond,
		MaxRetryInterval: 50 * time.Millisecond,
	}
}

func (c ChargerConfig) Validate() error {
	if err := validateAddress(c.Address); err != nil {
		return err
	}
	return validateRetry(c.Retries, c.RetryInterval, c.MaxRetryInterval)
}

var (
	errAddress       = errors.New("address must be a non-zero 7-bit SMBus address")
	errRetryInterval = errors.New("retry interval must be positive when retries are enabled")
	errMaxInterval   = errors.New("max retry interval must not be below the retry interval")
)

func validateAddress(a uint16) error {
	if a == 0 || a > 0x7F {
		return errAddress
	}
	return nil
}

func validateRetry(n uint64, first, limit time.Duration) error {
	if n == 0 {
		return nil
	}
	if first <= 0 {
		return errRetryInterval
	}
	if limit != 0 && limit < first {
		return errMaxInterval
	}
	return nil
}

func retryPolicy(n uint64, first, limit time.Duration) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = first
	if limit > 0 {
		eb.MaxInterval = limit
	}
	eb.MaxElapsedTime = 0
	return backoff.WithMaxRetries(eb, n)
}

func orDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	q := logrus.New()
	q.SetOutput(io.Discard)
	return q
}
