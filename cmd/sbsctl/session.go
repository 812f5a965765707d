package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/drivers"

	"embedded-batteries-go/charger"
	"embedded-batteries-go/drivers/ltc4015"
	"embedded-batteries-go/drivers/osbattery"
	"embedded-batteries-go/drivers/sbs"
	"embedded-batteries-go/drivers/sbs/sim"
	"embedded-batteries-go/internal/i2cdev"
	sb "embedded-batteries-go/smartbattery"
)

var errNoCharger = errors.New("no charger configured for this backend")

// session is an opened battery and, where the backend has one, a charger.
type session struct {
	battery sb.SmartBattery
	charger charger.Charger
	close   func() error
}

// newSimBus is replaced in tests to inspect the simulator.
var newSimBus = sim.New

func openSession(cfg *Config) (*session, error) {
	log := logrus.StandardLogger()
	s := &session{close: func() error { return nil }}

	var bus drivers.I2C
	switch cfg.Backend {
	case "os":
		oc := osbattery.DefaultConfig()
		oc.Index = cfg.OSIndex
		oc.Logger = log
		if err := oc.Validate(); err != nil {
			return nil, err
		}
		s.battery = osbattery.New(oc)
		return s, nil
	case "sim":
		bus = newSimBus()
	default:
		dev, err := i2cdev.Open(i2cdev.Path(cfg.Bus))
		if err != nil {
			return nil, err
		}
		bus, s.close = dev, dev.Close
	}

	bc := sbs.DefaultConfig()
	bc.Address = cfg.Address
	bc.Retries = cfg.Retries
	bc.Logger = log.WithField("device", "battery")
	if err := bc.Validate(); err != nil {
		return nil, errors.Wrap(err, "battery config")
	}
	s.battery = sbs.NewBattery(bus, bc)

	switch cfg.Charger {
	case "sbs":
		cc := sbs.DefaultChargerConfig()
		cc.Address = cfg.ChargerAddress
		cc.Retries = cfg.Retries
		cc.Logger = log.WithField("device", "charger")
		if err := cc.Validate(); err != nil {
			return nil, errors.Wrap(err, "charger config")
		}
		s.charger = sbs.NewCharger(bus, cc)
	case "ltc4015":
		lc := ltc4015.DefaultConfig()
		lc.RSNSB_uOhm = cfg.RSNSB
		lc.RSNSI_uOhm = cfg.RSNSI
		lc.Cells = cfg.Cells
		if err := lc.Validate(); err != nil {
			return nil, errors.Wrap(err, "ltc4015 config")
		}
		s.charger = ltc4015.New(bus, lc)
	}
	return s, nil
}

// chargerFor returns the session charger, configuring it on first use.
func (s *session) chargerFor() (charger.Charger, error) {
	if s.charger == nil {
		return nil, errNoCharger
	}
	if d, ok := s.charger.(*ltc4015.Device); ok {
		if err := d.Configure(); err != nil {
			return nil, err
		}
	}
	return s.charger, nil
}
