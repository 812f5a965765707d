package smartbattery

import (
	"time"

	"embedded-batteries-go/internal/bitfield"
)

// ManufactureDate is the ManufactureDate() word (0x1B):
// (year-1980)*512 + month*32 + day.
type ManufactureDate uint16

const (
	dayShift   = 0
	dayWidth   = 5
	monthShift = 5
	monthWidth = 4
	yearShift  = 9
	yearWidth  = 7

	// ManufactureEpoch is the calendar year encoded as year 0.
	ManufactureEpoch = 1980
)

// NewManufactureDate packs day (1-31), month (1-12) and year (0-127, years
// since 1980). Out-of-range inputs are truncated to their field width.
func NewManufactureDate(day, month, year uint8) ManufactureDate {
	var d ManufactureDate
	d.SetDay(day)
	d.SetMonth(month)
	d.SetYear(year)
	return d
}

// ManufactureDateFromTime packs t's calendar date. Years outside 1980..2107
// are truncated.
func ManufactureDateFromTime(t time.Time) ManufactureDate {
	return NewManufactureDate(uint8(t.Day()), uint8(t.Month()), uint8(t.Year()-ManufactureEpoch))
}

func (d ManufactureDate) Bits() uint16 { return uint16(d) }

func (d ManufactureDate) Day() uint8   { return uint8(bitfield.Get(uint16(d), dayShift, dayWidth)) }
func (d ManufactureDate) Month() uint8 { return uint8(bitfield.Get(uint16(d), monthShift, monthWidth)) }

// Year is years since 1980.
func (d ManufactureDate) Year() uint8 { return uint8(bitfield.Get(uint16(d), yearShift, yearWidth)) }

func (d *ManufactureDate) SetDay(v uint8) {
	*d = ManufactureDate(bitfield.Set(uint16(*d), dayShift, dayWidth, uint16(v)))
}

func (d *ManufactureDate) SetMonth(v uint8) {
	*d = ManufactureDate(bitfield.Set(uint16(*d), monthShift, monthWidth, uint16(v)))
}

func (d *ManufactureDate) SetYear(v uint8) {
	*d = ManufactureDate(bitfield.Set(uint16(*d), yearShift, yearWidth, uint16(v)))
}

// CalendarYear returns the four-digit year.
func (d ManufactureDate) CalendarYear() int { return ManufactureEpoch + int(d.Year()) }

// Time returns midnight UTC of the encoded date. Invalid day/month values are
// normalised by time.Date.
func (d ManufactureDate) Time() time.Time {
	return time.Date(d.CalendarYear(), time.Month(d.Month()), int(d.Day()), 0, 0, 0, 0, time.UTC)
}

func (d ManufactureDate) String() string { return d.Time().Format("2006-01-02") }
