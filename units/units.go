// Package units renders voltages and currents at a chosen scale for display.
package units

import "fmt"

type scale int

const (
	base scale = iota + 1
	milli
	micro
)

func (s scale) convert(value float64) string {
	switch s {
	case base:
		return fmt.Sprintf("%012.9f", value/1.0)
	case milli:
		return fmt.Sprintf("%08.4f", value/1e-3)
	default:
		return fmt.Sprintf("%08.4f", value/1e-6)
	}
}

type VoltUnit int

const (
	Volt      = VoltUnit(base)
	MilliVolt = VoltUnit(milli)
	MicroVolt = VoltUnit(micro)
)

// Convert renders volts at u's scale, zero padded: 12 wide with 9 decimals
// for V, 8 wide with 4 decimals for mV and µV.
func (u VoltUnit) Convert(volts float64) string {
	return scale(u).convert(volts)
}

func (u VoltUnit) Unit() string {
	switch u {
	case Volt:
		return "V"
	case MilliVolt:
		return "mV"
	default:
		return "µV"
	}
}

func (u VoltUnit) String() string {
	return u.Unit()
}

type CurrentUnit int

const (
	Amp      = CurrentUnit(base)
	MilliAmp = CurrentUnit(milli)
	MicroAmp = CurrentUnit(micro)
)

// Convert renders amps at u's scale, with the same widths as VoltUnit.
func (u CurrentUnit) Convert(amps float64) string {
	return scale(u).convert(amps)
}

func (u CurrentUnit) Unit() string {
	switch u {
	case Amp:
		return "A"
	case MilliAmp:
		return "mA"
	default:
		return "µA"
	}
}

func (u CurrentUnit) String() string {
	return u.Unit()
}
