package dmm6500

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/jonathangjertsen/benchscpi/scpi"
)

type Function int

const (
	VoltageDC Function = iota + 1
	VoltageAC
	CurrentDC
	CurrentAC
	Resistance
	Diode
	Capacitance
	Temperature
	Continuity
)

var functionTokens = map[Function]string{
	VoltageDC:   "VOLT:DC",
	VoltageAC:   "VOLT:AC",
	CurrentDC:   "CURR:DC",
	CurrentAC:   "CURR:AC",
	Resistance:  "RES",
	Diode:       "DIOD",
	Capacitance: "CAP",
	Temperature: "TEMP",
	Continuity:  "CONT",
}

func (f Function) Token() (string, error) {
	return lookup(functionTokens, f, "function")
}

func (f Function) String() string {
	if tok, ok := functionTokens[f]; ok {
		return tok
	}
	return fmt.Sprintf("Function(%d)", int(f))
}

// ParseFunction maps a protocol token such as "VOLT:DC" back to its Function.
func ParseFunction(token string) (Function, error) {
	for f, tok := range functionTokens {
		if tok == token {
			return f, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownToken, "function %q", token)
}

// Range is a fixed full-scale measurement range.
type Range int

const (
	VoltageDC100mV Range = iota + 1
	VoltageDC1V
	VoltageDC10V
	VoltageDC100V
	CurrentDC10uA
	CurrentDC100uA
	CurrentDC1mA
	CurrentDC10mA
	CurrentDC100mA
	CurrentDC1A
	CurrentDC3A
)

var rangeTokens = map[Range]string{
	VoltageDC100mV: "100e-3",
	VoltageDC1V:    "1",
	VoltageDC10V:   "10",
	VoltageDC100V:  "100",
	CurrentDC10uA:  "10e-6",
	CurrentDC100uA: "100e-6",
	CurrentDC1mA:   "1e-3",
	CurrentDC10mA:  "10e-3",
	CurrentDC100mA: "100e-3",
	CurrentDC1A:    "1",
	CurrentDC3A:    "3",
}

func (r Range) Token() (string, error) {
	return lookup(rangeTokens, r, "range")
}

func (r Range) String() string {
	if tok, ok := rangeTokens[r]; ok {
		return tok
	}
	return fmt.Sprintf("Range(%d)", int(r))
}

// Sense selects what and how the instrument measures.
type Sense struct {
	ch scpi.Channel
}

// Function selects the active measurement function.
func (s *Sense) Function(f Function) error {
	tok, err := f.Token()
	if err != nil {
		return err
	}
	return s.ch.Write(fmt.Sprintf(`:SENS:FUNC "%s"`, tok))
}

// Range sets a fixed range for f. The instrument turns autorange off for f
// as a side effect.
func (s *Sense) Range(f Function, r Range) error {
	fn, err := f.Token()
	if err != nil {
		return err
	}
	rng, err := r.Token()
	if err != nil {
		return err
	}
	return s.ch.Write(fmt.Sprintf(":SENS:%s:RANG %s", fn, rng))
}
