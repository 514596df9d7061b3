package dp832

import (
	"fmt"

	"github.com/jonathangjertsen/benchscpi/scpi"
)

// Source sets the regulated setpoints.
type Source struct {
	ch scpi.Channel
}

func (s *Source) Current(c Channel, amps float64) error {
	return s.set(c, "CURR", amps)
}

func (s *Source) Voltage(c Channel, volts float64) error {
	return s.set(c, "VOLT", volts)
}

func (s *Source) set(c Channel, quantity string, value float64) error {
	if err := c.validate(); err != nil {
		return err
	}
	return s.ch.Write(fmt.Sprintf(":SOUR%d:%s %s", int(c), quantity, scpi.FormatFloat(value)))
}
