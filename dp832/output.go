package dp832

import (
	"fmt"

	"github.com/jonathangjertsen/benchscpi/scpi"
)

// Output switches outputs and configures their protection.
//
// With OCP or OVP on, the instrument turns the output off by itself once the
// measured current or voltage exceeds the configured value. Nothing here
// watches for that.
type Output struct {
	ch scpi.Channel
}

func (o *Output) TurnOn(c Channel, on bool) error {
	return o.set(":OUTP:STAT", c, scpi.OnOff(on))
}

func (o *Output) QueryMode(c Channel) (Mode, error) {
	if err := c.validate(); err != nil {
		return "", err
	}
	reply, err := o.ch.Query(":OUTP:MODE? " + c.Label())
	if err != nil {
		return "", err
	}
	return ParseMode(reply)
}

func (o *Output) OvercurrentProtection(c Channel, on bool) error {
	return o.set(":OUTP:OCP", c, scpi.OnOff(on))
}

// QueryOvercurrentProtection is true only for the reply "ON".
func (o *Output) QueryOvercurrentProtection(c Channel) (bool, error) {
	return o.queryOnOff(":OUTP:OCP?", c)
}

func (o *Output) OvercurrentProtectionValue(c Channel, amps float64) error {
	return o.set(":OUTP:OCP:VAL", c, scpi.FormatFloat(amps))
}

func (o *Output) OvervoltageProtection(c Channel, on bool) error {
	return o.set(":OUTP:OVP", c, scpi.OnOff(on))
}

// QueryOvervoltageProtection is true only for the reply "ON".
func (o *Output) QueryOvervoltageProtection(c Channel) (bool, error) {
	return o.queryOnOff(":OUTP:OVP?", c)
}

func (o *Output) OvervoltageProtectionValue(c Channel, volts float64) error {
	return o.set(":OUTP:OVP:VAL", c, scpi.FormatFloat(volts))
}

func (o *Output) set(header string, c Channel, value string) error {
	if err := c.validate(); err != nil {
		return err
	}
	return o.ch.Write(fmt.Sprintf("%s %s,%s", header, c.Label(), value))
}

func (o *Output) queryOnOff(header string, c Channel) (bool, error) {
	if err := c.validate(); err != nil {
		return false, err
	}
	return scpi.QueryOnOff(o.ch, header+" "+c.Label())
}
