package dp832

import (
	"fmt"

	"github.com/jonathangjertsen/benchscpi/scpi"
)

// Instrument selects the current channel, by number or by label.
type Instrument struct {
	ch scpi.Channel
}

func (in *Instrument) NSelect(c Channel) error {
	if err := c.validate(); err != nil {
		return err
	}
	return in.ch.Write(fmt.Sprintf(":INST:NSEL %d", int(c)))
}

func (in *Instrument) QueryNSelect() (Channel, error) {
	n, err := scpi.QueryInt(in.ch, ":INST:NSEL?")
	if err != nil {
		return 0, err
	}
	c := Channel(n)
	if err := c.validate(); err != nil {
		return 0, err
	}
	return c, nil
}

func (in *Instrument) Select(c Channel) error {
	if err := c.validate(); err != nil {
		return err
	}
	return in.ch.Write(":INST:SELE " + c.Label())
}

func (in *Instrument) QuerySelect() (Channel, error) {
	reply, err := in.ch.Query(":INST:SELE?")
	if err != nil {
		return 0, err
	}
	return ParseChannel(reply)
}
