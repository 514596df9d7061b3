package dp832

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jonathangjertsen/benchscpi/scpi"
)

// Timer programs the on-instrument output timer of the current channel.
// A sequence is Groups parameter slots, repeated Cycles times.
//
// Starting the timer needs a channel selected first (Instrument.NSelect or
// Select); that ordering is left to the caller.
type Timer struct {
	ch scpi.Channel
}

func (t *Timer) Cycles(n int) error {
	return t.ch.Write(fmt.Sprintf(":TIME:CYCLE N,%d", n))
}

// QueryCycles accepts both "5" and the "N,5" form.
func (t *Timer) QueryCycles() (int, error) {
	reply, err := t.ch.Query(":TIME:CYCLE?")
	if err != nil {
		return 0, err
	}
	if i := strings.LastIndex(reply, ","); i >= 0 {
		reply = reply[i+1:]
	}
	n, err := scpi.ParseInt(reply)
	return n, errors.WithMessage(err, ":TIME:CYCLE?")
}

func (t *Timer) Groups(n int) error {
	return t.ch.Write(fmt.Sprintf(":TIME:GROUP %d", n))
}

func (t *Timer) QueryGroups() (int, error) {
	return scpi.QueryInt(t.ch, ":TIME:GROUP?")
}

// Parameter sets slot group (0-based): hold volts and amps for d.
func (t *Timer) Parameter(group int, volts, amps float64, d time.Duration) error {
	return t.ch.Write(fmt.Sprintf(":TIME:PARA %d,%s,%s,%s",
		group, scpi.FormatFloat(volts), scpi.FormatFloat(amps), scpi.FormatSeconds(d)))
}

// TurnOffWhenDone picks the end state: output off, or hold the last group.
func (t *Timer) TurnOffWhenDone(off bool) error {
	state := "LAST"
	if off {
		state = "OFF"
	}
	return t.ch.Write(":TIME:ENDS " + state)
}

func (t *Timer) TurnOn(on bool) error {
	return t.ch.Write(":TIME:STAT " + scpi.OnOff(on))
}
