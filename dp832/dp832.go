// Package dp832 drives a Rigol DP832 triple output power supply over SCPI.
//
// Several commands act on the instrument's "current channel", which is set
// by Instrument.NSelect or Instrument.Select and read implicitly by the
// Timer commands. When more than one caller shares a DP832, the
// select-then-act sequence has to be serialized by the callers;
// RunTimer issues it as one call with the channel passed explicitly.
package dp832

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jonathangjertsen/benchscpi/scpi"
)

// Config is the session setup for the DP832.
var Config = scpi.Config{
	Timeout:          scpi.DefaultTimeout,
	ReadTermination:  "\n",
	WriteTermination: "\n",
	Port:             5555,
}

var (
	ErrInvalidChannel = errors.New("dp832: channel must be CH1, CH2 or CH3")
	ErrUnknownMode    = errors.New("dp832: unknown output mode")
)

// Channel is a physical output, 1 to 3.
type Channel int

const (
	CH1 Channel = iota + 1
	CH2
	CH3
)

func (c Channel) validate() error {
	if c < CH1 || c > CH3 {
		return errors.Wrapf(ErrInvalidChannel, "got %d", int(c))
	}
	return nil
}

// Label is the channel name used on the wire, e.g. "CH2".
func (c Channel) Label() string {
	return "CH" + strconv.Itoa(int(c))
}

func (c Channel) String() string {
	return c.Label()
}

func ParseChannel(label string) (Channel, error) {
	label = strings.TrimSpace(label)
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(label), "CH"))
	if err != nil || !strings.HasPrefix(strings.ToUpper(label), "CH") {
		return 0, errors.Wrapf(ErrInvalidChannel, "label %q", label)
	}
	ch := Channel(n)
	if err := ch.validate(); err != nil {
		return 0, err
	}
	return ch, nil
}

// Mode is the regulation mode an output is in.
type Mode string

const (
	ConstantVoltage Mode = "CV"
	ConstantCurrent Mode = "CC"
	Unregulated     Mode = "UR"
)

func ParseMode(reply string) (Mode, error) {
	switch m := Mode(strings.TrimSpace(reply)); m {
	case ConstantVoltage, ConstantCurrent, Unregulated:
		return m, nil
	default:
		return "", errors.Wrapf(ErrUnknownMode, "reply %q", reply)
	}
}

type DP832 struct {
	scpi.Common

	Instrument *Instrument
	Output     *Output
	Source     *Source
	Timer      *Timer

	rm      *scpi.ResourceManager
	channel scpi.Channel
}

func New(rm *scpi.ResourceManager) *DP832 {
	if rm == nil {
		rm = scpi.NewResourceManager(nil)
	}
	return &DP832{rm: rm}
}

// NewWithChannel returns an instrument that is already open on ch.
func NewWithChannel(ch scpi.Channel) *DP832 {
	dp := &DP832{}
	dp.attach(ch)
	return dp
}

func (dp *DP832) Open(resourceName string) error {
	if dp.channel != nil {
		return errors.Errorf("dp832: already open")
	}
	if dp.rm == nil {
		dp.rm = scpi.NewResourceManager(nil)
	}

	session, err := dp.rm.Open(resourceName, Config)
	if err != nil {
		return err
	}
	dp.attach(session)
	return nil
}

func (dp *DP832) Close() error {
	if dp.channel == nil {
		return scpi.ErrClosed
	}
	err := dp.channel.Close()
	dp.channel = nil
	dp.Common = scpi.Common{}
	return err
}

func (dp *DP832) attach(ch scpi.Channel) {
	dp.channel = ch
	dp.Common = scpi.NewCommon(ch)
	dp.Instrument = &Instrument{ch: ch}
	dp.Output = &Output{ch: ch}
	dp.Source = &Source{ch: ch}
	dp.Timer = &Timer{ch: ch}
}

// TimerStep is one voltage/current setpoint held for Duration.
type TimerStep struct {
	Voltage  float64
	Current  float64
	Duration time.Duration
}

// TimerProgram is a complete timer sequence for one channel. The steps
// repeat Cycles times.
type TimerProgram struct {
	Channel     Channel
	Cycles      int
	Steps       []TimerStep
	OffWhenDone bool
}

func (p TimerProgram) String() string {
	return fmt.Sprintf("%s: %d step(s) x %d cycle(s)", p.Channel, len(p.Steps), p.Cycles)
}

// RunTimer stops any running sequence, selects p.Channel, loads the program,
// enables the output and starts the timer. It stops at the first failing
// command and returns its error unchanged.
func (dp *DP832) RunTimer(p TimerProgram) error {
	if err := p.Channel.validate(); err != nil {
		return err
	}
	if len(p.Steps) == 0 {
		return errors.New("dp832: timer program has no steps")
	}
	if dp.channel == nil {
		return scpi.ErrClosed
	}

	steps := []func() error{
		func() error { return dp.Timer.TurnOn(false) },
		func() error { return dp.Instrument.NSelect(p.Channel) },
		func() error { return dp.Timer.Cycles(p.Cycles) },
		func() error { return dp.Timer.Groups(len(p.Steps)) },
	}
	for i, step := range p.Steps {
		steps = append(steps, func() error {
			return dp.Timer.Parameter(i, step.Voltage, step.Current, step.Duration)
		})
	}
	steps = append(steps,
		func() error { return dp.Timer.TurnOffWhenDone(p.OffWhenDone) },
		func() error { return dp.Output.TurnOn(p.Channel, true) },
		func() error { return dp.Timer.TurnOn(true) },
	)

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
