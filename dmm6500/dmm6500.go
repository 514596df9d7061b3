// Package dmm6500 drives a Keithley DMM6500 bench multimeter over SCPI.
package dmm6500

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/jonathangjertsen/benchscpi/scpi"
)

// Config is the session setup for the DMM6500.
var Config = scpi.Config{
	Timeout:          5000 * time.Millisecond,
	ReadTermination:  "\n",
	WriteTermination: "\n",
	Encoding:         charmap.ISO8859_1,
	Port:             5025,
}

var ErrUnknownToken = errors.New("dmm6500: value has no protocol token")

// DMM6500 owns one session. The command groups share it and are nil until
// Open succeeds.
type DMM6500 struct {
	scpi.Common

	Sense   *Sense
	Trace   *Trace
	Trigger *Trigger

	rm      *scpi.ResourceManager
	channel scpi.Channel
}

func New(rm *scpi.ResourceManager) *DMM6500 {
	if rm == nil {
		rm = scpi.NewResourceManager(nil)
	}
	return &DMM6500{rm: rm}
}

// NewWithChannel returns an instrument that is already open on ch.
func NewWithChannel(ch scpi.Channel) *DMM6500 {
	d := &DMM6500{}
	d.attach(ch)
	return d
}

func (d *DMM6500) Open(resourceName string) error {
	if d.channel != nil {
		return errors.Errorf("dmm6500: already open")
	}
	if d.rm == nil {
		d.rm = scpi.NewResourceManager(nil)
	}

	session, err := d.rm.Open(resourceName, Config)
	if err != nil {
		return err
	}
	d.attach(session)
	return nil
}

// Close releases the session. Groups kept by the caller fail with
// scpi.ErrClosed from then on.
func (d *DMM6500) Close() error {
	if d.channel == nil {
		return scpi.ErrClosed
	}
	err := d.channel.Close()
	d.channel = nil
	d.Common = scpi.Common{}
	return err
}

func (d *DMM6500) attach(ch scpi.Channel) {
	d.channel = ch
	d.Common = scpi.NewCommon(ch)
	d.Sense = &Sense{ch: ch}
	d.Trace = &Trace{ch: ch}
	d.Trigger = &Trigger{ch: ch}
}

func lookup[T comparable](tokens map[T]string, v T, kind string) (string, error) {
	tok, ok := tokens[v]
	if !ok {
		return "", errors.Wrapf(ErrUnknownToken, "%s %v", kind, v)
	}
	return tok, nil
}
