package dmm6500

import (
	"fmt"
	"time"

	"github.com/jonathangjertsen/benchscpi/scpi"
)

// Trigger loads trigger model templates. Limits are enforced by the
// instrument: duration 500 ns to 100 ks, delay 167 ns to 10 ks.
type Trigger struct {
	ch scpi.Channel
}

// DurationLoop measures continuously for duration after an initial delay,
// storing readings in buf.
func (t *Trigger) DurationLoop(duration, delay time.Duration, buf Buffer) error {
	return t.ch.Write(fmt.Sprintf(`TRIG:LOAD "DurationLoop", %s, %s, "%s"`,
		scpi.FormatSeconds(duration), scpi.FormatSeconds(delay), buf))
}

// SimpleLoop makes count measurements, each after delay.
func (t *Trigger) SimpleLoop(count int, delay time.Duration, buf Buffer) error {
	return t.ch.Write(fmt.Sprintf(`TRIG:LOAD "SimpleLoop", %d, %s, "%s"`,
		count, scpi.FormatSeconds(delay), buf))
}

// Empty clears every block of the trigger model.
func (t *Trigger) Empty() error {
	return t.ch.Write(`TRIG:LOAD "Empty"`)
}
