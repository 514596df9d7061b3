package dmm6500

import (
	"fmt"

	"github.com/jonathangjertsen/benchscpi/scpi"
)

// Buffer names a reading buffer on the instrument.
type Buffer string

// The two default buffers always exist and can be neither made nor deleted.
const (
	DefBuffer1 Buffer = "defbuffer1"
	DefBuffer2 Buffer = "defbuffer2"
)

// Capacity limits for Make. MaxBufferSize asks the instrument for the
// largest buffer that fits.
const (
	MinBufferSize = 10
	MaxBufferSize = 0
)

// Element is one field of a stored reading.
type Element int

const (
	Formatted Element = iota + 1
	Reading
	Relative
	Timestamp
)

var elementTokens = map[Element]string{
	Formatted: "FORM",
	Reading:   "READ",
	Relative:  "REL",
	Timestamp: "TST",
}

func (e Element) Token() (string, error) {
	return lookup(elementTokens, e, "element")
}

func (e Element) String() string {
	if tok, ok := elementTokens[e]; ok {
		return tok
	}
	return fmt.Sprintf("Element(%d)", int(e))
}

// Trace reads and manages reading buffers.
type Trace struct {
	ch scpi.Channel
}

// Actual returns the number of readings in buf.
func (t *Trace) Actual(buf Buffer) (int, error) {
	return scpi.QueryInt(t.ch, fmt.Sprintf(`:TRACe:ACTual? "%s"`, buf))
}

// Data returns element el of readings 1..end as the raw comma separated
// reply; scpi.ParseFloats turns numeric elements into values.
//
// With FORMat:DATA set to REAL or SREAL only READ and REL are available;
// other elements make the instrument log error 1133.
func (t *Trace) Data(end int, buf Buffer, el Element) (string, error) {
	tok, err := el.Token()
	if err != nil {
		return "", err
	}
	return t.ch.Query(fmt.Sprintf(`:TRACe:DATA? 1, %d, "%s", %s`, end, buf, tok))
}

// Make creates a user buffer holding size readings (MinBufferSize or more,
// or MaxBufferSize). Reserved names are rejected by the instrument, not here.
func (t *Trace) Make(buf Buffer, size int) error {
	return t.ch.Write(fmt.Sprintf(`:TRACe:MAKE "%s", %d`, buf, size))
}

func (t *Trace) Delete(buf Buffer) error {
	return t.ch.Write(fmt.Sprintf(`:TRACe:DEL "%s"`, buf))
}

func (t *Trace) StatsClear(buf Buffer) error {
	return t.ch.Write(fmt.Sprintf(`:TRAC:STAT:CLE "%s"`, buf))
}

func (t *Trace) StatsAverage(buf Buffer) (float64, error) {
	return scpi.QueryFloat(t.ch, fmt.Sprintf(`:TRAC:STAT:AVER? "%s"`, buf))
}

func (t *Trace) StatsMax(buf Buffer) (float64, error) {
	return scpi.QueryFloat(t.ch, fmt.Sprintf(`:TRAC:STAT:MAX? "%s"`, buf))
}

func (t *Trace) StatsMin(buf Buffer) (float64, error) {
	return scpi.QueryFloat(t.ch, fmt.Sprintf(`:TRAC:STAT:MIN? "%s"`, buf))
}

func (t *Trace) StatsPeakToPeak(buf Buffer) (float64, error) {
	return scpi.QueryFloat(t.ch, fmt.Sprintf(`:TRAC:STAT:PK2Pk? "%s"`, buf))
}
