package scpi

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Reply decoding sits right after the blocking read; command builders never
// look at reply text themselves.

func ParseInt(reply string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil {
		return 0, errors.Wrapf(err, "parsing integer reply %q", reply)
	}
	return n, nil
}

func ParseFloat(reply string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing numeric reply %q", reply)
	}
	return v, nil
}

// ParseOnOff is true only for the literal reply "ON". Anything else,
// including garbage, reads as off.
func ParseOnOff(reply string) bool {
	return reply == "ON"
}

// ParseFloats splits a comma separated reply such as the one returned by
// :TRACe:DATA?. An empty reply gives an empty slice.
func ParseFloats(reply string) ([]float64, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return []float64{}, nil
	}

	fields := strings.Split(reply, ",")
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing element %d of reply", i)
		}
		values[i] = v
	}
	return values, nil
}

func QueryInt(ch Channel, cmd string) (int, error) {
	reply, err := ch.Query(cmd)
	if err != nil {
		return 0, err
	}
	n, err := ParseInt(reply)
	return n, errors.WithMessage(err, cmd)
}

func QueryFloat(ch Channel, cmd string) (float64, error) {
	reply, err := ch.Query(cmd)
	if err != nil {
		return 0, err
	}
	v, err := ParseFloat(reply)
	return v, errors.WithMessage(err, cmd)
}

func QueryOnOff(ch Channel, cmd string) (bool, error) {
	reply, err := ch.Query(cmd)
	if err != nil {
		return false, err
	}
	return ParseOnOff(reply), nil
}

// FormatFloat renders the shortest representation: 4.2 -> "4.2", 5 -> "5".
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatSeconds renders d in seconds, e.g. 500ns -> "5e-07".
func FormatSeconds(d time.Duration) string {
	return FormatFloat(d.Seconds())
}

func OnOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
