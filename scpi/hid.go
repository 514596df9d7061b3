package scpi

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sstallion/go-hid"
)

// Declaring these as var so users can edit them if they have an unusual bridge
var (
	HIDReportSize = 64
	HIDReportID   = uint8(0)
)

type hidDevice interface {
	Write(b []byte) (int, error)
	ReadWithTimeout(b []byte, timeout time.Duration) (int, error)
	Close() error
}

// hidConn carries SCPI text over a USB HID serial bridge. Every report
// holds a length byte followed by up to HIDReportSize-1 bytes of text.
type hidConn struct {
	device   hidDevice
	deadline time.Time
	pending  []byte
}

func openHID(res Resource) (Conn, error) {
	// go-hid doc recomments calling this 'for concurrent programs'.
	if err := hid.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing HID library")
	}

	device, err := hid.OpenFirst(res.VendorID, res.ProductID)
	if err != nil {
		return nil, errors.Wrapf(err, "opening device with VID=%#04x, PID=%#04x", res.VendorID, res.ProductID)
	}
	return &hidConn{device: device}, nil
}

func (c *hidConn) SetDeadline(t time.Time) error {
	c.deadline = t
	return nil
}

func (c *hidConn) Write(p []byte) (int, error) {
	for _, report := range serializeReports(p) {
		if _, err := c.device.Write(report); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (c *hidConn) Read(p []byte) (int, error) {
	for len(c.pending) == 0 {
		timeout := time.Until(c.deadline)
		if c.deadline.IsZero() {
			// hidapi blocks on a negative timeout
			timeout = -time.Millisecond
		} else if timeout <= 0 {
			return 0, os.ErrDeadlineExceeded
		}

		report := make([]byte, HIDReportSize)
		n, err := c.device.ReadWithTimeout(report, timeout)
		if errors.Is(err, hid.ErrTimeout) {
			return 0, os.ErrDeadlineExceeded
		}
		if err != nil {
			return 0, err
		}

		payload, err := deserializeReport(report[:n])
		if err != nil {
			return 0, err
		}
		c.pending = payload
	}

	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *hidConn) Close() error {
	return c.device.Close()
}

// serializeReports splits data into output reports: report id, length
// byte, payload, zero padding.
func serializeReports(data []byte) [][]byte {
	chunk := HIDReportSize - 1
	var reports [][]byte
	for len(data) > 0 {
		n := min(len(data), chunk)
		report := make([]byte, 1+HIDReportSize)
		report[0] = HIDReportID
		report[1] = uint8(n)
		copy(report[2:], data[:n])
		reports = append(reports, report)
		data = data[n:]
	}
	return reports
}

func deserializeReport(buff []byte) ([]byte, error) {
	if len(buff) < 1 {
		return nil, errors.New("empty input report")
	}
	length := int(buff[0])
	if length > len(buff)-1 {
		return nil, errors.Errorf("length byte %d indicates a report of at least %d bytes, but it is only %d bytes", length, length+1, len(buff))
	}
	return buff[1 : 1+length], nil
}
