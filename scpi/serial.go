package scpi

import (
	"os"
	"time"

	"go.bug.st/serial"
)

// serialPort is the subset of go.bug.st/serial.Port used here.
type serialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadTimeout(t time.Duration) error
}

// serialConn turns the port's per-read timeout into a deadline.
type serialConn struct {
	port     serialPort
	deadline time.Time
}

func openSerial(res Resource, cfg Config) (Conn, error) {
	port, err := serial.Open(res.Device, &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	return &serialConn{port: port}, nil
}

func (c *serialConn) SetDeadline(t time.Time) error {
	c.deadline = t
	return nil
}

func (c *serialConn) Read(p []byte) (int, error) {
	timeout := serial.NoTimeout
	if !c.deadline.IsZero() {
		timeout = time.Until(c.deadline)
		if timeout <= 0 {
			return 0, os.ErrDeadlineExceeded
		}
	}
	if err := c.port.SetReadTimeout(timeout); err != nil {
		return 0, err
	}

	n, err := c.port.Read(p)
	// the port reports an expired timeout as an empty read
	if n == 0 && err == nil {
		return 0, os.ErrDeadlineExceeded
	}
	return n, err
}

func (c *serialConn) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

func (c *serialConn) Close() error {
	return c.port.Close()
}
