// Package scpi carries SCPI command lines to bench instruments.
//
// A Channel is the request/reply link used by the instrument packages: Write
// sends one command line and expects nothing back, Query sends one line and
// blocks for the single-line reply. Sessions implement Channel on top of a
// TCP socket, a serial port or a USB HID bridge.
package scpi

import (
	"os"

	"github.com/pkg/errors"
)

type Channel interface {
	Write(cmd string) error
	Query(cmd string) (string, error)
	Close() error
}

var (
	// ErrClosed is returned by every operation on a channel after Close.
	ErrClosed = errors.New("scpi: channel closed")

	// ErrTimeout matches (errors.Is) a reply that did not arrive within the
	// session timeout. Transports return it unchanged from their deadline.
	ErrTimeout = os.ErrDeadlineExceeded

	ErrUnknownResource = errors.New("scpi: unknown resource name")
)

// Common sends the IEEE 488.2 common commands (and INIT) that every
// instrument in this module shares. The zero value behaves as a closed
// channel.
type Common struct {
	ch Channel
}

func NewCommon(ch Channel) Common {
	return Common{ch: ch}
}

func (c Common) write(cmd string) error {
	if c.ch == nil {
		return ErrClosed
	}
	return c.ch.Write(cmd)
}

// Clear clears the status registers and error queue.
func (c Common) Clear() error {
	return c.write("*cls")
}

// Reset returns the instrument to its default settings.
func (c Common) Reset() error {
	return c.write("*rst")
}

// QueryID returns the raw identification string.
func (c Common) QueryID() (string, error) {
	if c.ch == nil {
		return "", ErrClosed
	}
	return c.ch.Query("*idn?")
}

// Init starts the trigger model.
func (c Common) Init() error {
	return c.write("INIT")
}

// Wait makes the instrument finish overlapped commands before it executes
// the next one. It does not block the caller.
func (c Common) Wait() error {
	return c.write("*WAI")
}
