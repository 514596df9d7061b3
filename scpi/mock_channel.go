package scpi

import (
	"github.com/pkg/errors"
)

// MockChannel records every command and answers queries without an
// instrument. Handler, when set, answers every query; otherwise Replies is
// looked up by the exact command. OnWrite sees every written command, which
// lets a test keep simulated instrument state.
type MockChannel struct {
	Sent    []string
	Replies map[string]string
	Handler func(cmd string) (string, error)
	OnWrite func(cmd string)

	// WriteErr and QueryErr are returned by every Write or Query after the
	// command has been recorded.
	WriteErr error
	QueryErr error

	closed bool
}

func NewMockChannel() *MockChannel {
	return &MockChannel{Replies: map[string]string{}}
}

func (mc *MockChannel) Write(cmd string) error {
	if mc.closed {
		return ErrClosed
	}
	mc.Sent = append(mc.Sent, cmd)
	if mc.OnWrite != nil {
		mc.OnWrite(cmd)
	}
	return mc.WriteErr
}

func (mc *MockChannel) Query(cmd string) (string, error) {
	if mc.closed {
		return "", ErrClosed
	}
	mc.Sent = append(mc.Sent, cmd)
	if mc.QueryErr != nil {
		return "", mc.QueryErr
	}
	if mc.Handler != nil {
		return mc.Handler(cmd)
	}
	reply, ok := mc.Replies[cmd]
	if !ok {
		return "", errors.Errorf("mock: no reply for %q", cmd)
	}
	return reply, nil
}

func (mc *MockChannel) Close() error {
	if mc.closed {
		return ErrClosed
	}
	mc.closed = true
	return nil
}

func (mc *MockChannel) IsClosed() bool {
	return mc.closed
}

// Last returns the most recent command, or "" if nothing was sent.
func (mc *MockChannel) Last() string {
	if len(mc.Sent) == 0 {
		return ""
	}
	return mc.Sent[len(mc.Sent)-1]
}
