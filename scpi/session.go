package scpi

import (
	"bufio"
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jonathangjertsen/benchscpi/internal/monitor"
)

// Conn is the byte stream a Session runs over. net.Conn satisfies it.
type Conn interface {
	io.ReadWriteCloser
	SetDeadline(t time.Time) error
}

// Session is a Channel over one open Conn. Each Write or Query runs under
// the session lock, so one request/reply pair never interleaves with
// another.
type Session struct {
	resource string
	cfg      Config
	log      *logrus.Entry

	mu     sync.Mutex
	conn   Conn
	reader *bufio.Reader
	closed bool
}

func NewSession(resource string, conn Conn, cfg Config, log *logrus.Logger) *Session {
	if log == nil {
		log = discardLogger()
	}
	return &Session{
		resource: resource,
		cfg:      cfg.withDefaults(),
		log:      log.WithField("resource", resource),
		conn:     conn,
		reader:   bufio.NewReader(conn),
	}
}

func (s *Session) Resource() string {
	return s.resource
}

func (s *Session) Timeout() time.Duration {
	return s.cfg.Timeout
}

func (s *Session) Write(cmd string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	err := s.send(cmd)
	s.observe("write", start, err)
	if err != nil {
		return err
	}

	s.log.WithField("cmd", cmd).Debug("write")
	return nil
}

func (s *Session) Query(cmd string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	reply, err := s.query(cmd)
	s.observe("query", start, err)
	if err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"cmd":     cmd,
		"reply":   reply,
		"elapsed": time.Since(start),
	}).Debug("query")
	return reply, nil
}

// Close releases the connection. Only the first call reaches the transport.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.log.Info("closing session")
	return s.conn.Close()
}

func (s *Session) query(cmd string) (string, error) {
	if err := s.send(cmd); err != nil {
		return "", err
	}
	return s.receive()
}

func (s *Session) send(cmd string) error {
	if s.closed {
		return ErrClosed
	}

	line := cmd + s.cfg.WriteTermination
	if s.cfg.Encoding != nil {
		encoded, err := s.cfg.Encoding.NewEncoder().String(line)
		if err != nil {
			return errors.Wrapf(err, "encoding command %q", cmd)
		}
		line = encoded
	}

	if err := s.conn.SetDeadline(time.Now().Add(s.cfg.Timeout)); err != nil {
		return err
	}
	_, err := io.WriteString(s.conn, line)
	return err
}

// receive reads up to and including the read termination, which is
// stripped from the returned reply.
func (s *Session) receive() (string, error) {
	term := []byte(s.cfg.ReadTermination)
	var buf []byte
	for !bytes.HasSuffix(buf, term) {
		b, err := s.reader.ReadByte()
		if err != nil {
			return "", err
		}
		buf = append(buf, b)
	}
	buf = buf[:len(buf)-len(term)]

	if s.cfg.Encoding != nil {
		decoded, err := s.cfg.Encoding.NewDecoder().Bytes(buf)
		if err != nil {
			return "", errors.Wrap(err, "decoding reply")
		}
		buf = decoded
	}
	return string(buf), nil
}

func (s *Session) observe(kind string, start time.Time, err error) {
	monitor.CommandsTotal.WithLabelValues(s.resource, kind).Inc()
	monitor.CommandDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		monitor.CommandErrors.WithLabelValues(s.resource, kind).Inc()
		s.log.WithError(err).Debugf("%s failed", kind)
	}
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
