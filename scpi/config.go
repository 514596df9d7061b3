package scpi

import (
	"time"

	"golang.org/x/text/encoding"
)

const (
	DefaultTimeout     = 2 * time.Second
	DefaultTermination = "\n"
	DefaultPort        = 5025
	DefaultBaudRate    = 9600
)

// Config holds the per-session transport settings. Zero fields take the
// package defaults.
type Config struct {
	Timeout          time.Duration
	ReadTermination  string
	WriteTermination string

	// Encoding converts command and reply text; nil passes bytes through.
	Encoding encoding.Encoding

	// Port is used for TCPIP INSTR resources, which carry no port.
	Port int

	BaudRate int
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ReadTermination == "" {
		c.ReadTermination = DefaultTermination
	}
	if c.WriteTermination == "" {
		c.WriteTermination = DefaultTermination
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	return c
}
