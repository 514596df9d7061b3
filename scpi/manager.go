package scpi

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ResourceManager opens sessions by resource name.
type ResourceManager struct {
	Log *logrus.Logger
}

func NewResourceManager(log *logrus.Logger) *ResourceManager {
	return &ResourceManager{Log: log}
}

func (rm *ResourceManager) Open(name string, cfg Config) (*Session, error) {
	res, err := ParseResource(name)
	if err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	var conn Conn
	switch res.Interface {
	case TCPIP:
		conn, err = dialTCP(res, cfg)
	case ASRL:
		conn, err = openSerial(res, cfg)
	case HID:
		conn, err = openHID(res)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", name)
	}

	s := NewSession(name, conn, cfg, rm.logger())
	s.log.WithField("timeout", cfg.Timeout).Info("session opened")
	return s, nil
}

func (rm *ResourceManager) logger() *logrus.Logger {
	if rm == nil || rm.Log == nil {
		return discardLogger()
	}
	return rm.Log
}

func dialTCP(res Resource, cfg Config) (Conn, error) {
	port := res.Port
	if port == 0 {
		port = cfg.Port
	}
	return net.DialTimeout("tcp", net.JoinHostPort(res.Host, strconv.Itoa(port)), cfg.Timeout)
}
