package scpi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Interface int

const (
	TCPIP Interface = iota + 1
	ASRL
	HID
)

func (i Interface) String() string {
	switch i {
	case TCPIP:
		return "TCPIP"
	case ASRL:
		return "ASRL"
	case HID:
		return "HID"
	default:
		return fmt.Sprintf("Interface(%d)", int(i))
	}
}

// Resource is a parsed VISA-style resource name.
type Resource struct {
	Interface Interface

	// TCPIP; Port is 0 for INSTR names
	Host string
	Port int

	// ASRL
	Device string

	// HID
	VendorID  uint16
	ProductID uint16
}

func (r Resource) String() string {
	switch r.Interface {
	case TCPIP:
		if r.Port != 0 {
			return fmt.Sprintf("TCPIP::%s::%d::SOCKET", r.Host, r.Port)
		}
		return fmt.Sprintf("TCPIP::%s::INSTR", r.Host)
	case ASRL:
		return fmt.Sprintf("ASRL%s::INSTR", r.Device)
	case HID:
		return fmt.Sprintf("HID::%#04x::%#04x::INSTR", r.VendorID, r.ProductID)
	default:
		return "unknown"
	}
}

// ParseResource understands
//
//	TCPIP[board]::host::port::SOCKET
//	TCPIP[board]::host[::lan device][::INSTR]
//	ASRL<number|device path>[::INSTR]
//	HID::vid::pid[::INSTR]
//
// A numeric serial port n maps to COM<n>.
func ParseResource(name string) (Resource, error) {
	parts := strings.Split(strings.TrimSpace(name), "::")
	head := strings.ToUpper(parts[0])

	var (
		res Resource
		err error
	)
	switch {
	case strings.HasPrefix(head, "TCPIP") && isBoard(head[len("TCPIP"):]):
		res, err = parseTCPIP(parts[1:])
	case strings.HasPrefix(head, "ASRL"):
		res, err = parseASRL(parts[0][len("ASRL"):], parts[1:])
	case head == "HID":
		res, err = parseHID(parts[1:])
	default:
		err = errors.New("unsupported interface")
	}
	if err != nil {
		return Resource{}, errors.Wrapf(ErrUnknownResource, "%q: %v", name, err)
	}
	return res, nil
}

func isBoard(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseTCPIP(parts []string) (Resource, error) {
	if len(parts) == 0 || parts[0] == "" {
		return Resource{}, errors.New("missing host")
	}
	res := Resource{Interface: TCPIP, Host: parts[0]}
	rest := parts[1:]

	if n := len(rest); n > 0 && strings.EqualFold(rest[n-1], "SOCKET") {
		if n != 2 {
			return Resource{}, errors.New("SOCKET needs exactly one port")
		}
		port, err := strconv.Atoi(rest[0])
		if err != nil || port <= 0 || port > 65535 {
			return Resource{}, errors.Errorf("bad port %q", rest[0])
		}
		res.Port = port
		return res, nil
	}

	if n := len(rest); n > 0 && strings.EqualFold(rest[n-1], "INSTR") {
		rest = rest[:n-1]
	}
	// an optional LAN device name such as inst0 is accepted and ignored
	if len(rest) > 1 {
		return Resource{}, errors.New("too many fields")
	}
	return res, nil
}

func parseASRL(port string, parts []string) (Resource, error) {
	if port == "" {
		return Resource{}, errors.New("missing serial port")
	}
	if len(parts) > 1 || (len(parts) == 1 && !strings.EqualFold(parts[0], "INSTR")) {
		return Resource{}, errors.New("unexpected fields after serial port")
	}
	if _, err := strconv.Atoi(port); err == nil {
		port = "COM" + port
	}
	return Resource{Interface: ASRL, Device: port}, nil
}

func parseHID(parts []string) (Resource, error) {
	if n := len(parts); n == 3 && strings.EqualFold(parts[2], "INSTR") {
		parts = parts[:2]
	}
	if len(parts) != 2 {
		return Resource{}, errors.New("HID needs vendor and product id")
	}
	vid, err := strconv.ParseUint(parts[0], 0, 16)
	if err != nil {
		return Resource{}, errors.Errorf("bad vendor id %q", parts[0])
	}
	pid, err := strconv.ParseUint(parts[1], 0, 16)
	if err != nil {
		return Resource{}, errors.Errorf("bad product id %q", parts[1])
	}
	return Resource{Interface: HID, VendorID: uint16(vid), ProductID: uint16(pid)}, nil
}
