package ethercat

import (
	"errors"
	"fmt"
	"net"
)

// ErrInvalidConfig is returned for a Config that cannot start a session.
var ErrInvalidConfig = errors.New("invalid configuration")

// Acceptance selects which inbound frames the Reassembler treats as data.
type Acceptance int

const (
	// AcceptAll takes every frame seen on the link.
	AcceptAll Acceptance = iota
	// AcceptStrict takes only frames addressed to the local interface (or
	// broadcast) that carry the data ethertype or an 802.3 length.
	AcceptStrict
)

func (a Acceptance) String() string {
	switch a {
	case AcceptAll:
		return "all"
	case AcceptStrict:
		return "strict"
	default:
		return fmt.Sprintf("Acceptance(%d)", int(a))
	}
}

// Config is fixed for the lifetime of a session.
type Config struct {
	MTU         int
	Local       net.HardwareAddr
	Destination net.HardwareAddr
	Listen      bool

	Ethertype   uint16
	ReadBatch   int
	Accept      Acceptance
	TrimPadding bool

	// RecvBuffer is reserved and currently unused.
	RecvBuffer int
}

// DefaultConfig returns a Config with every optional field set. Addresses
// still have to be filled in.
func DefaultConfig() Config {
	return Config{
		MTU:        MTU,
		Ethertype:  DefaultEthertype,
		ReadBatch:  8 * 1024,
		Accept:     AcceptAll,
		RecvBuffer: 4096,
	}
}

func (c Config) Validate() error {
	if c.MTU <= 0 || c.MTU > MaxMTU {
		return fmt.Errorf("%w: mtu %d out of range (1..%d)", ErrInvalidConfig, c.MTU, MaxMTU)
	}
	if len(c.Local) != MACSize {
		return fmt.Errorf("%w: local address %q is not %d bytes", ErrInvalidConfig, c.Local, MACSize)
	}
	if len(c.Destination) != MACSize {
		return fmt.Errorf("%w: destination address %q is not %d bytes", ErrInvalidConfig, c.Destination, MACSize)
	}
	if isLength(c.Ethertype) {
		return fmt.Errorf("%w: ethertype %#04x would read as a frame length", ErrInvalidConfig, c.Ethertype)
	}
	if c.ReadBatch <= 0 {
		return fmt.Errorf("%w: read batch must be positive", ErrInvalidConfig)
	}
	if c.Accept != AcceptAll && c.Accept != AcceptStrict {
		return fmt.Errorf("%w: unknown acceptance %v", ErrInvalidConfig, c.Accept)
	}
	return nil
}

// ParseMAC parses a colon separated 6-byte hardware address.
func ParseMAC(s string) (net.HardwareAddr, error) {
	mac, err := net.ParseMAC(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if len(mac) != MACSize {
		return nil, fmt.Errorf("%w: %q is not a %d byte hardware address", ErrInvalidConfig, s, MACSize)
	}
	return mac, nil
}
