// Package rawsock resolves network interfaces by name and opens raw
// AF_PACKET sockets on them.
package rawsock

import (
	"errors"
	"fmt"
	"net"

	logging "github.com/ipfs/go-log"
	"github.com/vishvananda/netlink"

	ethercat "github.com/Wondertan/go-ethercat"
)

var (
	ErrNoInterface    = errors.New("no such interface")
	ErrNoHardwareAddr = errors.New("interface has no hardware address")
)

var log = logging.Logger("rawsock")

// Interface is a link found through netlink.
type Interface struct {
	name  string
	index int
	mtu   int
	mac   net.HardwareAddr
}

var _ ethercat.Device = (*Interface)(nil)

// Resolve looks up the link called name. It fails if the link does not exist
// or has no Ethernet hardware address.
func Resolve(name string) (*Interface, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoInterface, name, err)
	}
	return fromAttrs(link.Attrs())
}

func fromAttrs(attrs *netlink.LinkAttrs) (*Interface, error) {
	if len(attrs.HardwareAddr) != ethercat.MACSize {
		return nil, fmt.Errorf("%w: %s", ErrNoHardwareAddr, attrs.Name)
	}

	mtu := attrs.MTU
	if mtu <= 0 {
		mtu = ethercat.MTU
	}

	log.Debugf("Resolved %s: index %d, mac %s, mtu %d", attrs.Name, attrs.Index, attrs.HardwareAddr, mtu)
	return &Interface{
		name:  attrs.Name,
		index: attrs.Index,
		mtu:   mtu,
		mac:   attrs.HardwareAddr,
	}, nil
}

func (i *Interface) Name() string {
	return i.name
}

func (i *Interface) MAC() net.HardwareAddr {
	return i.mac
}

// MTU is the link MTU reported by the kernel.
func (i *Interface) MTU() int {
	return i.mtu
}

func (i *Interface) netInterface() *net.Interface {
	return &net.Interface{
		Index:        i.index,
		MTU:          i.mtu,
		Name:         i.name,
		HardwareAddr: i.mac,
	}
}
