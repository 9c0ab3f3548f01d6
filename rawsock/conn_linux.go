package rawsock

import (
	"fmt"

	"github.com/mdlayher/packet"
	"github.com/songgao/packets/ethernet"
	"golang.org/x/sys/unix"

	ethercat "github.com/Wondertan/go-ethercat"
)

// room for a double VLAN tag on inbound frames
const maxTagging = 8

type conn struct {
	*packet.Conn

	buf ethernet.Frame
}

// Open binds a raw socket to the interface that sees every frame on the
// link, outbound ones included.
func (i *Interface) Open() (ethercat.Transport, error) {
	c, err := packet.Listen(i.netInterface(), packet.Raw, unix.ETH_P_ALL, nil)
	if err != nil {
		return nil, fmt.Errorf("opening raw socket on %s: %w", i.name, err)
	}

	return &conn{
		Conn: c,
		buf:  make(ethernet.Frame, ethercat.HeaderSize+maxTagging+i.mtu),
	}, nil
}

func (c *conn) Send(frame ethernet.Frame) error {
	_, err := c.WriteTo(frame, &packet.Addr{HardwareAddr: frame.Destination()})
	return err
}

func (c *conn) Receive() (ethernet.Frame, error) {
	n, _, err := c.ReadFrom(c.buf[:cap(c.buf)])
	if err != nil {
		return nil, err
	}
	return c.buf[:n], nil
}
