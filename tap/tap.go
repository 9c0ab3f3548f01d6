package tap

import (
	"fmt"
	"net"

	"github.com/gyf304/water"
	"github.com/songgao/packets/ethernet"

	ethercat "github.com/Wondertan/go-ethercat"
)

var inetName = "tap"

type tapInterface struct {
	*water.Interface

	mac   net.HardwareAddr
	frame ethernet.Frame
}

// New creates a TAP interface. An empty name lets the first free tapN be
// picked. On macOS this needs the TunTapOSX driver installed.
func New(name string) (ethercat.Device, error) {
	if name == "" {
		name = freeName()
	}

	tap, err := water.New(water.Config{
		DeviceType: water.TAP,
		PlatformSpecificParams: water.PlatformSpecificParams{
			Name: name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating tap %s: %w", name, err)
	}

	inet, err := net.InterfaceByName(tap.Name())
	if err != nil {
		tap.Close()
		return nil, err
	}
	if len(inet.HardwareAddr) != ethercat.MACSize {
		tap.Close()
		return nil, fmt.Errorf("tap %s has no hardware address", tap.Name())
	}

	return &tapInterface{
		Interface: tap,
		mac:       inet.HardwareAddr,
		frame:     make(ethernet.Frame, ethercat.HeaderSize+8+ethercat.MaxMTU),
	}, nil
}

func freeName() string {
	for i := 0; ; i++ {
		name := fmt.Sprint(inetName, i)
		if _, err := net.InterfaceByName(name); err != nil {
			return name
		}
	}
}

func (t *tapInterface) MAC() net.HardwareAddr {
	return t.mac
}

// Open hands out the device itself, a TAP fd is already a frame channel.
func (t *tapInterface) Open() (ethercat.Transport, error) {
	return t, nil
}

func (t *tapInterface) Send(frame ethernet.Frame) error {
	_, err := t.Write(frame)
	return err
}

func (t *tapInterface) Receive() (ethernet.Frame, error) {
	n, err := t.Read(t.frame[:cap(t.frame)])
	if err != nil {
		return nil, err
	}
	return t.frame[:n], nil
}
