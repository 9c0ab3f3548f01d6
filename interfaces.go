package ethercat

import (
	"io"
	"net"

	"github.com/songgao/packets/ethernet"
)

// FrameSender is the outbound half of a link. Send must not retain frame
// after it returns.
type FrameSender interface {
	Send(frame ethernet.Frame) error
}

// FrameReceiver is the inbound half of a link. The returned frame is only
// valid until the next call to Receive.
type FrameReceiver interface {
	Receive() (ethernet.Frame, error)
}

// Transport is a full-duplex raw frame channel. Send and Receive may be
// called concurrently.
type Transport interface {
	FrameSender
	FrameReceiver
	io.Closer
}

// Device is a resolved network interface able to open a Transport.
type Device interface {
	Name() string
	MAC() net.HardwareAddr
	Open() (Transport, error)
}

// Sink is where reassembled bytes go.
type Sink interface {
	io.Writer
	Flush() error
}
