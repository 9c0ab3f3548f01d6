package ethercat

import (
	"bytes"
	"errors"
	"fmt"
	"net"

	"github.com/gyf304/water/waterutil"
	"github.com/songgao/packets/ethernet"
)

// ErrReceive wraps a failure of the link while reading frames. It is fatal.
var ErrReceive = errors.New("receive failed")

// Reassembler writes the payload of every accepted frame to a Sink.
type Reassembler struct {
	receiver FrameReceiver
	output   Sink

	accept Acceptance
	trim   bool
	tag    uint16
	local  net.HardwareAddr
}

func NewReassembler(receiver FrameReceiver, output Sink, cfg Config) *Reassembler {
	return &Reassembler{
		receiver: receiver,
		output:   output,
		accept:   cfg.Accept,
		trim:     cfg.TrimPadding,
		tag:      cfg.Ethertype,
		local:    cfg.Local,
	}
}

// Run only returns on error. Each accepted frame results in exactly one
// write followed by one flush, even when its payload is empty.
func (r *Reassembler) Run() error {
	for {
		frame, err := r.receiver.Receive()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReceive, err)
		}

		if !r.accepts(frame) {
			continue
		}

		_, err = r.output.Write(payloadOf(frame, r.trim))
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		err = r.output.Flush()
		if err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	}
}

func (r *Reassembler) accepts(frame ethernet.Frame) bool {
	if r.accept == AcceptAll {
		return true
	}
	if headerLen(frame) < 0 {
		log.Debugf("Dropping runt frame of %d bytes", len(frame))
		return false
	}

	dst := frame.Destination()
	if !bytes.Equal(dst, r.local) && !waterutil.IsBroadcast(dst) {
		log.Debugf("Dropping frame for %s", dst)
		return false
	}

	tag := typeTag(frame)
	if tag != r.tag && !isLength(tag) {
		log.Debugf("Dropping frame of type %#04x from %s", tag, frame.Source())
		return false
	}
	return true
}
