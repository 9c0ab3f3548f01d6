package ethercat

import (
	"net"

	"github.com/songgao/packets/ethernet"
)

const (
	MTU        = 1500
	MACSize    = 6
	HeaderSize = 14

	// DefaultEthertype tags full data frames.
	DefaultEthertype uint16 = 0x0806

	// Type values below this are IEEE 802.3 length fields, not ethertypes.
	minEthertype uint16 = 0x0600

	// MaxMTU keeps a whole untagged frame addressable by a 16-bit length.
	MaxMTU = 0xffff - HeaderSize
)

func ethertype(t uint16) ethernet.Ethertype {
	return ethernet.Ethertype{byte(t >> 8), byte(t)}
}

// headerLen is the header size of frame including up to two VLAN tags, or
// -1 if frame is too short to hold it.
func headerLen(frame ethernet.Frame) int {
	n := HeaderSize
	for tags := 0; tags < 2; tags++ {
		if len(frame) < n {
			return -1
		}
		tpid := uint16(frame[n-2])<<8 | uint16(frame[n-1])
		if tpid != 0x8100 && tpid != 0x88a8 {
			break
		}
		n += 4
	}
	if len(frame) < n {
		return -1
	}
	return n
}

func typeTag(frame ethernet.Frame) uint16 {
	n := headerLen(frame)
	if n < 0 {
		return 0
	}
	return uint16(frame[n-2])<<8 | uint16(frame[n-1])
}

// isLength reports whether a type tag is an 802.3 length field.
func isLength(tag uint16) bool {
	return tag < minEthertype
}

// buildFrame fills frame with an untagged header and a copy of payload.
func buildFrame(frame *ethernet.Frame, dst, src net.HardwareAddr, tag uint16, payload []byte) {
	*frame = (*frame)[:0]
	frame.Prepare(dst, src, ethernet.NotTagged, ethertype(tag), len(payload))
	// not frame.Payload(): a length tag of 0x8100 reads as a VLAN tag
	copy((*frame)[HeaderSize:], payload)
}

// payloadOf returns the data carried by frame, optionally cut to the length
// announced in an 802.3 type field.
func payloadOf(frame ethernet.Frame, trim bool) []byte {
	n := headerLen(frame)
	if n < 0 {
		return nil
	}
	payload := frame[n:]
	if trim {
		if tag := typeTag(frame); isLength(tag) && int(tag) < len(payload) {
			payload = payload[:tag]
		}
	}
	return payload
}
