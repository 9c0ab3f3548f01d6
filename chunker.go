package ethercat

import (
	"fmt"
	"io"
	"net"

	"github.com/songgao/packets/ethernet"
)

// Stats counts what a Chunker handed to its sender.
type Stats struct {
	Frames int // frames attempted
	Failed int // frames the sender rejected
	Bytes  int // payload bytes attempted
}

// Chunker cuts a byte stream into frames of exactly mtu payload bytes, with
// one shorter frame at the end for whatever is left over.
type Chunker struct {
	sender FrameSender

	mtu   int
	batch int
	tag   uint16
	src   net.HardwareAddr
	dst   net.HardwareAddr

	frame ethernet.Frame
	stats Stats
}

func NewChunker(sender FrameSender, cfg Config) *Chunker {
	return &Chunker{
		sender: sender,
		mtu:    cfg.MTU,
		batch:  cfg.ReadBatch,
		tag:    cfg.Ethertype,
		src:    cfg.Local,
		dst:    cfg.Destination,
	}
}

// Run reads input until io.EOF and sends it out. Send failures are logged and
// skipped. A read error other than io.EOF ends the stream early: buffered
// bytes are still sent and the error is returned.
func (c *Chunker) Run(input io.Reader) (Stats, error) {
	c.stats = Stats{}

	var (
		buf     = make([]byte, 0, c.mtu)
		batch   = make([]byte, c.batch)
		readErr error
	)
	for {
		buf = c.drain(buf)

		n, err := input.Read(batch)
		buf = append(buf, batch[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			readErr = fmt.Errorf("reading input: %w", err)
			log.Errorf("%s, flushing %d buffered bytes", readErr, len(buf))
			break
		}
	}

	buf = c.drain(buf)
	if len(buf) > 0 {
		c.send(uint16(len(buf)), buf)
	}

	log.Debugf("Input done: %d frames, %d bytes, %d failed", c.stats.Frames, c.stats.Bytes, c.stats.Failed)
	return c.stats, readErr
}

// drain sends every full frame held in buf and returns the remainder moved to
// the front of buf.
func (c *Chunker) drain(buf []byte) []byte {
	off := 0
	for len(buf)-off >= c.mtu {
		c.send(c.tag, buf[off:off+c.mtu])
		off += c.mtu
	}
	if off == 0 {
		return buf
	}
	return append(buf[:0], buf[off:]...)
}

func (c *Chunker) send(tag uint16, payload []byte) {
	buildFrame(&c.frame, c.dst, c.src, tag, payload)

	c.stats.Frames++
	c.stats.Bytes += len(payload)

	err := c.sender.Send(c.frame)
	if err != nil {
		c.stats.Failed++
		log.Errorf("error sending frame %d (%d bytes) to %s: %s", c.stats.Frames, len(payload), c.dst, err)
	}
}
