package ethercat

import (
	"bytes"
	"errors"
	"net"
	"sync"

	"github.com/songgao/packets/ethernet"
)

var (
	localMAC  = net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	remoteMAC = net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x02}
	otherMAC  = net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x03}
	broadMAC  = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	errLinkDown = errors.New("link down")
)

func testConfig(mtu int) Config {
	cfg := DefaultConfig()
	cfg.MTU = mtu
	cfg.Local = localMAC
	cfg.Destination = remoteMAC
	return cfg
}

func frameOf(dst, src net.HardwareAddr, tag uint16, payload []byte) ethernet.Frame {
	var frame ethernet.Frame
	buildFrame(&frame, dst, src, tag, payload)
	return frame
}

func patterned(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + i/251)
	}
	return b
}

// recordingSender keeps a copy of every frame it is given. fail decides
// which sends report an error, by index.
type recordingSender struct {
	mu     sync.Mutex
	frames []ethernet.Frame
	fail   func(i int) bool
}

func (s *recordingSender) Send(frame ethernet.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := len(s.frames)
	s.frames = append(s.frames, append(ethernet.Frame(nil), frame...))
	if s.fail != nil && s.fail(i) {
		return errLinkDown
	}
	return nil
}

func (s *recordingSender) payloads() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out [][]byte
	for _, f := range s.frames {
		out = append(out, payloadOf(f, false))
	}
	return out
}

// scriptedReceiver hands out frames in order, then blocks until release is
// closed (if set) and fails with err.
type scriptedReceiver struct {
	frames  []ethernet.Frame
	release chan struct{}
	err     error
}

func (r *scriptedReceiver) Receive() (ethernet.Frame, error) {
	if len(r.frames) > 0 {
		f := r.frames[0]
		r.frames = r.frames[1:]
		return f, nil
	}
	if r.release != nil {
		<-r.release
	}
	return nil, r.err
}

type fakeTransport struct {
	recordingSender
	scriptedReceiver
}

func (t *fakeTransport) Close() error {
	return nil
}

// recordingSink logs each call so tests can check write/flush pairing.
type recordingSink struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	calls    []string
	writeErr error
}

func (s *recordingSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, "write")
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	return s.buf.Write(p)
}

func (s *recordingSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, "flush")
	return nil
}

func (s *recordingSink) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buf.Bytes()...)
}
