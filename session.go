package ethercat

import (
	"fmt"
	"io"

	logging "github.com/ipfs/go-log"
)

var log = logging.Logger("ethercat")

// Session pumps input onto a link and, in listen mode, the link into output.
type Session struct {
	cfg Config

	transport Transport
	input     io.Reader
	output    Sink
}

// NewSession takes ownership of transport for the lifetime of the session.
// Closing it after Run returns is left to the caller.
func NewSession(cfg Config, transport Transport, input io.Reader, output Sink) (*Session, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, fmt.Errorf("%w: no transport", ErrInvalidConfig)
	}
	if input == nil {
		return nil, fmt.Errorf("%w: no input", ErrInvalidConfig)
	}
	if cfg.Listen && output == nil {
		return nil, fmt.Errorf("%w: listen mode needs an output", ErrInvalidConfig)
	}

	return &Session{
		cfg:       cfg,
		transport: transport,
		input:     input,
		output:    output,
	}, nil
}

// Run starts the workers and blocks until input is exhausted. In listen mode
// it keeps blocking until the Reassembler fails, which in practice means
// until the link does. A Reassembler failure ends Run at once.
func (s *Session) Run() error {
	sent := make(chan error, 1)
	go func() {
		stats, err := NewChunker(s.transport, s.cfg).Run(s.input)
		log.Infof("Sent %d frames (%d bytes) to %s, %d failed", stats.Frames, stats.Bytes, s.cfg.Destination, stats.Failed)
		sent <- err
	}()

	if !s.cfg.Listen {
		return <-sent
	}

	received := make(chan error, 1)
	go func() {
		received <- NewReassembler(s.transport, s.output, s.cfg).Run()
	}()

	log.Debugf("Listening with %s acceptance", s.cfg.Accept)

	select {
	case err := <-sent:
		if err != nil {
			log.Errorf("input ended with error: %s", err)
		}
		return <-received
	case err := <-received:
		return err
	}
}
