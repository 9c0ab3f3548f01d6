package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	golog "github.com/whyrusleeping/go-logging"

	ethercat "github.com/Wondertan/go-ethercat"
	"github.com/Wondertan/go-ethercat/rawsock"
	"github.com/Wondertan/go-ethercat/tap"
)

const version = "1.0.0"

const usage = `ethercat %s

Usage:
  ethercat [OPTIONS] SOURCE_IF DEST_MAC

Arguments:
  SOURCE_IF  Host interface to send/receive frames on.
  DEST_MAC   Destination MAC to send frames to.

Options:
`

// errExit carries the process exit code for argument errors and for
// -h / -V, which exit with 0.
type errExit int

func (e errExit) Error() string {
	return fmt.Sprintf("exit %d", int(e))
}

type options struct {
	iface   string
	dest    string
	input   string
	tap     bool
	verbose bool

	cfg ethercat.Config
}

func parseArgs(args []string, output io.Writer) (*options, error) {
	opts := &options{cfg: ethercat.DefaultConfig()}
	var help, showVersion, strict bool

	flagset := flag.NewFlagSet("ethercat", flag.ContinueOnError)
	flagset.SetOutput(output)
	flagset.IntVar(&opts.cfg.RecvBuffer, "I", opts.cfg.RecvBuffer, "size for receive buffer (reserved)")
	flagset.IntVar(&opts.cfg.MTU, "O", opts.cfg.MTU, "send MTU, payload bytes per frame")
	flagset.StringVar(&opts.input, "i", "", "file to read input from instead of stdin")
	flagset.BoolVar(&opts.cfg.Listen, "l", false, "listen: write received payloads to stdout and keep running")
	flagset.BoolVar(&strict, "strict", false, "only accept frames addressed to SOURCE_IF with the data type")
	flagset.BoolVar(&opts.cfg.TrimPadding, "trim", false, "cut payloads to the length carried in 802.3 type fields")
	flagset.BoolVar(&opts.tap, "tap", false, "create a TAP device named SOURCE_IF instead of using a raw socket")
	flagset.BoolVar(&opts.verbose, "v", false, "debug logging")
	flagset.BoolVar(&help, "h", false, "print this help")
	flagset.BoolVar(&showVersion, "V", false, "print version")
	flagset.Func("type", fmt.Sprintf("ethertype of data frames (default %#04x)", ethercat.DefaultEthertype), func(s string) error {
		t, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return err
		}
		opts.cfg.Ethertype = uint16(t)
		return nil
	})
	flagset.Usage = func() {
		fmt.Fprintf(flagset.Output(), usage, version)
		flagset.PrintDefaults()
	}

	// flags may come before, between or after the positionals
	var free []string
	for {
		err := flagset.Parse(args)
		if errors.Is(err, flag.ErrHelp) {
			return nil, errExit(0)
		}
		if err != nil {
			return nil, errExit(1)
		}
		args = flagset.Args()
		if len(args) == 0 {
			break
		}
		free = append(free, args[0])
		args = args[1:]
	}

	if help {
		flagset.Usage()
		return nil, errExit(0)
	}
	if showVersion {
		fmt.Fprintf(output, "ethercat %s\n", version)
		return nil, errExit(0)
	}
	if len(free) < 2 {
		fmt.Fprintln(output, "Error: Need both SOURCE_IF and DEST_MAC arguments.")
		flagset.Usage()
		return nil, errExit(1)
	}

	opts.iface, opts.dest = free[0], free[1]
	if strict {
		opts.cfg.Accept = ethercat.AcceptStrict
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	var code errExit
	if errors.As(err, &code) {
		os.Exit(int(code))
	}

	level := golog.INFO
	if opts.verbose {
		level = golog.DEBUG
	}
	golog.SetLevel(level, "ethercat")
	golog.SetLevel(level, "rawsock")

	err = run(opts)
	if errors.Is(err, ethercat.ErrInvalidConfig) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func run(opts *options) (err error) {
	opts.cfg.Destination, err = ethercat.ParseMAC(opts.dest)
	if err != nil {
		return err
	}

	var dev ethercat.Device
	if opts.tap {
		dev, err = tap.New(opts.iface)
	} else {
		dev, err = rawsock.Resolve(opts.iface)
	}
	if err != nil {
		return err
	}
	opts.cfg.Local = dev.MAC()

	input := io.Reader(os.Stdin)
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	transport, err := dev.Open()
	if err != nil {
		return err
	}
	defer transport.Close()

	output := bufio.NewWriter(os.Stdout)
	session, err := ethercat.NewSession(opts.cfg, transport, input, output)
	if err != nil {
		return err
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)

	go func() {
		<-ch
		transport.Close()
		os.Exit(0)
	}()

	return session.Run()
}
