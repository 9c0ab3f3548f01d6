//go:build !linux

package rawsock

import (
	"fmt"
	"runtime"

	ethercat "github.com/Wondertan/go-ethercat"
)

func (i *Interface) Open() (ethercat.Transport, error) {
	return nil, fmt.Errorf("raw sockets are not supported on %s", runtime.GOOS)
}
