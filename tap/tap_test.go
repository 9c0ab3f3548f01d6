package tap

import (
	"net"
	"strings"
	"testing"
)

func Test_freeName(t *testing.T) {
	name := freeName()
	if !strings.HasPrefix(name, inetName) {
		t.Errorf("freeName() = %q, want a %q prefix", name, inetName)
	}
	if _, err := net.InterfaceByName(name); err == nil {
		t.Errorf("freeName() = %q, which already exists", name)
	}
}
