package neighborhood

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NodeAddr is an (IP, non-empty ordered set of ports) pair identifying
// where a node can be reached.
type NodeAddr struct {
	IP    net.IP   `cbor:"ip"`
	Ports []uint16 `cbor:"ports"`
}

// NewNodeAddr constructs a NodeAddr, rejecting an empty port list.
func NewNodeAddr(ip net.IP, ports []uint16) (*NodeAddr, error) {
	if len(ports) == 0 {
		return nil, errors.New("node address must carry at least one port")
	}
	portsCopy := make([]uint16, len(ports))
	copy(portsCopy, ports)
	return &NodeAddr{IP: ip, Ports: portsCopy}, nil
}

// Equal reports whether a and other name the same IP and port set.
func (a *NodeAddr) Equal(other *NodeAddr) bool {
	if a == nil || other == nil {
		return a == other
	}
	if !a.IP.Equal(other.IP) {
		return false
	}
	if len(a.Ports) != len(other.Ports) {
		return false
	}
	for i := range a.Ports {
		if a.Ports[i] != other.Ports[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of a.
func (a *NodeAddr) Clone() *NodeAddr {
	if a == nil {
		return nil
	}
	clone := &NodeAddr{IP: append(net.IP(nil), a.IP...), Ports: append([]uint16(nil), a.Ports...)}
	return clone
}

// String renders a in the form "IP:port1,port2,..." for logging.
func (a *NodeAddr) String() string {
	if a == nil {
		return "<no address>"
	}
	ports := make([]string, len(a.Ports))
	for i, p := range a.Ports {
		ports[i] = strconv.Itoa(int(p))
	}
	return fmt.Sprintf("%s:%s", a.IP.String(), strings.Join(ports, ","))
}
