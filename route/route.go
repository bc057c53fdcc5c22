package route

import (
	"errors"

	"github.com/meshcores/corenet/crypto"
	"github.com/meshcores/corenet/internal/wire"
)

// Component names the target subsystem a hop hands its payload to once
// the route reaches it.
type Component uint8

const (
	ComponentNeighborhood Component = iota
	ComponentProxyClient
	ComponentProxyServer
	ComponentHopper
)

func (c Component) String() string {
	switch c {
	case ComponentNeighborhood:
		return "Neighborhood"
	case ComponentProxyClient:
		return "ProxyClient"
	case ComponentProxyServer:
		return "ProxyServer"
	case ComponentHopper:
		return "Hopper"
	default:
		return "Unknown"
	}
}

// RouteSegment is a sequence of public keys plus the component that
// should handle the payload once the segment's relays have all been
// traversed.
type RouteSegment struct {
	Keys      []crypto.Key
	Component Component
}

// NewRouteSegment validates and returns a RouteSegment. A segment
// shorter than two keys cannot define any hop.
func NewRouteSegment(keys []crypto.Key, component Component) (RouteSegment, error) {
	if len(keys) < 2 {
		return RouteSegment{}, errors.New("route segment must name at least two keys")
	}
	return RouteSegment{Keys: keys, Component: component}, nil
}

// hopPayload is the plaintext content of one hop, visible only to the
// relay that decrypts it.
type hopPayload struct {
	NextKey   crypto.Key `cbor:"next_key,omitempty"`
	Component Component  `cbor:"component"`
}

// Hop is one opaque, encrypted entry in a Route. Only the holder of
// the private key it was encoded for can decrypt it.
type Hop struct {
	Cipher []byte `cbor:"cipher"`
}

// Route is the ordered list of encrypted hops an originator builds for
// a CORES package.
type Route struct {
	Hops []Hop `cbor:"hops"`
}

// NewRoute concatenates segments into a single Route. The tail key of
// segment N and the head key of segment N+1 must designate the same
// relay — that shared key's hop switches into segment N+1's component
// context. Each hop is encrypted under the public key of the relay
// that is meant to decrypt it.
func NewRoute(segments []RouteSegment, cryptde crypto.CryptDE) (*Route, error) {
	if len(segments) == 0 {
		return nil, errors.New("route requires at least one segment")
	}

	var keys []crypto.Key
	var owners []Component
	for i, seg := range segments {
		if len(seg.Keys) < 2 {
			return nil, errors.New("route segment must name at least two keys")
		}
		if i == 0 {
			keys = append(keys, seg.Keys...)
			for range seg.Keys {
				owners = append(owners, seg.Component)
			}
			continue
		}
		if !keys[len(keys)-1].Equal(seg.Keys[0]) {
			return nil, errors.New("route segments must chain: tail of one segment must equal head of the next")
		}
		// The shared boundary key switches component context into
		// this segment.
		owners[len(owners)-1] = seg.Component
		keys = append(keys, seg.Keys[1:]...)
		for range seg.Keys[1:] {
			owners = append(owners, seg.Component)
		}
	}

	hops := make([]Hop, len(keys))
	for i, key := range keys {
		payload := hopPayload{Component: owners[i]}
		if i+1 < len(keys) {
			payload.NextKey = keys[i+1]
		}
		serialized, err := wire.Marshal(payload)
		if err != nil {
			// hopPayload's shape is fixed at compile time and always
			// encodable; a failure here is a programmer error.
			panic(err)
		}
		cipher, err := cryptde.Encode(key, serialized)
		if err != nil {
			return nil, err
		}
		hops[i] = Hop{Cipher: cipher}
	}

	return &Route{Hops: hops}, nil
}

// Shift decrypts the leading hop under cryptde's local private key,
// returning the next relay's key (nil if this hop is the route's
// terminus), the component that should handle the payload from here,
// and the remaining route to forward.
func (r *Route) Shift(cryptde crypto.CryptDE) (crypto.Key, Component, *Route, error) {
	if len(r.Hops) == 0 {
		return nil, 0, nil, errors.New("route has no hops to shift")
	}

	plain, err := cryptde.Decode(r.Hops[0].Cipher)
	if err != nil {
		return nil, 0, nil, err
	}

	var payload hopPayload
	if err := wire.Unmarshal(plain, &payload); err != nil {
		return nil, 0, nil, err
	}

	remaining := &Route{Hops: append([]Hop(nil), r.Hops[1:]...)}
	return payload.NextKey, payload.Component, remaining, nil
}

// IsTerminal reports whether r has no more hops to forward — the
// state an ExpiredCoresPackage's remaining route is always left in.
func (r *Route) IsTerminal() bool {
	return len(r.Hops) == 0
}
