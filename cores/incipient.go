package cores

import (
	"github.com/meshcores/corenet/internal/wire"
	"github.com/meshcores/corenet/route"
)

// IncipientCoresPackage is a payload paired with the route that will
// carry it, before any hop's encryption has been peeled off. An
// originator builds one locally and never transmits it as-is: it must
// first be turned into a LiveCoresPackage.
type IncipientCoresPackage struct {
	Route   *route.Route
	Payload []byte
}

// NewIncipientCoresPackage serializes value with the canonical wire
// codec and pairs it with rt. value's shape is fixed at compile time by
// the caller, so a serialization failure here is a programmer error,
// not a runtime condition callers are expected to recover from.
func NewIncipientCoresPackage(rt *route.Route, value interface{}) *IncipientCoresPackage {
	payload, err := wire.Marshal(value)
	if err != nil {
		panic("cores: payload does not serialize: " + err.Error())
	}
	return &IncipientCoresPackage{Route: rt, Payload: payload}
}

// NewIncipientCoresPackageBytes pairs rt with an already-serialized
// payload, for callers forwarding an opaque blob rather than
// originating structured data.
func NewIncipientCoresPackageBytes(rt *route.Route, payload []byte) *IncipientCoresPackage {
	return &IncipientCoresPackage{Route: rt, Payload: payload}
}
