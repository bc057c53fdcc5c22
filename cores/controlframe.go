package cores

import (
	"github.com/google/uuid"

	"github.com/meshcores/corenet/internal/wire"
)

// ControlFrame is the wire shape of a docker test harness's
// control-plane message: a named payload moving from one address to
// another. The harness itself is out of scope; this type exists so a
// consumer that builds one has a concrete frame to serialize against,
// keyed by a correlation ID rather than relying on stream order.
type ControlFrame struct {
	ID       uuid.UUID `cbor:"id"`
	FromAddr string    `cbor:"from_addr"`
	ToAddr   string    `cbor:"to_addr"`
	Payload  []byte    `cbor:"payload"`
}

// NewControlFrame stamps a fresh correlation ID onto a frame.
func NewControlFrame(fromAddr, toAddr string, payload []byte) ControlFrame {
	return ControlFrame{
		ID:       uuid.New(),
		FromAddr: fromAddr,
		ToAddr:   toAddr,
		Payload:  payload,
	}
}

// Serialize encodes f with the canonical wire codec.
func (f ControlFrame) Serialize() ([]byte, error) {
	return wire.Marshal(f)
}

// DeserializeControlFrame decodes a ControlFrame previously produced by
// Serialize.
func DeserializeControlFrame(data []byte) (ControlFrame, error) {
	var f ControlFrame
	err := wire.Unmarshal(data, &f)
	return f, err
}
