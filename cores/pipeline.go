package cores

import (
	"github.com/meshcores/corenet/cores/masquerade"
	"github.com/meshcores/corenet/crypto"
	"github.com/meshcores/corenet/internal/wire"
	"github.com/meshcores/corenet/route"
)

// liveWire is the canonical on-wire shape of a LiveCoresPackage:
// serialized with the canonical encoding, encrypted under the next
// hop's public key, then masked for the transport stream.
type liveWire struct {
	Route   *route.Route `cbor:"route"`
	Payload []byte       `cbor:"payload"`
}

// ToWire serializes l, encrypts the result for recipientKey, and masks
// it for transmission on a byte stream.
func ToWire(l *LiveCoresPackage, recipientKey crypto.Key, cryptde crypto.CryptDE, masq masquerade.Masquerader) ([]byte, error) {
	serialized, err := wire.Marshal(liveWire{Route: l.Route, Payload: l.Payload})
	if err != nil {
		return nil, err
	}
	cipher, err := cryptde.Encode(recipientKey, serialized)
	if err != nil {
		return nil, err
	}
	return masq.Mask(cipher)
}

// TryUnmaskWire pulls one complete masked frame off the front of buf.
// It never decrypts: callers feed the returned chunk to DecodeWire
// once they hold it. A false ok means buf does not yet contain a whole
// frame and is not an error.
func TryUnmaskWire(buf []byte, masq masquerade.Masquerader) (chunk []byte, leftover []byte, ok bool, err error) {
	return masq.TryUnmask(buf)
}

// DecodeWire decrypts a chunk produced by TryUnmaskWire under cryptde's
// local key and deserializes it into a LiveCoresPackage.
func DecodeWire(chunk []byte, cryptde crypto.CryptDE) (*LiveCoresPackage, error) {
	plain, err := cryptde.Decode(chunk)
	if err != nil {
		return nil, err
	}
	var lw liveWire
	if err := wire.Unmarshal(plain, &lw); err != nil {
		return nil, err
	}
	return &LiveCoresPackage{Route: lw.Route, Payload: lw.Payload}, nil
}
