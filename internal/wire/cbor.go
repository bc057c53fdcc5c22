// Package wire provides the canonical, deterministic binary codec used
// for every on-wire structure in corenet: live CORES packages, gossip,
// and signed node-record inner structs. The same logical value must
// always serialize to the same bytes, since node-record signatures are
// computed over the serialized form.
package wire

import "github.com/fxamacker/cbor/v2"

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em

	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
	decMode = dm
}

// Marshal encodes v using the canonical CBOR encoding.
func Marshal(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR-encoded data into v.
func Unmarshal(data []byte, v interface{}) error {
	return decMode.Unmarshal(data, v)
}
