package neighborhood

import (
	"github.com/meshcores/corenet/crypto"
	"github.com/meshcores/corenet/internal/wire"
)

// GossipNodeRecord is one entry of a Gossip message: a node record's
// inner fields plus its signature pair. It may or may not include the
// subject's address, depending on whether the sender chose to obscure
// it.
type GossipNodeRecord struct {
	Inner      NodeRecordInner `cbor:"inner"`
	Signatures NodeSignatures  `cbor:"signatures"`
}

// ToNodeRecord converts a gossip entry into a standalone NodeRecord,
// for admission into a Database.
func (g *GossipNodeRecord) ToNodeRecord() *NodeRecord {
	return &NodeRecord{
		Inner: NodeRecordInner{
			PublicKey:       g.Inner.PublicKey.Clone(),
			NodeAddr:        g.Inner.NodeAddr.Clone(),
			IsBootstrapNode: g.Inner.IsBootstrapNode,
			Neighbors:       append([]crypto.Key(nil), g.Inner.Neighbors...),
			Version:         g.Inner.Version,
		},
		Signatures: &NodeSignatures{
			Complete: append([]byte(nil), g.Signatures.Complete...),
			Obscured: append([]byte(nil), g.Signatures.Obscured...),
		},
	}
}

// Gossip is an ordered list of gossip node records.
type Gossip struct {
	Records []GossipNodeRecord `cbor:"records"`
}

// Serialize encodes the gossip message as canonical CBOR.
func (g *Gossip) Serialize() ([]byte, error) {
	return wire.Marshal(g)
}

// DeserializeGossip decodes a wire-format Gossip message.
func DeserializeGossip(data []byte) (*Gossip, error) {
	var g Gossip
	if err := wire.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}
