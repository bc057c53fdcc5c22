package neighborhood

import (
	"fmt"

	"github.com/meshcores/corenet/crypto"
)

type builderEntry struct {
	record         *NodeRecord
	revealNodeAddr bool
}

// GossipBuilder collects (record, reveal_node_addr) entries and emits
// a Gossip message preserving addition order. Duplicate keys are
// rejected.
type GossipBuilder struct {
	entries []builderEntry
	seen    map[string]bool
}

// NewGossipBuilder returns an empty builder.
func NewGossipBuilder() *GossipBuilder {
	return &GossipBuilder{seen: make(map[string]bool)}
}

// Add includes record in the gossip under construction. When
// revealNodeAddr is false, the record's address is omitted and its
// obscured signature is used in place of its complete signature.
func (b *GossipBuilder) Add(record *NodeRecord, revealNodeAddr bool) error {
	key := string(record.PublicKey())
	if b.seen[key] {
		return fmt.Errorf("gossip builder: duplicate key %s", record.PublicKey())
	}
	b.seen[key] = true
	b.entries = append(b.entries, builderEntry{record: record, revealNodeAddr: revealNodeAddr})
	return nil
}

// Build renders the accumulated entries into a Gossip message.
func (b *GossipBuilder) Build() *Gossip {
	g := &Gossip{Records: make([]GossipNodeRecord, 0, len(b.entries))}
	for _, e := range b.entries {
		inner := e.record.Inner
		sig := e.record.Signatures
		var gnr GossipNodeRecord
		if e.revealNodeAddr {
			gnr.Inner = NodeRecordInner{
				PublicKey:       inner.PublicKey.Clone(),
				NodeAddr:        inner.NodeAddr.Clone(),
				IsBootstrapNode: inner.IsBootstrapNode,
				Neighbors:       append([]crypto.Key(nil), inner.Neighbors...),
				Version:         inner.Version,
			}
			if sig != nil {
				gnr.Signatures = NodeSignatures{Complete: sig.Complete, Obscured: sig.Obscured}
			}
		} else {
			obscuredInner := inner.obscured()
			gnr.Inner = obscuredInner
			if sig != nil {
				// The obscured signature was computed over the same
				// obscured inner shape, so it remains valid provenance
				// without revealing the address.
				gnr.Signatures = NodeSignatures{Complete: sig.Obscured, Obscured: sig.Obscured}
			}
		}
		g.Records = append(g.Records, gnr)
	}
	return g
}
