package neighborhood

import (
	"github.com/meshcores/corenet/crypto"
	"github.com/meshcores/corenet/internal/wire"
)

// NodeSignatures is the pair of signatures carried by every node
// record: complete covers the full inner record, obscured covers the
// same record with its address stripped.
type NodeSignatures struct {
	Complete []byte `cbor:"complete"`
	Obscured []byte `cbor:"obscured"`
}

// Equal reports whether s and other carry byte-identical signatures.
func (s *NodeSignatures) Equal(other *NodeSignatures) bool {
	if s == nil || other == nil {
		return s == other
	}
	return string(s.Complete) == string(other.Complete) && string(s.Obscured) == string(other.Obscured)
}

// NodeRecordInner is the canonically-serialized, signed portion of a
// node record. Its CBOR encoding is deterministic across peers because
// internal/wire encodes with canonical options, which sort the field
// keys independently of their declaration order.
type NodeRecordInner struct {
	PublicKey       crypto.Key   `cbor:"public_key"`
	NodeAddr        *NodeAddr    `cbor:"node_addr,omitempty"`
	IsBootstrapNode bool         `cbor:"is_bootstrap_node"`
	Neighbors       []crypto.Key `cbor:"neighbors"`
	Version         uint32       `cbor:"version"`
}

func (in NodeRecordInner) obscured() NodeRecordInner {
	out := in
	out.NodeAddr = nil
	out.Neighbors = append([]crypto.Key(nil), in.Neighbors...)
	return out
}

// generateSignature is the signing procedure: canonical serialization
// of the inner record, SHA-1 digest, then sign(digest).
func generateSignature(cryptde crypto.CryptDE, inner NodeRecordInner) ([]byte, error) {
	serialized, err := wire.Marshal(inner)
	if err != nil {
		// Serialization failure at this point is a programmer error:
		// the inner record's shape is fixed at compile time and always
		// encodable.
		panic(err)
	}
	digest := cryptde.Hash(serialized)
	return cryptde.Sign(digest[:])
}

// signBoth produces the complete/obscured signature pair for inner.
func signBoth(cryptde crypto.CryptDE, inner NodeRecordInner) (*NodeSignatures, error) {
	complete, err := generateSignature(cryptde, inner)
	if err != nil {
		return nil, err
	}
	obscured, err := generateSignature(cryptde, inner.obscured())
	if err != nil {
		return nil, err
	}
	return &NodeSignatures{Complete: complete, Obscured: obscured}, nil
}

// NodeRecord is the versioned descriptor of one node.
type NodeRecord struct {
	Inner      NodeRecordInner
	Signatures *NodeSignatures
}

// NewNodeRecord builds an unsigned record for publicKey.
func NewNodeRecord(publicKey crypto.Key, addr *NodeAddr, isBootstrap bool) *NodeRecord {
	return &NodeRecord{
		Inner: NodeRecordInner{
			PublicKey:       publicKey.Clone(),
			NodeAddr:        addr.Clone(),
			IsBootstrapNode: isBootstrap,
			Neighbors:       nil,
			Version:         0,
		},
	}
}

// PublicKey returns the record's identity key.
func (r *NodeRecord) PublicKey() crypto.Key { return r.Inner.PublicKey }

// NodeAddrOpt returns the record's address, or nil if unset.
func (r *NodeRecord) NodeAddrOpt() *NodeAddr { return r.Inner.NodeAddr }

// IsBootstrapNode reports the record's bootstrap flag.
func (r *NodeRecord) IsBootstrapNode() bool { return r.Inner.IsBootstrapNode }

// Neighbors returns the record's neighbor key list. The returned slice
// must not be mutated by the caller; use AddNeighbor/RemoveNeighbor.
func (r *NodeRecord) Neighbors() []crypto.Key { return r.Inner.Neighbors }

// Version returns the record's version counter.
func (r *NodeRecord) Version() uint32 { return r.Inner.Version }

// SetNodeAddr sets the record's address. Once set, an address may
// never be changed or replaced — only cleared via UnsetNodeAddr.
func (r *NodeRecord) SetNodeAddr(addr *NodeAddr) error {
	if r.Inner.NodeAddr != nil {
		return &ErrNodeAddrAlreadySet{Old: r.Inner.NodeAddr}
	}
	r.Inner.NodeAddr = addr.Clone()
	return nil
}

// UnsetNodeAddr always clears the record's address.
func (r *NodeRecord) UnsetNodeAddr() {
	r.Inner.NodeAddr = nil
}

// HasNeighbor reports whether key appears in the record's neighbor
// list.
func (r *NodeRecord) HasNeighbor(key crypto.Key) bool {
	for _, n := range r.Inner.Neighbors {
		if n.Equal(key) {
			return true
		}
	}
	return false
}

// AddNeighbor adds key to the record's neighbor list if not already
// present. Returns true if the list changed.
func (r *NodeRecord) AddNeighbor(key crypto.Key) bool {
	if r.HasNeighbor(key) {
		return false
	}
	r.Inner.Neighbors = append(r.Inner.Neighbors, key.Clone())
	return true
}

// RemoveNeighbor removes key from the record's neighbor list. Returns
// true if an entry was removed.
func (r *NodeRecord) RemoveNeighbor(key crypto.Key) bool {
	for i, n := range r.Inner.Neighbors {
		if n.Equal(key) {
			r.Inner.Neighbors = append(r.Inner.Neighbors[:i], r.Inner.Neighbors[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceNeighbors replaces the whole neighbor list, reporting whether
// the set of keys actually changed.
func (r *NodeRecord) ReplaceNeighbors(neighbors []crypto.Key) bool {
	if sameKeySet(r.Inner.Neighbors, neighbors) {
		return false
	}
	r.Inner.Neighbors = append([]crypto.Key(nil), neighbors...)
	return true
}

func sameKeySet(a, b []crypto.Key) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, k := range a {
		seen[string(k)]++
	}
	for _, k := range b {
		seen[string(k)]--
	}
	for _, count := range seen {
		if count != 0 {
			return false
		}
	}
	return true
}

// IncrementVersion advances the version counter by one.
func (r *NodeRecord) IncrementVersion() {
	r.Inner.Version++
}

// SetVersion advances the version counter to v if v is not lower than
// the current value; version is monotonically non-decreasing.
func (r *NodeRecord) SetVersion(v uint32) {
	if v > r.Inner.Version {
		r.Inner.Version = v
	}
}

// SetSignatures stores sigs, reporting whether they differ from what
// was already stored.
func (r *NodeRecord) SetSignatures(sigs *NodeSignatures) bool {
	if r.Signatures.Equal(sigs) {
		return false
	}
	r.Signatures = sigs
	return true
}

// SetSignaturesOnce sets sigs only if no signatures are currently
// stored, returning ErrNodeSignaturesAlreadySet otherwise. Used when
// signing a freshly created record, where a second signature would
// indicate a programmer error rather than a legitimate gossip update.
func (r *NodeRecord) SetSignaturesOnce(sigs *NodeSignatures) error {
	if r.Signatures != nil {
		return &ErrNodeSignaturesAlreadySet{}
	}
	r.Signatures = sigs
	return nil
}

// Sign computes and stores this record's signature pair using cryptde,
// failing only if signatures are already present.
func (r *NodeRecord) Sign(cryptde crypto.CryptDE) error {
	sigs, err := signBoth(cryptde, r.Inner)
	if err != nil {
		return err
	}
	return r.SetSignaturesOnce(sigs)
}

// Clone returns a deep, independent copy of r.
func (r *NodeRecord) Clone() *NodeRecord {
	clone := &NodeRecord{
		Inner: NodeRecordInner{
			PublicKey:       r.Inner.PublicKey.Clone(),
			NodeAddr:        r.Inner.NodeAddr.Clone(),
			IsBootstrapNode: r.Inner.IsBootstrapNode,
			Neighbors:       append([]crypto.Key(nil), r.Inner.Neighbors...),
			Version:         r.Inner.Version,
		},
	}
	if r.Signatures != nil {
		clone.Signatures = &NodeSignatures{
			Complete: append([]byte(nil), r.Signatures.Complete...),
			Obscured: append([]byte(nil), r.Signatures.Obscured...),
		}
	}
	return clone
}
