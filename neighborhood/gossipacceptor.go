package neighborhood

import (
	"github.com/meshcores/corenet/crypto"
	"github.com/meshcores/corenet/internal/xlog"
)

// Acceptor applies incoming Gossip to a Database. Implementations must
// not spend effort rejecting malformed gossip for security reasons:
// validation is cheap and logging-only, never a full signature check.
type Acceptor interface {
	Handle(db *Database, gossip *Gossip) bool
}

// RealAcceptor is the production gossip-merge algorithm.
type RealAcceptor struct {
	log *xlog.Logger
}

// NewRealAcceptor returns the default Acceptor.
func NewRealAcceptor() *RealAcceptor {
	return &RealAcceptor{log: xlog.New("neighborhood", "GossipAcceptor")}
}

// Handle runs Phase A (per-record absorption) then Phase B (root edge
// induction) and returns whether the database changed. A false return
// means db is bit-identical to its pre-call state.
func (a *RealAcceptor) Handle(db *Database, gossip *Gossip) bool {
	changed := a.absorbRecords(db, gossip)
	if a.induceRootEdges(db, gossip) {
		changed = true
	}
	a.log.Debug("gossip handled")
	return changed
}

// absorbRecords is Phase A: admit unknown records, reconcile addresses,
// and apply the version gate to known ones.
func (a *RealAcceptor) absorbRecords(db *Database, gossip *Gossip) bool {
	changed := false
	for i := range gossip.Records {
		gnr := &gossip.Records[i]
		if !a.isValid(gnr) {
			continue
		}

		key := gnr.Inner.PublicKey
		local, exists := db.NodeByKey(key)
		if !exists {
			if err := db.AddNode(gnr.ToNodeRecord()); err != nil {
				// Key reported absent by NodeByKey an instant ago but
				// AddNode now reports a collision: only possible under
				// concurrent mutation of a Database this Acceptor does
				// not own, which violates its single-owner contract.
				panic("node key magically appeared: " + err.Error())
			}
			changed = true
			continue
		}

		addrChanged := a.reconcileAddr(gnr, local, key)
		fieldsChanged := false
		if local.Version() < gnr.Inner.Version {
			local.SetVersion(gnr.Inner.Version)
			if local.ReplaceNeighbors(gnr.Inner.Neighbors) {
				fieldsChanged = true
			}
			if local.SetSignatures(&NodeSignatures{
				Complete: gnr.Signatures.Complete,
				Obscured: gnr.Signatures.Obscured,
			}) {
				fieldsChanged = true
			}
		}
		if addrChanged || fieldsChanged {
			changed = true
		}
	}
	return changed
}

// reconcileAddr applies the address-reconciliation rule: a local
// record with no address adopts the incoming one; a local record that
// already has one is never overwritten, regardless of version.
func (a *RealAcceptor) reconcileAddr(gnr *GossipNodeRecord, local *NodeRecord, key crypto.Key) bool {
	if gnr.Inner.NodeAddr == nil {
		return false
	}
	if local.NodeAddrOpt() == nil {
		if err := local.SetNodeAddr(gnr.Inner.NodeAddr); err != nil {
			// local had no address an instant ago; see absorbRecords.
			panic("node address magically appeared: " + err.Error())
		}
		return true
	}
	if !local.NodeAddrOpt().Equal(gnr.Inner.NodeAddr) {
		a.log.Error(
			"Gossip attempted to change IP address of node " + key.String() +
				" from " + local.NodeAddrOpt().IP.String() +
				" to " + gnr.Inner.NodeAddr.IP.String() + ": ignoring",
		)
	}
	return false
}

// induceRootEdges is Phase B: any gossip record carrying an address,
// including ones already known before this batch, is a candidate
// neighbor of the root (possessing an IP is the signal that the local
// node is willing to initiate sessions with it).
func (a *RealAcceptor) induceRootEdges(db *Database, gossip *Gossip) bool {
	changed := false
	rootKey := db.RootKey()
	for i := range gossip.Records {
		gnr := &gossip.Records[i]
		if gnr.Inner.NodeAddr == nil || gnr.Inner.PublicKey.Equal(rootKey) {
			continue
		}
		if _, known := db.NodeByKey(gnr.Inner.PublicKey); !known {
			// Rejected by Phase A's validity filter and never admitted.
			continue
		}
		added, err := db.AddNeighbor(rootKey, gnr.Inner.PublicKey)
		if err != nil {
			// Both keys were present an instant ago; a missing key here
			// means a Database invariant was violated outside this
			// Acceptor.
			panic("node magically disappeared: " + err.Error())
		}
		if added {
			changed = true
		}
	}
	if changed {
		db.Root().IncrementVersion()
	}
	return changed
}

// isValid is the cheap, logging-only validity filter applied before a
// record is absorbed. It never checks signatures.
func (a *RealAcceptor) isValid(gnr *GossipNodeRecord) bool {
	if gnr.Inner.PublicKey.Empty() {
		a.log.Error("Rejecting GossipNodeRecord with blank public key")
		return false
	}
	for _, n := range gnr.Inner.Neighbors {
		if n.Empty() {
			a.log.Error("Rejecting neighbor reference with blank public key")
			return false
		}
		if n.Equal(gnr.Inner.PublicKey) {
			a.log.Error("Gossip attempted to make node " + gnr.Inner.PublicKey.String() + " neighbor to itself: ignoring")
			return false
		}
	}
	return true
}
