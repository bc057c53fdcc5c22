package neighborhood

import (
	"net"
	"sync"

	"github.com/meshcores/corenet/crypto"
	"github.com/meshcores/corenet/internal/xlog"
)

// Database is the in-memory graph of known node records: a map from
// public key to record, a secondary map from IP to key, and a
// designated root key identifying the local node.
//
// A Database is meant to be owned by exactly one actor; its methods
// are not internally synchronized beyond what's needed to make that
// single-owner contract cheap to verify in tests — see
// neighborhood.Actor for the mailbox wrapper that enforces it at
// runtime.
type Database struct {
	mu      sync.Mutex
	byKey   map[string]*NodeRecord
	byIP    map[string]crypto.Key
	rootKey crypto.Key
	log     *xlog.Logger
}

// New creates the singleton root record for publicKey, signs it with
// cryptde, and indexes it by key and (if addr is non-nil) by IP.
func New(publicKey crypto.Key, addr *NodeAddr, isBootstrap bool, cryptde crypto.CryptDE) (*Database, error) {
	root := NewNodeRecord(publicKey, addr, isBootstrap)
	if err := root.Sign(cryptde); err != nil {
		return nil, err
	}

	db := &Database{
		byKey:   make(map[string]*NodeRecord),
		byIP:    make(map[string]crypto.Key),
		rootKey: publicKey.Clone(),
		log:     xlog.New("neighborhood", "Database"),
	}
	db.byKey[string(publicKey)] = root
	if addr != nil {
		db.byIP[addr.IP.String()] = publicKey.Clone()
	}
	return db, nil
}

// Root returns the local node's own record. It is always present.
func (db *Database) Root() *NodeRecord {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.byKey[string(db.rootKey)]
}

// RootKey returns the local node's public key.
func (db *Database) RootKey() crypto.Key {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.rootKey.Clone()
}

// Keys returns every known public key.
func (db *Database) Keys() []crypto.Key {
	db.mu.Lock()
	defer db.mu.Unlock()
	keys := make([]crypto.Key, 0, len(db.byKey))
	for k := range db.byKey {
		keys = append(keys, crypto.Key(k))
	}
	return keys
}

// NodeByKey looks up a record by its public key.
func (db *Database) NodeByKey(key crypto.Key) (*NodeRecord, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	rec, ok := db.byKey[string(key)]
	return rec, ok
}

// NodeByIP looks up a record via the secondary IP index.
func (db *Database) NodeByIP(ip net.IP) (*NodeRecord, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	key, ok := db.byIP[ip.String()]
	if !ok {
		return nil, false
	}
	return db.byKey[string(key)], true
}

// HasNeighbor reports the directed adjacency from -> to.
func (db *Database) HasNeighbor(from, to crypto.Key) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	rec, ok := db.byKey[string(from)]
	if !ok {
		return false
	}
	return rec.HasNeighbor(to)
}

// AddNode inserts record, failing with ErrNodeKeyCollision if its key
// is already present. If the record carries an address, the IP index
// is updated.
func (db *Database) AddNode(record *NodeRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	key := record.PublicKey()
	if _, exists := db.byKey[string(key)]; exists {
		return &ErrNodeKeyCollision{Key: key.String()}
	}

	db.byKey[string(key)] = record
	if addr := record.NodeAddrOpt(); addr != nil {
		db.byIP[addr.IP.String()] = key.Clone()
	}
	return nil
}

// AddNeighbor records an edge from -> to. Returns false if the edge
// already existed, true if it was newly created. Fails with
// ErrNodeKeyNotFound if either key is absent.
func (db *Database) AddNeighbor(from, to crypto.Key) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	fromRec, ok := db.byKey[string(from)]
	if !ok {
		return false, &ErrNodeKeyNotFound{Key: from.String()}
	}
	if _, ok := db.byKey[string(to)]; !ok {
		return false, &ErrNodeKeyNotFound{Key: to.String()}
	}

	return fromRec.AddNeighbor(to), nil
}

// RemoveNeighbor drops the edge from root to key, clears key's stored
// address, and removes it from the IP index. Returns true iff an edge
// existed.
func (db *Database) RemoveNeighbor(key crypto.Key) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	root, ok := db.byKey[string(db.rootKey)]
	if !ok {
		return false, &ErrNodeKeyNotFound{Key: db.rootKey.String()}
	}
	target, ok := db.byKey[string(key)]
	if !ok {
		return false, &ErrNodeKeyNotFound{Key: key.String()}
	}

	removed := root.RemoveNeighbor(key)
	if addr := target.NodeAddrOpt(); addr != nil {
		delete(db.byIP, addr.IP.String())
	}
	target.UnsetNodeAddr()
	return removed, nil
}
