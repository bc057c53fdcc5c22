package neighborhood

import (
	"net"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshcores/corenet/crypto"
)

func nullDE(seed byte) crypto.CryptDE {
	return crypto.NewNullCryptDE(crypto.Key([]byte{seed}))
}

func newTestDB(t *testing.T, rootKey crypto.Key) *Database {
	t.Helper()
	db, err := New(rootKey, nil, true, nullDE(1))
	require.NoError(t, err)
	return db
}

func captureLogs(t *testing.T) *test.Hook {
	t.Helper()
	logrus.SetLevel(logrus.DebugLevel)
	_, hook := test.NewNullLogger()
	logrus.AddHook(hook)
	t.Cleanup(func() {
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	})
	return hook
}

func hasLogMessage(hook *test.Hook, message string) bool {
	for _, entry := range hook.AllEntries() {
		if entry.Message == message {
			return true
		}
	}
	return false
}

// 1. Blank-key rejection.
func TestAcceptorRejectsBlankPublicKey(t *testing.T) {
	hook := captureLogs(t)
	rootKey := crypto.Key([]byte{1, 2, 3, 4})
	db := newTestDB(t, rootKey)
	acceptor := NewRealAcceptor()

	gossip := &Gossip{Records: []GossipNodeRecord{{
		Inner: NodeRecordInner{PublicKey: crypto.Key(nil)},
	}}}

	changed := acceptor.Handle(db, gossip)
	assert.False(t, changed)
	assert.Equal(t, []crypto.Key{rootKey}, db.Keys())
	assert.True(t, hasLogMessage(hook, "Rejecting GossipNodeRecord with blank public key"))
}

// 2. IP change rejection.
func TestAcceptorRejectsIPChange(t *testing.T) {
	hook := captureLogs(t)
	rootKey := crypto.Key([]byte{1, 2, 3, 4})
	db := newTestDB(t, rootKey)

	key := crypto.Key([]byte{2, 3, 4, 5})
	origAddr, err := NewNodeAddr(net.ParseIP("2.3.4.5"), []uint16{2345})
	require.NoError(t, err)
	require.NoError(t, db.AddNode(NewNodeRecord(key, origAddr, false)))

	newAddr, err := NewNodeAddr(net.ParseIP("3.4.5.6"), []uint16{12345})
	require.NoError(t, err)
	gossip := &Gossip{Records: []GossipNodeRecord{{
		Inner: NodeRecordInner{PublicKey: key, NodeAddr: newAddr, Version: 1},
	}}}

	acceptor := NewRealAcceptor()
	acceptor.Handle(db, gossip)

	rec, ok := db.NodeByKey(key)
	require.True(t, ok)
	assert.True(t, rec.NodeAddrOpt().Equal(origAddr))
	assert.True(t, hasLogMessage(hook, "Gossip attempted to change IP address of node AgMEBQ from 2.3.4.5 to 3.4.5.6: ignoring"))
}

// 3. Root-edge induction.
func TestAcceptorInducesRootEdge(t *testing.T) {
	captureLogs(t)
	rootKey := crypto.Key([]byte{1, 2, 3, 4})
	db := newTestDB(t, rootKey)

	key := crypto.Key([]byte{2, 3, 4, 5})
	addr, err := NewNodeAddr(net.ParseIP("2.3.4.5"), []uint16{2345})
	require.NoError(t, err)
	gossip := &Gossip{Records: []GossipNodeRecord{{
		Inner: NodeRecordInner{PublicKey: key, NodeAddr: addr},
	}}}

	acceptor := NewRealAcceptor()
	changed := acceptor.Handle(db, gossip)

	assert.True(t, changed)
	assert.True(t, db.HasNeighbor(rootKey, key))
	assert.EqualValues(t, 1, db.Root().Version())
}

// 4. Version gate.
func TestAcceptorVersionGateBlocksStaleUpdate(t *testing.T) {
	captureLogs(t)
	rootKey := crypto.Key([]byte{1, 2, 3, 4})
	db := newTestDB(t, rootKey)

	key := crypto.Key([]byte{2, 3, 4, 5})
	existing := NewNodeRecord(key, nil, false)
	existing.SetVersion(3)
	existing.AddNeighbor(rootKey)
	require.NoError(t, db.AddNode(existing))

	gossip := &Gossip{Records: []GossipNodeRecord{{
		Inner: NodeRecordInner{PublicKey: key, Version: 2, Neighbors: nil},
	}}}

	acceptor := NewRealAcceptor()
	changed := acceptor.Handle(db, gossip)

	rec, ok := db.NodeByKey(key)
	require.True(t, ok)
	assert.False(t, changed)
	assert.True(t, rec.HasNeighbor(rootKey))
}

// 5. New-only record admission with no address, no induction side effects.
func TestAcceptorAdmitsNewRecordWithoutAddress(t *testing.T) {
	captureLogs(t)
	rootKey := crypto.Key([]byte{1, 2, 3, 4})
	db := newTestDB(t, rootKey)

	key := crypto.Key([]byte{2, 3, 4, 5})
	gossip := &Gossip{Records: []GossipNodeRecord{{
		Inner: NodeRecordInner{PublicKey: key},
	}}}

	acceptor := NewRealAcceptor()
	changed := acceptor.Handle(db, gossip)

	rec, ok := db.NodeByKey(key)
	require.True(t, ok)
	assert.True(t, changed)
	assert.Nil(t, rec.NodeAddrOpt())
}

// 6. Self-neighbor rejection.
func TestAcceptorRejectsSelfNeighbor(t *testing.T) {
	hook := captureLogs(t)
	rootKey := crypto.Key([]byte{1, 2, 3, 4})
	db := newTestDB(t, rootKey)

	key := crypto.Key([]byte{5, 6, 7, 8})
	other := crypto.Key([]byte{9, 9, 9, 9})
	existing := NewNodeRecord(key, nil, false)
	require.NoError(t, db.AddNode(existing))

	gossip := &Gossip{Records: []GossipNodeRecord{{
		Inner: NodeRecordInner{PublicKey: key, Neighbors: []crypto.Key{key, other}},
	}}}

	acceptor := NewRealAcceptor()
	acceptor.Handle(db, gossip)

	rec, ok := db.NodeByKey(key)
	require.True(t, ok)
	assert.Empty(t, rec.Neighbors())
	assert.True(t, hasLogMessage(hook, "Gossip attempted to make node "+key.String()+" neighbor to itself: ignoring"))
}

func TestGossipSerializeDeserializeRoundTrip(t *testing.T) {
	rootKey := crypto.Key([]byte{1, 2, 3, 4})
	cryptde := nullDE(1)
	record := NewNodeRecord(rootKey, nil, true)
	require.NoError(t, record.Sign(cryptde))

	builder := NewGossipBuilder()
	require.NoError(t, builder.Add(record, true))
	gossip := builder.Build()

	data, err := gossip.Serialize()
	require.NoError(t, err)

	decoded, err := DeserializeGossip(data)
	require.NoError(t, err)
	require.Len(t, decoded.Records, 1)
	assert.True(t, decoded.Records[0].Inner.PublicKey.Equal(rootKey))
}

func TestHandleReturningFalseLeavesDatabaseUntouched(t *testing.T) {
	captureLogs(t)
	rootKey := crypto.Key([]byte{1, 2, 3, 4})
	db := newTestDB(t, rootKey)
	before, err := db.ToDotGraph()
	require.NoError(t, err)

	gossip := &Gossip{Records: []GossipNodeRecord{{
		Inner: NodeRecordInner{PublicKey: crypto.Key(nil)},
	}}}
	acceptor := NewRealAcceptor()
	changed := acceptor.Handle(db, gossip)
	require.False(t, changed)

	after, err := db.ToDotGraph()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
