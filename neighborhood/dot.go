package neighborhood

import (
	"encoding/base64"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/meshcores/corenet/crypto"
)

// dotNode adapts a NodeRecord to gonum's graph.Node + encoding.Attributer
// contract so dot.Marshal can render it with a
// "<key-base64>\n<ip>:<ports>[\nbootstrap]" label, with the root styled
// filled.
type dotNode struct {
	id     int64
	record *NodeRecord
	isRoot bool
}

func (n *dotNode) ID() int64 { return n.id }

func (n *dotNode) Attributes() []encoding.Attribute {
	label := base64.RawStdEncoding.EncodeToString(n.record.PublicKey())
	if addr := n.record.NodeAddrOpt(); addr != nil {
		label += "\\n" + addr.String()
	}
	if n.record.IsBootstrapNode() {
		label += "\\nbootstrap"
	}

	attrs := []encoding.Attribute{{Key: "label", Value: fmt.Sprintf("%q", label)}}
	if n.isRoot {
		attrs = append(attrs, encoding.Attribute{Key: "style", Value: "filled"})
	}
	return attrs
}

type dotEdge struct {
	from, to *dotNode
}

func (e *dotEdge) From() graph.Node { return e.from }
func (e *dotEdge) To() graph.Node   { return e.to }
func (e *dotEdge) ReversedEdge() graph.Edge {
	return &dotEdge{from: e.to, to: e.from}
}

func (e *dotEdge) Attributes() []encoding.Attribute {
	if e.from.record.IsBootstrapNode() || e.to.record.IsBootstrapNode() {
		return []encoding.Attribute{{Key: "style", Value: "dashed"}}
	}
	return nil
}

// ToDotGraph renders a deterministic GraphViz "digraph db { ... }"
// representation of db for debugging.
func (db *Database) ToDotGraph() (string, error) {
	db.mu.Lock()
	keys := make([]crypto.Key, 0, len(db.byKey))
	for k := range db.byKey {
		keys = append(keys, crypto.Key(k))
	}
	sort.Slice(keys, func(i, j int) bool { return string(keys[i]) < string(keys[j]) })

	g := simple.NewDirectedGraph()
	nodes := make(map[string]*dotNode, len(keys))
	for i, k := range keys {
		rec := db.byKey[string(k)]
		n := &dotNode{id: int64(i), record: rec, isRoot: rec.PublicKey().Equal(db.rootKey)}
		nodes[string(k)] = n
		g.AddNode(n)
	}
	for _, k := range keys {
		from := nodes[string(k)]
		for _, to := range from.record.Neighbors() {
			toNode, ok := nodes[string(to)]
			if !ok {
				// A stale neighbor reference is tolerated by the
				// database; it simply has nothing to draw an edge to.
				continue
			}
			g.SetEdge(&dotEdge{from: from, to: toNode})
		}
	}
	db.mu.Unlock()

	bytes, err := dot.Marshal(g, "db", "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
