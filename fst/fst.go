// Package fst implements the byte-keyed ordered map used for surface-form
// lookup: exact match and common-prefix enumeration over the dictionary's
// vocabulary.
//
// The representation is a flattened trie over UTF-8 bytes: nodes and edges
// live in two dense arrays instead of a pointer graph, and edges leaving a
// node are binary-searched. This is the byte-keyed generalization of the
// rune-keyed flat DAWG technique (FlatNode/FlatEdge + sort.Search over a
// node's edge window) used for dictionary lookup elsewhere in this corpus.
package fst

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidDictionary is returned when a serialized FST fails to validate.
var ErrInvalidDictionary = errors.New("fst: invalid dictionary")

const noValue = ^uint32(0)

// flatNode is the on-disk and in-memory representation of one trie node.
type flatNode struct {
	EdgeIdx uint32
	EdgeLen uint32
	Value   uint32 // noValue if this node is not final
}

func (n flatNode) final() bool { return n.Value != noValue }

// flatEdge is one outgoing transition: consume Byte, move to Child.
type flatEdge struct {
	Byte  byte
	_pad  [3]byte
	Child uint32
}

// PrefixMatch is one common-prefix hit: the prefix is ByteLen bytes long and
// resolves to Value.
type PrefixMatch struct {
	ByteLen int
	Value   uint32
}

// Matcher is an immutable, read-only FST ready for exact and prefix lookup.
type Matcher struct {
	nodes []flatNode
	edges []flatEdge
}

// Exact returns the value associated with the exact key w, if any.
func (m *Matcher) Exact(w string) (uint32, bool) {
	node := uint32(0)
	for i := 0; i < len(w); i++ {
		child, ok := m.child(node, w[i])
		if !ok {
			return 0, false
		}
		node = child
	}
	if m.nodes[node].final() {
		return m.nodes[node].Value, true
	}
	return 0, false
}

// Prefixes returns every (byteLen, value) pair such that text's prefix of
// byteLen bytes is a key in the map. Results are emitted only at UTF-8
// character boundaries and are strictly increasing in byteLen.
func (m *Matcher) Prefixes(text string) []PrefixMatch {
	var out []PrefixMatch
	node := uint32(0)
	byteLen := 0
	for _, r := range text {
		runeLen := runeByteLen(r)
		ok := true
		for i := 0; i < runeLen; i++ {
			child, found := m.child(node, text[byteLen+i])
			if !found {
				ok = false
				break
			}
			node = child
		}
		if !ok {
			break
		}
		byteLen += runeLen
		if m.nodes[node].final() {
			out = append(out, PrefixMatch{ByteLen: byteLen, Value: m.nodes[node].Value})
		}
	}
	return out
}

func runeByteLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// child performs a binary search over node's outgoing edges for byte b.
func (m *Matcher) child(node uint32, b byte) (uint32, bool) {
	n := m.nodes[node]
	if n.EdgeLen == 0 {
		return 0, false
	}
	edges := m.edges[n.EdgeIdx : n.EdgeIdx+n.EdgeLen]
	i := sort.Search(len(edges), func(i int) bool { return edges[i].Byte >= b })
	if i < len(edges) && edges[i].Byte == b {
		return edges[i].Child, true
	}
	return 0, false
}

const magic = "IPF1"

// Bytes serializes the matcher into the dic.fst on-disk format: a small
// header (magic, node count, edge count) followed by the flat node and
// edge arrays, little-endian.
func (m *Matcher) Bytes() []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(magic)
	binary.Write(buf, binary.LittleEndian, uint64(len(m.nodes)))
	binary.Write(buf, binary.LittleEndian, uint64(len(m.edges)))
	for _, n := range m.nodes {
		binary.Write(buf, binary.LittleEndian, n)
	}
	for _, e := range m.edges {
		binary.Write(buf, binary.LittleEndian, e)
	}
	return buf.Bytes()
}

// Load parses a dic.fst artifact (typically an mmap'd byte slice) into a
// Matcher. The node and edge arrays are decoded into newly allocated
// slices; the returned Matcher does not reference raw.
func Load(raw []byte) (*Matcher, error) {
	if len(raw) < len(magic)+16 {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidDictionary)
	}
	if string(raw[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidDictionary)
	}
	r := bytes.NewReader(raw[len(magic):])
	var nodeCount, edgeCount uint64
	if err := binary.Read(r, binary.LittleEndian, &nodeCount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &edgeCount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}

	nodeSize := int(binary.Size(flatNode{}))
	edgeSize := int(binary.Size(flatEdge{}))
	headerLen := len(raw) - r.Len()

	nodesStart := headerLen
	nodesEnd := nodesStart + int(nodeCount)*nodeSize
	edgesEnd := nodesEnd + int(edgeCount)*edgeSize
	if edgesEnd > len(raw) {
		return nil, fmt.Errorf("%w: truncated node/edge arrays", ErrInvalidDictionary)
	}

	nodes := make([]flatNode, nodeCount)
	nr := bytes.NewReader(raw[nodesStart:nodesEnd])
	if err := binary.Read(nr, binary.LittleEndian, &nodes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}
	edges := make([]flatEdge, edgeCount)
	er := bytes.NewReader(raw[nodesEnd:edgesEnd])
	if err := binary.Read(er, binary.LittleEndian, &edges); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}

	m := &Matcher{nodes: nodes, edges: edges}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matcher) validate() error {
	for i, n := range m.nodes {
		if uint64(n.EdgeIdx)+uint64(n.EdgeLen) > uint64(len(m.edges)) {
			return fmt.Errorf("%w: node %d edge range out of bounds", ErrInvalidDictionary, i)
		}
	}
	for i, e := range m.edges {
		if e.Child >= uint32(len(m.nodes)) {
			return fmt.Errorf("%w: edge %d child out of bounds", ErrInvalidDictionary, i)
		}
	}
	return nil
}
