package fst

import "sort"

// BuildEntry is one (surface, value) pair fed to Build.
type BuildEntry struct {
	Surface string
	Value   uint32
}

// trieNode is the mutable construction-time representation; it is flattened
// into flatNode/flatEdge arrays once all entries are inserted. Mirrors the
// map[rune]*Node + Payload recursive shape used for the construction-time
// DAWG elsewhere in this corpus, keyed by byte instead of by rune.
type trieNode struct {
	children map[byte]*trieNode
	value    uint32
	isFinal  bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[byte]*trieNode)}
}

// Build constructs a Matcher from a set of (surface, value) pairs. If the
// same surface appears more than once, the first occurrence wins — callers
// that need every entry for a surface must keep a secondary surface->ids
// index (see dictionary.Dictionary).
func Build(entries []BuildEntry) *Matcher {
	root := newTrieNode()
	for _, e := range entries {
		node := root
		for i := 0; i < len(e.Surface); i++ {
			b := e.Surface[i]
			child, ok := node.children[b]
			if !ok {
				child = newTrieNode()
				node.children[b] = child
			}
			node = child
		}
		if !node.isFinal {
			node.isFinal = true
			node.value = e.Value
		}
	}

	m := &Matcher{}
	flattenTrie(root, m)
	return m
}

// flattenTrie performs a breadth-first layout of the construction-time trie
// into m's flat node/edge arrays, matching the teacher's flat-layout
// convention: a node's edges occupy one contiguous, byte-sorted window of
// the global edges array.
func flattenTrie(root *trieNode, m *Matcher) {
	order := []*trieNode{root}
	idOf := map[*trieNode]uint32{root: 0}

	for i := 0; i < len(order); i++ {
		node := order[i]
		bytesSorted := make([]byte, 0, len(node.children))
		for b := range node.children {
			bytesSorted = append(bytesSorted, b)
		}
		sort.Slice(bytesSorted, func(a, b int) bool { return bytesSorted[a] < bytesSorted[b] })

		for _, b := range bytesSorted {
			child := node.children[b]
			if _, seen := idOf[child]; !seen {
				idOf[child] = uint32(len(order))
				order = append(order, child)
			}
		}
	}

	m.nodes = make([]flatNode, len(order))
	var edges []flatEdge
	for i, node := range order {
		bytesSorted := make([]byte, 0, len(node.children))
		for b := range node.children {
			bytesSorted = append(bytesSorted, b)
		}
		sort.Slice(bytesSorted, func(a, b int) bool { return bytesSorted[a] < bytesSorted[b] })

		edgeIdx := uint32(len(edges))
		for _, b := range bytesSorted {
			child := node.children[b]
			edges = append(edges, flatEdge{Byte: b, Child: idOf[child]})
		}

		value := noValue
		if node.isFinal {
			value = node.value
		}
		m.nodes[i] = flatNode{EdgeIdx: edgeIdx, EdgeLen: uint32(len(bytesSorted)), Value: value}
	}
	m.edges = edges
}
