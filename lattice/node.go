// Package lattice implements the Viterbi word lattice: a position-indexed
// graph of candidate words (dictionary matches and synthesized unknown
// words) over an input's runes, decoded into the single minimum-cost
// segmentation via dynamic programming.
package lattice

import "github.com/gomorph/ipadic/dictionary"

// kind distinguishes what a Node represents. A tagged struct is used
// instead of an interface with per-kind implementations: the Viterbi
// forward pass is a hot loop over every node in the lattice, and a single
// concrete type keeps that loop free of per-node dynamic dispatch and
// heap-boxed node values.
type kind uint8

const (
	kindBOS kind = iota
	kindEOS
	kindDict
	kindUnknown
)

// Node is one candidate word spanning [Start, End) runes of the input, or
// the synthetic beginning/end-of-sentence anchor at a zero-width position.
type Node struct {
	kind  kind
	Start int
	End   int

	Surface string
	LeftID  uint16
	RightID uint16
	Cost    int16

	// Entry is set only for kindDict nodes.
	Entry *dictionary.Entry
	// PartOfSpeech is set for kindUnknown nodes (Entry is nil there).
	PartOfSpeech string

	// Viterbi state, populated by forward (see Decode).
	minCost  int64
	back     *Node
	reachable bool
}

// IsUnknown reports whether this node is a synthesized unknown-word
// candidate rather than a dictionary match.
func (n *Node) IsUnknown() bool { return n.kind == kindUnknown }

// BaseForm returns the dictionary base form for a dict node, or the
// surface itself for an unknown-word node (spec.md's base_form_for_unknown
// behavior is applied one layer up, in the tokenizer, since it is a
// per-call option rather than a lattice-wide one).
func (n *Node) BaseForm() string {
	if n.kind == kindDict {
		return n.Entry.BaseForm
	}
	return n.Surface
}

// FeatureString returns the part-of-speech / feature column for this node.
func (n *Node) FeatureString() string {
	switch n.kind {
	case kindDict:
		return n.Entry.PartOfSpeech
	case kindUnknown:
		return n.PartOfSpeech
	default:
		return ""
	}
}

func newBOS() *Node {
	return &Node{kind: kindBOS, Start: 0, End: 0, minCost: 0, reachable: true}
}

func newEOS(textLen int) *Node {
	return &Node{kind: kindEOS, Start: textLen, End: textLen}
}

func newDictNode(start, end int, surface string, e *dictionary.Entry) *Node {
	return &Node{
		kind:    kindDict,
		Start:   start,
		End:     end,
		Surface: surface,
		LeftID:  e.LeftID,
		RightID: e.RightID,
		Cost:    e.WordCost,
		Entry:   e,
	}
}

func newUnknownNode(start, end int, surface string, t dictionary.UnknownTemplate) *Node {
	return &Node{
		kind:         kindUnknown,
		Start:        start,
		End:          end,
		Surface:      surface,
		LeftID:       t.LeftID,
		RightID:      t.RightID,
		Cost:         t.Cost,
		PartOfSpeech: t.PartOfSpeech,
	}
}
