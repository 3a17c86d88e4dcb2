package lattice

import "github.com/gomorph/ipadic/dictionary"

// Lattice holds every candidate node registered over a run of input text,
// indexed by start and end rune position so the Viterbi passes can walk it
// without a linear scan. Grounded on the teacher's dfsGenerate, which
// likewise explores candidate words position by position rather than
// building a full candidate list up front; here the candidates are
// generated ahead of time (by the caller, via AddDict/AddUnknown) and the
// lattice only owns the indexing and the decode.
type Lattice struct {
	runeLen int
	bos     *Node
	eos     *Node
	startAt [][]*Node
	endAt   [][]*Node
}

// New creates an empty lattice over a text of runeLen runes, already
// populated with its BOS and EOS anchors.
func New(runeLen int) *Lattice {
	l := &Lattice{
		runeLen: runeLen,
		bos:     newBOS(),
		eos:     newEOS(runeLen),
		startAt: make([][]*Node, runeLen+1),
		endAt:   make([][]*Node, runeLen+1),
	}
	l.register(l.bos)
	l.register(l.eos)
	return l
}

func (l *Lattice) register(n *Node) {
	l.startAt[n.Start] = append(l.startAt[n.Start], n)
	l.endAt[n.End] = append(l.endAt[n.End], n)
}

// AddDict registers a dictionary-match candidate spanning runes [start,
// end).
func (l *Lattice) AddDict(start, end int, surface string, e *dictionary.Entry) {
	l.register(newDictNode(start, end, surface, e))
}

// AddUnknown registers a synthesized unknown-word candidate spanning
// runes [start, end).
func (l *Lattice) AddUnknown(start, end int, surface string, t dictionary.UnknownTemplate) {
	l.register(newUnknownNode(start, end, surface, t))
}

// NodesStartingAt returns every node registered with Start == pos.
func (l *Lattice) NodesStartingAt(pos int) []*Node {
	return l.startAt[pos]
}

// HasNodesStartingAt reports whether any candidate (dict or unknown) has
// been registered at pos, excluding EOS. Used by the unknown-word
// generator to decide whether invoke_always categories still need to fire
// even though the dictionary already matched something there.
func (l *Lattice) HasNodesStartingAt(pos int) bool {
	for _, n := range l.startAt[pos] {
		if n.kind == kindDict || n.kind == kindUnknown {
			return true
		}
	}
	return false
}

// RuneLen returns the number of runes in the text this lattice was built
// over.
func (l *Lattice) RuneLen() int { return l.runeLen }
