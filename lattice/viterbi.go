package lattice

import (
	"fmt"
	"math"

	"github.com/gomorph/ipadic/dictionary"
)

// Decode runs the forward minimum-cost relaxation and then the backward
// best-path extraction, per spec.md §4.4. Returns the winning nodes in
// left-to-right order, excluding the BOS/EOS anchors.
//
// Predecessors are tracked as node pointers rather than (position, index)
// pairs: unlike the original reference's node arena (indices chosen there
// to sidestep ownership across a borrow-checked graph), Go's garbage
// collector makes a direct *Node back-pointer both simpler and safe.
func Decode(l *Lattice, d *dictionary.Dictionary) ([]*Node, error) {
	if err := forward(l, d); err != nil {
		return nil, err
	}
	if !l.eos.reachable {
		return nil, fmt.Errorf("%w: no path to end of input", dictionary.ErrDecode)
	}
	return backward(l), nil
}

func forward(l *Lattice, d *dictionary.Dictionary) error {
	for pos := 0; pos <= l.runeLen; pos++ {
		preds := l.endAt[pos]
		for _, node := range l.startAt[pos] {
			if node == l.bos {
				continue
			}
			relax(node, preds, d)
		}
	}
	return nil
}

func relax(node *Node, preds []*Node, d *dictionary.Dictionary) {
	best := int64(math.MaxInt64)
	var bestPrev *Node
	for _, prev := range preds {
		if !prev.reachable {
			continue
		}
		// Load-time validation guarantees every entry's left_id/right_id is
		// in range; unknown-word template ids are not checked there. A pair
		// TransCost rejects (an unchecked template id, or a Dictionary built
		// by LoadFromMemory) skips this predecessor.
		transCost, err := d.TransCost(prev.RightID, node.LeftID)
		if err != nil {
			continue
		}
		cost := prev.minCost + int64(transCost) + int64(node.Cost)
		if cost < best {
			best = cost
			bestPrev = prev
		}
	}
	if bestPrev != nil {
		node.minCost = best
		node.back = bestPrev
		node.reachable = true
	}
}

func backward(l *Lattice) []*Node {
	var out []*Node
	for n := l.eos.back; n != nil && n != l.bos; n = n.back {
		out = append(out, n)
	}
	// back-pointers run end-to-start; reverse into left-to-right order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
