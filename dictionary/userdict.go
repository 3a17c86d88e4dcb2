package dictionary

import "github.com/gomorph/ipadic/fst"

// UserEntry is one entry of a user dictionary overlay: the same fields a
// system dictionary entry carries, supplied inline rather than read out of
// a sysdic artifact.
type UserEntry = Entry

// WithUserEntries returns a new Dictionary that layers entries on top of
// base: an additive overlay, not a mutation of base (base remains valid
// and independently usable). Where a user entry's surface collides with a
// system entry's surface, the user entry is tried first during matching,
// per spec.md's supplemented user-dictionary feature; both remain
// reachable via Lookup, since the homograph index records every entry for
// a surface regardless of which dictionary contributed it.
//
// Grounded on the teacher's FST-merge approach to combining dictionaries
// (findChildGeneral walks one flattened trie; here the user entries and
// the base entries are merged into one matcher, rebuilt when the overlay
// is created).
func WithUserEntries(base *Dictionary, entries []UserEntry) *Dictionary {
	combined := make([]Entry, 0, len(base.entries)+len(entries))
	combined = append(combined, entries...)
	combined = append(combined, base.entries...)

	buildEntries := make([]fst.BuildEntry, len(combined))
	for i, e := range combined {
		buildEntries[i] = fst.BuildEntry{Surface: e.Surface, Value: uint32(i)}
	}
	matcher := fst.Build(buildEntries)

	bySurface := make(map[string][]EntryID, len(combined))
	for i, e := range combined {
		bySurface[e.Surface] = append(bySurface[e.Surface], EntryID(i))
	}

	return &Dictionary{
		matcher:     matcher,
		entries:     combined,
		bySurface:   bySurface,
		connections: base.connections,
		chars:       base.chars,
		unknowns:    base.unknowns,
	}
}
