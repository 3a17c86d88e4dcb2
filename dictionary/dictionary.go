package dictionary

import (
	"io"
	"unicode/utf8"

	"github.com/gomorph/ipadic/fst"
)

// PrefixEntry is one result of PrefixLookup: a dictionary entry matched
// against a prefix of the query text, and how many runes of the query that
// prefix consumed.
type PrefixEntry struct {
	RuneLen int
	Entry   *Entry
}

// Dictionary is the read-only facade over a loaded sysdic artifact set,
// combining the FST surface matcher (C2), the entry/connection/char-def
// tables (C1), and the homograph index a single entry-id-per-surface FST
// cannot represent on its own. Grounded on the teacher's MorphAnalyzer,
// which plays the same combining role over its own flattened tables.
type Dictionary struct {
	matcher     *fst.Matcher
	entries     []Entry
	bySurface   map[string][]EntryID
	connections *connectionMatrix
	chars       *charDefs
	unknowns    map[string][]UnknownTemplate
	closers     []io.Closer
}

func newDictionary(matcher *fst.Matcher, entries []Entry, connections *connectionMatrix, chars *charDefs, unknowns map[string][]UnknownTemplate, closers []io.Closer) *Dictionary {
	bySurface := make(map[string][]EntryID, len(entries))
	for i, e := range entries {
		id := EntryID(i)
		bySurface[e.Surface] = append(bySurface[e.Surface], id)
	}
	return &Dictionary{
		matcher:     matcher,
		entries:     entries,
		bySurface:   bySurface,
		connections: connections,
		chars:       chars,
		unknowns:    unknowns,
		closers:     closers,
	}
}

// Close closes the sysdic file handles Load opened for d, if any; the
// memory mappings made from them are not unmapped. A Dictionary returned
// by LoadFromMemory or WithUserEntries has nothing to close.
func (d *Dictionary) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Lookup returns every dictionary entry whose surface is exactly surface,
// in the order they were assigned entry-ids at build time. Returns nil if
// surface is not a dictionary word.
func (d *Dictionary) Lookup(surface string) []*Entry {
	ids, ok := d.bySurface[surface]
	if !ok {
		return nil
	}
	out := make([]*Entry, len(ids))
	for i, id := range ids {
		out[i] = &d.entries[id]
	}
	return out
}

// PrefixLookup returns every dictionary surface that is a prefix of text,
// ascending by length, along with every homograph entry for that surface.
// The FST only ever records one entry-id per surface; PrefixLookup
// resolves the full homograph set for each matched surface via the
// secondary index, so callers never see a truncated homograph list.
func (d *Dictionary) PrefixLookup(text string) []PrefixEntry {
	matches := d.matcher.Prefixes(text)
	out := make([]PrefixEntry, 0, len(matches))
	for _, m := range matches {
		surface := text[:m.ByteLen]
		ids := d.bySurface[surface]
		runeLen := utf8.RuneCountInString(surface)
		for _, id := range ids {
			out = append(out, PrefixEntry{RuneLen: runeLen, Entry: &d.entries[id]})
		}
	}
	return out
}

// TransCost returns the connection cost between a left and right context
// id, or an *InvalidConnectionIDError if either id is out of range.
func (d *Dictionary) TransCost(leftID, rightID uint16) (int16, error) {
	return d.connections.cost(leftID, rightID)
}

// CharCategories returns the ordered, deduplicated categories that apply
// to ch. Always nonempty; falls back to []string{DefaultCategory}.
func (d *Dictionary) CharCategories(ch rune) []string {
	return d.chars.categoriesFor(ch)
}

// InvokeAlways reports whether the unknown-word generator must always run
// for category, regardless of whether the dictionary already matched.
func (d *Dictionary) InvokeAlways(category string) bool {
	return d.chars.invokeAlways(category)
}

// Groups reports whether category groups consecutive same-category
// characters into one unknown-word candidate rather than using a fixed
// length limit.
func (d *Dictionary) Groups(category string) bool {
	return d.chars.groups(category)
}

// LengthLimit returns the maximum rune length unknown-word candidates
// under category may take when Groups(category) is false.
func (d *Dictionary) LengthLimit(category string) uint8 {
	return d.chars.lengthLimit(category)
}

// CategoryCompatible reports whether a character classified under
// nextCats can extend a run started by a character classified under
// baseCats and currently being grouped as category k.
func (d *Dictionary) CategoryCompatible(k string, baseCats, nextCats []string) bool {
	return compatible(k, baseCats, nextCats)
}

// UnknownTemplates returns the unknown-word synthesis rules registered
// for category, in file order. Returns nil if category has none (callers
// should fall back to DefaultCategory's templates, per spec.md §4.3).
func (d *Dictionary) UnknownTemplates(category string) []UnknownTemplate {
	return d.unknowns[category]
}

// EntryCount returns the number of dictionary entries loaded, including
// homographs.
func (d *Dictionary) EntryCount() int { return len(d.entries) }

// ConnectionsShape returns the connection matrix's row and column counts.
func (d *Dictionary) ConnectionsShape() (rows, cols int) {
	return d.connections.rows, d.connections.cols
}

// CategoryCount returns the number of distinct character categories
// defined in char_defs.bin.
func (d *Dictionary) CategoryCount() int { return len(d.chars.categories) }

// UnknownCategoryCount returns the number of categories that have at
// least one registered unknown-word template.
func (d *Dictionary) UnknownCategoryCount() int { return len(d.unknowns) }
