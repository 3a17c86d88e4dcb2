// Package dictionary holds the in-memory dictionary data model (entries,
// connection matrix, character categories, unknown-word templates), the
// facade that combines them with the fst package's surface-form matcher,
// and the loader for the on-disk sysdic artifact.
package dictionary

// EntryID is a dense, 32-bit index assigned to a Entry at build time.
type EntryID uint32

// Entry is one immutable dictionary entry: a surface form plus the
// morphological and connection-cost data MeCab/IPADIC associates with it.
// Multiple entries may share the same Surface (homographs).
type Entry struct {
	Surface      string
	LeftID       uint16
	RightID      uint16
	WordCost     int16
	PartOfSpeech string
	InflType     string
	InflForm     string
	BaseForm     string
	Reading      string
	Phonetic     string
}
