package dictionary

// UnknownTemplate is one rule used to synthesize an unknown-word lattice
// node for a character category: the connection-cost ids and word cost to
// use, plus the part-of-speech feature string to report.
type UnknownTemplate struct {
	LeftID       uint16
	RightID      uint16
	Cost         int16
	PartOfSpeech string
}
