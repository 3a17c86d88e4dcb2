// Package tokenizer implements the streaming, chunked entry point: it
// wires the dictionary facade and the lattice/Viterbi decoder together
// and exposes a pull-based sequence of Tokens (or raw surfaces, in wakati
// mode) over arbitrarily long input.
package tokenizer

import (
	"fmt"

	"github.com/gomorph/ipadic/dictionary"
	"github.com/gomorph/ipadic/lattice"
)

const (
	// chunkSize is the preferred chunk length in characters (spec.md
	// §4.5's CHUNK).
	chunkSize = 500
	// maxChunkSize is the hard chunk length ceiling (spec.md §4.5's
	// MAX_CHUNK).
	maxChunkSize = 1024
	// defaultMaxUnknownLength is the tokenizer-level cap on unknown-word
	// candidate length, independent of any one category's length_limit.
	defaultMaxUnknownLength = 1024
)

var terminalPunctuation = map[rune]bool{
	'。': true, '、': true, '，': true, '．': true, '？': true,
	'!': true, '?': true, ',': true,
}

// Tokenizer holds the configuration and dictionary handle shared across
// every call to Tokenize. It carries no mutable state of its own and is
// safe to use concurrently from multiple goroutines, per spec.md §5.
type Tokenizer struct {
	dict             *dictionary.Dictionary
	maxUnknownLength int
	wakati           bool
}

// New builds a Tokenizer over dict. maxUnknownLength defaults to 1024
// when 0 is passed; wakati selects segmentation-only output by default
// (overridable per call via WithWakati).
func New(dict *dictionary.Dictionary, maxUnknownLength int, wakati bool) *Tokenizer {
	if maxUnknownLength <= 0 {
		maxUnknownLength = defaultMaxUnknownLength
	}
	return &Tokenizer{dict: dict, maxUnknownLength: maxUnknownLength, wakati: wakati}
}

type callConfig struct {
	wakati             bool
	baseFormForUnknown bool
}

// CallOption overrides one of Tokenize's per-call parameters.
type CallOption func(*callConfig)

// WithWakati overrides the tokenizer's default wakati setting for one
// call.
func WithWakati(wakati bool) CallOption {
	return func(c *callConfig) { c.wakati = wakati }
}

// WithBaseFormForUnknown controls whether Unknown tokens report their
// surface as base_form (true, the default) or the "*" placeholder
// (false).
func WithBaseFormForUnknown(v bool) CallOption {
	return func(c *callConfig) { c.baseFormForUnknown = v }
}

// Result is one item of a Tokenize stream: either a Token (normal mode)
// or a raw surface string (wakati mode), per spec.md §6.
type Result struct {
	Wakati  bool
	Token   Token
	Surface string
}

// Tokenize returns a lazy, pull-based stream of Results over text. No
// chunk is decoded until the caller asks for a Result from it; stopping
// iteration early does no further work, per spec.md §5's streaming
// contract.
func (tz *Tokenizer) Tokenize(text string, opts ...CallOption) *Stream {
	cfg := callConfig{wakati: tz.wakati, baseFormForUnknown: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Stream{tok: tz, remaining: []rune(text), cfg: cfg}
}

// Stream is a resumable cursor over one Tokenize call's chunks.
type Stream struct {
	tok       *Tokenizer
	remaining []rune
	cfg       callConfig

	buf  []Result
	idx  int
	done bool
}

// Next returns the next Result, or ok=false once the stream is exhausted.
func (s *Stream) Next() (Result, bool, error) {
	for {
		if s.idx < len(s.buf) {
			r := s.buf[s.idx]
			s.idx++
			return r, true, nil
		}
		if s.done {
			return Result{}, false, nil
		}
		if err := s.fill(); err != nil {
			return Result{}, false, err
		}
	}
}

func (s *Stream) fill() error {
	if len(s.remaining) == 0 {
		s.done = true
		return nil
	}

	n := nextChunkBoundary(s.remaining)
	chunk := s.remaining[:n]
	s.remaining = s.remaining[n:]

	nodes, err := decodeChunk(s.tok.dict, chunk, s.tok.maxUnknownLength)
	if err != nil {
		return fmt.Errorf("tokenizer: %w", err)
	}

	s.buf = make([]Result, len(nodes))
	for i, node := range nodes {
		s.buf[i] = renderNode(node, s.cfg)
	}
	s.idx = 0
	return nil
}

// All drains the stream into a slice. Intended for small inputs and
// tests; unbounded inputs should use Next directly.
func (s *Stream) All() ([]Result, error) {
	var out []Result
	for {
		r, ok, err := s.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, r)
	}
}

func renderNode(n *lattice.Node, cfg callConfig) Result {
	if cfg.wakati {
		return Result{Wakati: true, Surface: n.Surface}
	}

	if !n.IsUnknown() {
		e := n.Entry
		return Result{Token: Token{
			Surface:      n.Surface,
			PartOfSpeech: n.FeatureString(),
			InflType:     e.InflType,
			InflForm:     e.InflForm,
			BaseForm:     n.BaseForm(),
			Reading:      e.Reading,
			Phonetic:     e.Phonetic,
			NodeType:     SysDict,
		}}
	}

	baseForm := placeholder
	if cfg.baseFormForUnknown {
		baseForm = n.BaseForm()
	}
	return Result{Token: Token{
		Surface:      n.Surface,
		PartOfSpeech: n.FeatureString(),
		InflType:     placeholder,
		InflForm:     placeholder,
		BaseForm:     baseForm,
		Reading:      placeholder,
		Phonetic:     placeholder,
		NodeType:     Unknown,
	}}
}

// decodeChunk builds a lattice over chunk's runes, populates it with
// dictionary and unknown-word candidates, and runs the Viterbi decoder.
func decodeChunk(d *dictionary.Dictionary, chunk []rune, maxUnknownLength int) ([]*lattice.Node, error) {
	l := lattice.New(len(chunk))
	addDictionaryMatches(l, d, chunk)
	lattice.GenerateUnknowns(l, d, chunk, maxUnknownLength)
	return lattice.Decode(l, d)
}

func addDictionaryMatches(l *lattice.Lattice, d *dictionary.Dictionary, chunk []rune) {
	for start := 0; start < len(chunk); start++ {
		suffix := string(chunk[start:])
		for _, m := range d.PrefixLookup(suffix) {
			end := start + m.RuneLen
			l.AddDict(start, end, string(chunk[start:end]), m.Entry)
		}
	}
}

// nextChunkBoundary implements spec.md §4.5's chunking heuristic: the
// whole tail if it's short enough, otherwise the first safe split point
// between chunkSize and maxChunkSize, otherwise a hard cut at
// maxChunkSize.
func nextChunkBoundary(remaining []rune) int {
	if len(remaining) <= chunkSize {
		return len(remaining)
	}
	limit := maxChunkSize
	if limit > len(remaining) {
		limit = len(remaining)
	}
	for q := chunkSize; q <= limit; q++ {
		if isSafeSplit(remaining, q) {
			return q
		}
	}
	return limit
}

func isSafeSplit(remaining []rune, q int) bool {
	if q-1 >= 0 && q-1 < len(remaining) && terminalPunctuation[remaining[q-1]] {
		return true
	}
	if q >= 2 && remaining[q-2] == '\n' && remaining[q-1] == '\n' {
		return true
	}
	if q >= 4 && remaining[q-4] == '\r' && remaining[q-3] == '\n' && remaining[q-2] == '\r' && remaining[q-1] == '\n' {
		return true
	}
	return false
}
