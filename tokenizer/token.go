package tokenizer

import (
	"fmt"
	"strings"
)

// NodeType reports which kind of lattice node a Token was rendered from.
type NodeType string

const (
	SysDict NodeType = "SysDict"
	Unknown NodeType = "Unknown"
)

// Token is one rendered morpheme: a surface form plus the morphological
// feature columns carried by the backing dictionary entry, or their
// unknown-word placeholders. Grounded on the original Rust reference's
// Token struct (original_source/src/tokenizer.rs), kept as a supplemented
// feature since spec.md itself only names the field list, not a concrete
// type.
type Token struct {
	Surface      string
	PartOfSpeech string
	InflType     string
	InflForm     string
	BaseForm     string
	Reading      string
	Phonetic     string
	NodeType     NodeType
}

// placeholder is used for the Unknown-node feature fields that have no
// meaningful value, per spec.md §4.5.
const placeholder = "*"

// String renders surface TAB part_of_speech,infl_type,infl_form,base_form,
// reading,phonetic, per spec.md §6's programmatic surface contract.
func (t Token) String() string {
	fields := strings.Join([]string{t.PartOfSpeech, t.InflType, t.InflForm, t.BaseForm, t.Reading, t.Phonetic}, ",")
	return t.Surface + "\t" + fields
}

// ParseToken inverts String. part_of_speech may itself contain commas (it
// bundles IPADIC's four POS sub-levels into one field), so the last five
// comma-separated fields are taken as the atomic infl_type/infl_form/
// base_form/reading/phonetic columns and everything before them is
// rejoined as part_of_speech. NodeType is not recoverable from the
// rendered string and is left empty.
func ParseToken(s string) (Token, error) {
	tab := strings.IndexByte(s, '\t')
	if tab < 0 {
		return Token{}, fmt.Errorf("tokenizer: no tab separator in %q", s)
	}
	surface := s[:tab]
	fields := strings.Split(s[tab+1:], ",")
	if len(fields) < 6 {
		return Token{}, fmt.Errorf("tokenizer: expected at least 6 feature fields, got %d in %q", len(fields), s)
	}
	n := len(fields)
	return Token{
		Surface:      surface,
		PartOfSpeech: strings.Join(fields[:n-5], ","),
		InflType:     fields[n-5],
		InflForm:     fields[n-4],
		BaseForm:     fields[n-3],
		Reading:      fields[n-2],
		Phonetic:     fields[n-1],
	}, nil
}
