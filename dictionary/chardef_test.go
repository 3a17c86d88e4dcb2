package dictionary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoriesForUnionsPrimaryAndCompat(t *testing.T) {
	d := &charDefs{
		categories: map[string]CharCategory{
			"KANJI":   {Name: "KANJI"},
			"SYMBOL":  {Name: "SYMBOL"},
			DefaultCategory: {Name: DefaultCategory},
		},
		ranges: []codePointRange{
			{From: 0x4E00, To: 0x9FFF, Primary: "KANJI", Compat: []string{"SYMBOL"}},
		},
	}
	got := d.categoriesFor('桃')
	require.Equal(t, []string{"KANJI", "SYMBOL"}, got)
}

func TestCategoriesForDefaultWhenUncovered(t *testing.T) {
	d := &charDefs{categories: map[string]CharCategory{DefaultCategory: {Name: DefaultCategory}}}
	require.Equal(t, []string{DefaultCategory}, d.categoriesFor('x'))
}

func TestCategoriesForDeduplicatesAcrossOverlappingRanges(t *testing.T) {
	d := &charDefs{
		categories: map[string]CharCategory{
			"A": {Name: "A"},
			"B": {Name: "B"},
		},
		ranges: []codePointRange{
			{From: 0x41, To: 0x5A, Primary: "A"},
			{From: 0x41, To: 0x5A, Primary: "A", Compat: []string{"B"}},
		},
	}
	require.Equal(t, []string{"A", "B"}, d.categoriesFor('A'))
}

func TestCompatibleMatchesDirectCategory(t *testing.T) {
	require.True(t, compatible("KANJI", []string{"KANJI"}, []string{"KANJI", "SYMBOL"}))
}

func TestCompatibleRequiresBothDefault(t *testing.T) {
	// next is DEFAULT but the run's own category set is not: must not match.
	require.False(t, compatible("KANJI", []string{"KANJI"}, []string{DefaultCategory}))
	// both sides carry DEFAULT: compatible.
	require.True(t, compatible("KANJI", []string{DefaultCategory}, []string{DefaultCategory}))
}

func TestCompatibleRejectsUnrelatedCategory(t *testing.T) {
	require.False(t, compatible("KANJI", []string{"KANJI"}, []string{"HIRAGANA"}))
}
