package dictionary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithUserEntriesAddsNewSurface(t *testing.T) {
	base := testDictionary()
	overlaid := WithUserEntries(base, []UserEntry{
		{Surface: "東京都", LeftID: 0, RightID: 0, WordCost: -500, PartOfSpeech: "名詞,固有名詞,地域,都道府県"},
	})

	require.Nil(t, base.Lookup("東京都"), "base dictionary must be unaffected")
	got := overlaid.Lookup("東京都")
	require.Len(t, got, 1)
	require.Equal(t, int16(-500), got[0].WordCost)

	// base surfaces remain reachable through the overlay.
	require.Len(t, overlaid.Lookup("もも"), 2)
}

func TestWithUserEntriesOverlappingSurfaceKeepsBothHomographs(t *testing.T) {
	base := testDictionary()
	overlaid := WithUserEntries(base, []UserEntry{
		{Surface: "もも", LeftID: 9, RightID: 9, WordCost: -999, PartOfSpeech: "user-defined"},
	})
	got := overlaid.Lookup("もも")
	require.Len(t, got, 3)
	require.Equal(t, "user-defined", got[0].PartOfSpeech)
}
