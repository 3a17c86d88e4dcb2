package tokenizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeAllConcurrentMatchesSequentialResults(t *testing.T) {
	tz := newFixtureTokenizer()
	texts := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		if i%2 == 0 {
			texts = append(texts, "日本語")
		} else {
			texts = append(texts, fmt.Sprintf("한국어%d", i))
		}
	}

	got, errs := tz.TokenizeAllConcurrent(texts)
	for i, text := range texts {
		require.NoError(t, errs[i])
		want, err := tz.Tokenize(text).All()
		require.NoError(t, err)
		require.Equal(t, want, got[i])
	}
}
