package tokenizer

import "github.com/gomorph/ipadic/dictionary"

// fixtureDictionary builds a tiny in-memory dictionary for this package's
// tests: a couple of dictionary words, a single connection context, and a
// DEFAULT category configured to greedily group any unclassified run of
// characters into one unknown-word candidate (mirroring how a real
// IPADIC char.def typically configures its own DEFAULT fallback).
func fixtureDictionary() *dictionary.Dictionary {
	entries := []dictionary.Entry{
		{Surface: "日本", LeftID: 0, RightID: 0, WordCost: -300, PartOfSpeech: "名詞,固有名詞,地域,国", BaseForm: "日本"},
		{Surface: "語", LeftID: 0, RightID: 0, WordCost: -50, PartOfSpeech: "名詞,接尾,一般,*", BaseForm: "語"},
	}
	conns := dictionary.NewConnectionMatrix(1, 1, []int16{0})
	chars := dictionary.NewCharDefs(map[string]dictionary.CharCategory{
		dictionary.DefaultCategory: {Name: dictionary.DefaultCategory, InvokeAlways: true, Group: true},
	}, nil)
	unknowns := map[string][]dictionary.UnknownTemplate{
		dictionary.DefaultCategory: {{LeftID: 0, RightID: 0, Cost: 500, PartOfSpeech: "記号,一般,*,*"}},
	}
	return dictionary.LoadFromMemory(entries, conns, chars, unknowns)
}

func newFixtureTokenizer() *Tokenizer {
	return New(fixtureDictionary(), 0, false)
}
