// Command ipadic-inspect opens a sysdic directory and prints summary
// statistics about the dictionary it contains. It is a diagnostic tool,
// not the dictionary builder (the builder remains an external
// collaborator, per spec.md §1/§6).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gomorph/ipadic/dictionary"
	"github.com/gomorph/ipadic/tokenizer"
)

func main() {
	dir := flag.String("sysdic", "", "path to a sysdic directory (defaults to IPADIC_SYSDIC_PATH or the built-in default)")
	sample := flag.String("sample", "", "optional sample text to tokenize and print")
	wakati := flag.Bool("wakati", false, "render the sample in wakati (surface-only) mode")
	flag.Parse()

	d, err := openDictionary(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ipadic-inspect:", err)
		os.Exit(1)
	}

	rows, cols := d.ConnectionsShape()
	fmt.Printf("entries:            %d\n", d.EntryCount())
	fmt.Printf("connection matrix:  %d x %d\n", rows, cols)
	fmt.Printf("char categories:    %d\n", d.CategoryCount())
	fmt.Printf("unknown categories: %d\n", d.UnknownCategoryCount())

	if *sample == "" {
		return
	}

	tz := tokenizer.New(d, 0, *wakati)
	results, err := tz.Tokenize(*sample).All()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ipadic-inspect: tokenize:", err)
		os.Exit(1)
	}

	fmt.Println()
	for _, r := range results {
		if r.Wakati {
			fmt.Println(r.Surface)
			continue
		}
		fmt.Printf("%s\t%s\n", r.Token.String(), r.Token.NodeType)
	}
}

func openDictionary(dir string) (*dictionary.Dictionary, error) {
	if dir != "" {
		return dictionary.Load(dir)
	}
	return dictionary.Instance()
}
