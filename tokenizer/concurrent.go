package tokenizer

import (
	"runtime"
	"sync"
)

// TokenizeAllConcurrent tokenizes every text in texts independently across
// a worker pool sized to runtime.NumCPU(), collecting each call's full
// Result slice. Grounded on the teacher's ParseList/InflectList: a
// channel-fed pool of workers, each calling the ordinary single-text path
// with no shared per-call state, with results re-assembled in input order
// before return. Per spec.md §5, disjoint inputs may be analyzed in
// parallel without locking the dictionary.
func (tz *Tokenizer) TokenizeAllConcurrent(texts []string, opts ...CallOption) ([][]Result, []error) {
	results := make([][]Result, len(texts))
	errs := make([]error, len(texts))

	type job struct{ index int }
	jobs := make(chan job, len(texts))
	for i := range texts {
		jobs <- job{index: i}
	}
	close(jobs)

	workers := runtime.NumCPU()
	if workers > len(texts) {
		workers = len(texts)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := tz.Tokenize(texts[j.index], opts...).All()
				results[j.index] = res
				errs[j.index] = err
			}
		}()
	}
	wg.Wait()

	return results, errs
}
