// Package parallel provides parallel execution helpers.
package parallel

import (
	"runtime"
	"sync"
)

// NumWorkers returns the default number of workers for parallel operations.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Chunk is a half-open index range [Start, End).
type Chunk struct {
	Start, End int
}

// Split divides [0, total) into at most n contiguous, non-empty chunks of
// near-equal size. The result depends only on total and n.
func Split(total, n int) []Chunk {
	if total <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}

	chunkSize := (total + n - 1) / n
	chunks := make([]Chunk, 0, n)
	for s := 0; s < total; s += chunkSize {
		e := s + chunkSize
		if e > total {
			e = total
		}
		chunks = append(chunks, Chunk{Start: s, End: e})
	}
	return chunks
}

// Run executes fn once per chunk, each on its own goroutine, and waits for
// all of them. fn receives the chunk's position in chunks so callers can
// attach per-worker state.
func Run(chunks []Chunk, fn func(worker int, c Chunk)) {
	if len(chunks) == 0 {
		return
	}
	if len(chunks) == 1 {
		fn(0, chunks[0])
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for w, c := range chunks {
		go func(w int, c Chunk) {
			defer wg.Done()
			fn(w, c)
		}(w, c)
	}
	wg.Wait()
}
