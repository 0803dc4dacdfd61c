package matrix

import (
	"math/rand/v2"
	"sync"
)

// DefaultSeed seeds the process-wide generator until Seed is called.
const DefaultSeed uint64 = 42

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewPCG(DefaultSeed, DefaultSeed))
)

// Seed reseeds the process-wide generator used by Rand.
func Seed(seed uint64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng = rand.New(rand.NewPCG(seed, seed))
}

// Rand creates an m×n matrix of integers drawn uniformly from [-10, 10]
// using the process-wide generator. Intended for tests and demos.
func Rand(rows, cols int) *Matrix {
	rngMu.Lock()
	defer rngMu.Unlock()
	return RandFrom(rng, rows, cols)
}

// RandFrom is Rand with an explicit generator.
func RandFrom(r *rand.Rand, rows, cols int) *Matrix {
	out := Zeros(rows, cols)
	data := out.buf.Live()
	for i := range data {
		data[i] = float32(r.IntN(21) - 10)
	}
	return out
}
