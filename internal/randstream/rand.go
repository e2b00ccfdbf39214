// Package randstream provides a deterministic, hierarchical random
// number source: every Rand derives named children whose seeds are a
// pure function of the parent seed and the child's name, so two runs
// started from the same root seed explore identical decisions no
// matter how many components branch off independent streams. Ported
// directly from src/rand.rs and tests/common/rand.rs, substituting
// hash/fnv for the original's seahash since no example repo in the pack
// pulls in a third-party hash library.
package randstream

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/flasm-project/flasm/internal/word"
)

// Rand is an immutable seed. Deriving a named child never mutates the
// parent, so siblings obtained via Get are independent of call order.
type Rand struct {
	seed uint64
}

// New returns the root of a rand tree for the given seed.
func New(seed uint64) Rand {
	return Rand{seed: seed}
}

// Get derives a named child stream. The same (parent seed, name) pair
// always yields the same child, regardless of what else has been
// derived from the parent.
func (r Rand) Get(name string) Rand {
	h := fnv.New64a()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], r.seed)
	h.Write(buf[:])
	h.Write([]byte(name))
	return Rand{seed: h.Sum64()}
}

// Poisson draws from a Poisson distribution with the given median via
// inverse transform sampling of r's seed. r is not changed, so calling
// Poisson twice on the same Rand returns the same value.
func (r Rand) Poisson(median float64) float64 {
	x := float64(r.seed) / float64(math.MaxUint64)
	return poisson(x, median)
}

func poisson(x, median float64) float64 {
	// The median of a Poisson distribution is approximately lambda - 1/3.
	lambda := median + 1.0/3.0

	k := 0.0
	p := math.Exp(-lambda)
	sum := p

	for sum < x {
		k++
		p *= lambda / k
		sum += p
	}

	return k
}

// Word returns the raw seed as a Word.
func (r Rand) Word() word.Word {
	return word.Word(r.seed)
}

// Select deterministically picks one element of items, or false if
// items is empty.
func Select[T any](r Rand, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[r.seed%uint64(len(items))], true
}
