// Package eal is flasm's External Abstraction Layer: the seam between a
// running process and whatever supplies it randomness (and, as the
// interface grows, other host-provided nondeterminism). Grounded on the
// original implementation's Eal trait (tests/common/mod.rs's RandomVm
// impl; rand() -> Rand is its only method in the retrieved source).
package eal

import "github.com/flasm-project/flasm/internal/randstream"

// Eal is implemented by whatever embeds a flasm host: tests supply a
// seeded deterministic one, a production host could supply one backed
// by a real entropy source.
type Eal interface {
	Rand() randstream.Rand
}

// Seeded is the deterministic Eal every test and the CLI host use: an
// all-zero-argument run is reproducible from a single root seed.
type Seeded struct {
	rand randstream.Rand
}

// NewSeeded derives this Eal's rand stream as the "for_eal" child of
// root, mirroring RandomVm's `self.rand.get("for_eal")`.
func NewSeeded(root randstream.Rand) *Seeded {
	return &Seeded{rand: root.Get("for_eal")}
}

func (s *Seeded) Rand() randstream.Rand {
	return s.rand
}
