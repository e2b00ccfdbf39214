package testharness

import (
	"testing"

	"github.com/flasm-project/flasm/internal/assembler"
)

func TestExecuteWithSeedIsDeterministic(t *testing.T) {
	program, err := assembler.Assemble("PUSH 40\nPUSH 2\nADD $pop, $pop\nEXIT $pop")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	a, err := ExecuteWithSeed(program, 7)
	if err != nil {
		t.Fatalf("ExecuteWithSeed: %v", err)
	}
	b, err := ExecuteWithSeed(program, 7)
	if err != nil {
		t.Fatalf("ExecuteWithSeed: %v", err)
	}
	if a != b {
		t.Fatalf("ExecuteWithSeed(seed=7) = %d then %d, want the same result both times", a, b)
	}
	if a != 42 {
		t.Errorf("ExecuteWithSeed(seed=7) = %d, want 42", a)
	}
}

func TestExecuteWithSeedSucceedsAcrossSeeds(t *testing.T) {
	program, err := assembler.Assemble("EXIT 1")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	// Every seed still yields a valid exit code regardless of how many
	// hosts the seed happens to spin up or which one is chosen as root.
	for _, seed := range []uint64{1, 2, 3, 100, 12345} {
		got, err := ExecuteWithSeed(program, seed)
		if err != nil {
			t.Fatalf("ExecuteWithSeed(seed=%d): %v", seed, err)
		}
		if got != 1 {
			t.Errorf("ExecuteWithSeed(seed=%d) = %d, want 1", seed, got)
		}
	}
}
