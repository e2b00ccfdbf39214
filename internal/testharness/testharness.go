// Package testharness builds the multi-host topology the original
// implementation's integration tests exercise before running a program,
// grounded on tests/common/mod.rs::execute_program_with_seed: derive a
// node count and a root node from a single seed, stand up that many
// independent hosts, then execute the program on the chosen root. spec.md
// §1 calls the host/process wiring itself "trivial glue", but the
// deterministic topology selection is test infrastructure the
// distillation dropped that this repo still carries (see SPEC_FULL.md).
package testharness

import (
	"fmt"

	"github.com/flasm-project/flasm/internal/eal"
	"github.com/flasm-project/flasm/internal/host"
	"github.com/flasm-project/flasm/internal/randstream"
	"github.com/flasm-project/flasm/internal/spawner"
	"github.com/flasm-project/flasm/internal/vm"
	"github.com/flasm-project/flasm/internal/word"
)

// ExecuteWithSeed runs program on a randomly-sized, randomly-chosen host
// out of a topology derived entirely from seed: the same seed always
// produces the same node count, the same root node, and therefore the
// same result.
func ExecuteWithSeed(program *vm.Program, seed uint64) (word.Word, error) {
	rand := randstream.New(seed)

	nodeCount := int(rand.Get("host_processes").Poisson(3.0))
	if nodeCount < 1 {
		nodeCount = 1
	}

	hosts := make([]*host.Host, nodeCount)
	for i := range hosts {
		nodeRand := rand.Get(fmt.Sprintf("%d", i))
		hosts[i] = host.New(eal.NewSeeded(nodeRand), spawner.NewLocal())
	}

	root, ok := randstream.Select(rand.Get("root_node"), hosts)
	if !ok {
		return 0, fmt.Errorf("testharness: no hosts to select a root from")
	}

	return root.Execute(program)
}
