// Package host is the top-level container a flasm process runs inside:
// it owns the Eal, the Spawner used for every FORK in the process, and
// the mutex that serializes DEBUG output across concurrently running
// threads. Grounded on the original implementation's spawn_host/Node
// shape (tests/common/mod.rs), generalized from "one local node" to
// accept whichever vm.Spawner the caller wants (internal/spawner.Local
// for a single process, internal/spawner.Placement to spread threads
// across peers).
package host

import (
	"io"
	"os"
	"sync"

	"github.com/flasm-project/flasm/internal/eal"
	"github.com/flasm-project/flasm/internal/vm"
	"github.com/flasm-project/flasm/internal/word"
)

// Host is one flasm node: the Eal it was constructed with, plus shared
// state every Process it runs needs (the spawner and the debug lock).
type Host struct {
	Eal     eal.Eal
	Spawner vm.Spawner

	debugMu  sync.Mutex
	debugOut io.Writer
}

// New returns a Host with the given Eal and Spawner, writing DEBUG
// output to os.Stderr.
func New(e eal.Eal, spawner vm.Spawner) *Host {
	return &Host{Eal: e, Spawner: spawner, debugOut: os.Stderr}
}

// SetDebugOut redirects DEBUG output, primarily for tests that want to
// assert on it instead of writing to the real stderr.
func (h *Host) SetDebugOut(w io.Writer) {
	h.debugMu.Lock()
	defer h.debugMu.Unlock()
	h.debugOut = w
}

// Execute runs program's root thread (id 0) to completion on this host
// and returns its exit code (spec §3, §4.2).
func (h *Host) Execute(program *vm.Program) (word.Word, error) {
	proc := vm.NewProcess(program, h.Spawner, &h.debugMu, h.debugOut)
	result, err := vm.RunThread(proc, 0, vm.NewThreadState())
	if err != nil {
		return 0, err
	}
	return result.Value, nil
}
