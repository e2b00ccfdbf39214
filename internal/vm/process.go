package vm

import (
	"io"
	"sync"

	"github.com/flasm-project/flasm/internal/memory"
	"github.com/flasm-project/flasm/internal/vmresult"
	"github.com/flasm-project/flasm/internal/word"
)

// Spawner allocates thread ids, runs threads, and joins their results
// (spec §4.7). internal/spawner provides a Local (in-process) and a
// Placement (hash-routed) implementation; Process only ever sees this
// interface, so neither implementation needs to import vm's internals
// beyond what this file exposes.
type Spawner interface {
	Spawn(proc *Process, state *ThreadState) (word.Word, error)
	Join(tid word.Word) (vmresult.Result, error)
}

// Process owns a Program (shared by every thread), the process-wide
// Global memory region, and a handle to the Spawner. Its lifetime spans
// from "execute program" to termination of the root thread (spec §3).
type Process struct {
	Program *Program
	Global  *memory.Global
	Spawner Spawner

	// DebugMu/DebugOut serialize DEBUG output across concurrently
	// running threads (spec §4.4, §5 "DEBUG output" lock). Owned by the
	// host, passed down at process construction.
	DebugMu  *sync.Mutex
	DebugOut io.Writer
}

// NewProcess binds a program to a fresh, empty global memory region and
// the given spawner and debug sink.
func NewProcess(program *Program, spawner Spawner, debugMu *sync.Mutex, debugOut io.Writer) *Process {
	return &Process{
		Program:  program,
		Global:   memory.NewGlobal(),
		Spawner:  spawner,
		DebugMu:  debugMu,
		DebugOut: debugOut,
	}
}
