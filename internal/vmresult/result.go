// Package vmresult defines the verdict a thread's execution loop produces,
// shared by internal/vmops (opcode bodies) and internal/vm (the loop and
// the Spawner contract) without creating an import cycle between them.
package vmresult

import "github.com/flasm-project/flasm/internal/word"

// Kind distinguishes why a thread's opcode loop stopped.
type Kind int

const (
	// Continue means the opcode mutated state; the loop keeps running.
	// Continue never appears in a Result returned out of the loop — it is
	// only used internally by opcode bodies to mean "not done yet".
	Continue Kind = iota
	// Exit is a fatal, process-wide signal: it propagates through every
	// joiner up to the root thread, which becomes the process exit code.
	Exit
	// Finish is an ordinary return value from one thread to the single
	// parent that joins it.
	Finish
)

// Result is the verdict of running a thread to completion (or of a single
// opcode body, before the loop checks whether to keep going).
type Result struct {
	Kind  Kind
	Value word.Word
}
