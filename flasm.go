// Package flasm is the public facade over the VM: Parse assembles
// source text, Execute runs a parsed Program, and ExecuteAtPath does
// both against a file on disk. Mirrors the original implementation's
// top-level parse/execute/execute_at_path functions (src/lib.rs).
package flasm

import (
	"fmt"
	"os"

	"github.com/flasm-project/flasm/internal/assembler"
	"github.com/flasm-project/flasm/internal/eal"
	"github.com/flasm-project/flasm/internal/host"
	"github.com/flasm-project/flasm/internal/randstream"
	"github.com/flasm-project/flasm/internal/spawner"
	"github.com/flasm-project/flasm/internal/vm"
	"github.com/flasm-project/flasm/internal/word"
)

// Program is a parsed, ready-to-run flasm program.
type Program = vm.Program

// Parse assembles flasm source text into a Program (spec §4.5).
func Parse(source string) (*Program, error) {
	return assembler.Assemble(source)
}

// Execute runs program's root thread on a fresh single-process Host and
// returns its exit code (spec §3).
func Execute(program *Program) (word.Word, error) {
	h := host.New(eal.NewSeeded(randstream.New(0)), spawner.NewLocal())
	return h.Execute(program)
}

// ExecuteAtPath reads, parses, and executes the flasm program at path.
func ExecuteAtPath(path string) (word.Word, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	program, err := Parse(string(contents))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}

	return Execute(program)
}
