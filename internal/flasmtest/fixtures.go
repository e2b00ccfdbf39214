// Package flasmtest discovers and parses the *.flasm fixtures under
// testdata/, the way the original implementation's tests/common/mod.rs
// walks "tests" for *.flasm files with walkdir and parses each into a
// Program up front.
package flasmtest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/flasm-project/flasm/internal/assembler"
	"github.com/flasm-project/flasm/internal/vm"
)

// Fixture is one discovered *.flasm file and its assembled Program.
type Fixture struct {
	Path    string
	Program *vm.Program
}

// Discover walks root (typically "testdata") and returns every *.flasm
// file found, parsed, sorted by path.
func Discover(root string) ([]Fixture, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".flasm" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(paths)

	fixtures := make([]Fixture, 0, len(paths))
	for _, path := range paths {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		program, err := assembler.Assemble(string(contents))
		if err != nil {
			return nil, fmt.Errorf("assembling %s: %w", path, err)
		}
		fixtures = append(fixtures, Fixture{Path: path, Program: program})
	}

	return fixtures, nil
}
