// Command flasm-legacy runs a flasm program expressed in the numeric
// bytecode dialect (spec §6), for callers that already emit that format
// (e.g. a cross-compiler targeting flock_bytecode's OpCode encoding)
// rather than flasm's textual assembly.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/flasm-project/flasm/internal/legacy"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 || args[0] != "run" {
		fmt.Fprintln(os.Stderr, "usage: flasm-legacy run <file.json>")
		os.Exit(2)
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", args[1], err)
		os.Exit(1)
	}

	var ops []legacy.Op
	if err := json.Unmarshal(data, &ops); err != nil {
		fmt.Fprintf(os.Stderr, "decoding %s: %v\n", args[1], err)
		os.Exit(1)
	}

	runner := legacy.NewRunner(legacy.NewByteCode(ops))
	status, err := runner.RunRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "execution failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(int(status & 0xff))
}
