// Command flasm runs flasm programs. Mirrors the original
// implementation's CLI: a single "run <file>" verb plus a repeatable
// -v flag controlling log verbosity (src/main.rs).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/flasm-project/flasm"
)

func main() {
	verbose := 0
	flag.BoolFunc("v", "increase log verbosity (repeatable)", func(string) error {
		verbose++
		return nil
	})
	flag.Parse()

	slog.SetLogLoggerLevel(verbosity(verbose))

	args := flag.Args()
	if len(args) < 2 || args[0] != "run" {
		fmt.Fprintln(os.Stderr, "usage: flasm [-v]... run <file>")
		os.Exit(2)
	}

	status, err := flasm.ExecuteAtPath(args[1])
	if err != nil {
		slog.Error("execution failed", "error", err)
		os.Exit(1)
	}

	os.Exit(int(status & 0xff))
}

func verbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return slog.LevelDebug - 4
	}
}
