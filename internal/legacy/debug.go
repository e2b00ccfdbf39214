package legacy

import (
	"fmt"
	"io"
)

// PrintDebug writes a disassembly window and stack dump for t against
// bytecode, mirroring flock_vm/src/task.rs's print_debug.
func (t *Task) PrintDebug(w io.Writer, bytecode ByteCode) {
	fmt.Fprintln(w, "Flock VM Debug")
	fmt.Fprintf(w, "PC: %d\n\n", t.PC)

	fmt.Fprintln(w, "OpCodes:")
	for _, i := range bytecode.Surrounding(t.PC, 5) {
		op, _ := bytecode.Get(i)
		delta := i - t.PC
		fmt.Fprintf(w, "  %+d: %+v\n", delta, op)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Stack:")
	for i := len(t.Stack) - 1; i >= 0; i-- {
		v := t.Stack[len(t.Stack)-1-i]
		fmt.Fprintf(w, "  %03d %#018x (%d)\n", i, uint64(v), v)
	}
}
