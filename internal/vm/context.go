package vm

import (
	"fmt"

	"github.com/flasm-project/flasm/internal/vmresult"
	"github.com/flasm-project/flasm/internal/word"
)

// ThreadContext binds a ThreadState to its Process, evaluates opcode
// operands against that state, and mediates every memory access (spec
// §2). It implements valsp.EvalContext and vmops.ExecContext.
type ThreadContext struct {
	ID      word.Word
	Process *Process
	State   *ThreadState
}

// PopStack removes and returns the top of stack.
func (c *ThreadContext) PopStack() (word.Word, error) {
	n := len(c.State.Stack)
	if n == 0 {
		return 0, fmt.Errorf("Pop from empty stack")
	}
	v := c.State.Stack[n-1]
	c.State.Stack = c.State.Stack[:n-1]
	return v, nil
}

// PopIndexed removes and returns the element at stack.len()-1-idx.
func (c *ThreadContext) PopIndexed(idx word.Word) (word.Word, error) {
	n := len(c.State.Stack)
	if n == 0 || idx >= word.Word(n) {
		return 0, fmt.Errorf("Pop from empty stack")
	}
	pos := n - 1 - int(idx)
	v := c.State.Stack[pos]
	c.State.Stack = append(c.State.Stack[:pos], c.State.Stack[pos+1:]...)
	return v, nil
}

// PeekStack returns the top of stack without removing it.
func (c *ThreadContext) PeekStack() (word.Word, error) {
	n := len(c.State.Stack)
	if n == 0 {
		return 0, fmt.Errorf("Peek empty stack")
	}
	return c.State.Stack[n-1], nil
}

// PushStack pushes v onto the stack.
func (c *ThreadContext) PushStack(v word.Word) {
	c.State.Stack = append(c.State.Stack, v)
}

// ReadMemory reads addr, routing to Local or Global memory by addr's top
// bit.
func (c *ThreadContext) ReadMemory(addr word.Word) (word.Word, error) {
	a, err := word.ClassifyAddress(addr)
	if err != nil {
		return 0, err
	}
	if a.Locality == word.Global {
		return c.Process.Global.Read(addr)
	}
	return c.State.Local.Read(addr)
}

// ReadGlobalMemory forces the global bit on addr, then reads Global
// memory.
func (c *ThreadContext) ReadGlobalMemory(addr word.Word) (word.Word, error) {
	return c.Process.Global.Read(word.WithGlobalBit(addr))
}

// WriteMemory writes value at addr, routing to Local or Global memory by
// addr's top bit (STORE accepts both forms, spec §4.4/§9).
func (c *ThreadContext) WriteMemory(addr, value word.Word) error {
	a, err := word.ClassifyAddress(addr)
	if err != nil {
		return err
	}
	if a.Locality == word.Global {
		return c.Process.Global.Write(addr, value)
	}
	return c.State.Local.Write(addr, value)
}

// WriteGlobalMemory forces the global bit on addr, then writes Global
// memory (STORE_GLOBAL).
func (c *ThreadContext) WriteGlobalMemory(addr, value word.Word) error {
	return c.Process.Global.Write(word.WithGlobalBit(addr), value)
}

// ThreadID returns this thread's id.
func (c *ThreadContext) ThreadID() word.Word {
	return c.ID
}

// Jump sets the instruction pointer to target, failing if target falls
// outside the program (spec §4.2).
func (c *ThreadContext) Jump(target word.Word) error {
	if target >= word.Word(c.Process.Program.Len()) {
		return fmt.Errorf("Jump outside of program range")
	}
	c.State.IP = target
	return nil
}

// Fork clones the current thread's state, pushes the parent's id onto
// the clone's stack, points the clone at target, and asks the Process's
// Spawner to run it (spec §4.3).
func (c *ThreadContext) Fork(target word.Word) (word.Word, error) {
	if target >= word.Word(c.Process.Program.Len()) {
		return 0, fmt.Errorf("Jump outside of program range")
	}

	clone := c.State.Clone()
	clone.Stack = append(clone.Stack, c.ID)
	clone.IP = target

	return c.Process.Spawner.Spawn(c.Process, clone)
}

// Join asks the Process's Spawner to join tid.
func (c *ThreadContext) Join(tid word.Word) (vmresult.Result, error) {
	return c.Process.Spawner.Join(tid)
}

// DebugDump prints the stack to the process's debug sink under its
// exclusive lock, serializing concurrent DEBUG opcodes (spec §5).
func (c *ThreadContext) DebugDump() {
	c.Process.DebugMu.Lock()
	defer c.Process.DebugMu.Unlock()

	fmt.Fprintf(c.Process.DebugOut, "thread %d stack:\n", c.ID)
	for i := len(c.State.Stack) - 1; i >= 0; i-- {
		fmt.Fprintf(c.Process.DebugOut, "  %d: %d\n", len(c.State.Stack)-1-i, c.State.Stack[i])
	}
}
