package vm

import (
	"github.com/flasm-project/flasm/internal/memory"
	"github.com/flasm-project/flasm/internal/word"
)

// ThreadState is the per-thread state: an operand stack, a private local
// memory region, and an instruction pointer (spec §3).
type ThreadState struct {
	Stack []word.Word
	Local *memory.Local
	IP    word.Word
}

// NewThreadState returns the initial state a freshly-spawned thread
// starts from: ip=0, empty stack, empty local memory (spec §4.2).
func NewThreadState() *ThreadState {
	return &ThreadState{
		Stack: nil,
		Local: memory.NewLocal(),
		IP:    0,
	}
}

// Clone copies stack and local memory by value, as FORK requires (spec
// §3, §4.3 step 2). The instruction pointer is copied too but the caller
// (ThreadContext.Fork) overwrites it with the fork target.
func (s *ThreadState) Clone() *ThreadState {
	stack := make([]word.Word, len(s.Stack))
	copy(stack, s.Stack)
	return &ThreadState{
		Stack: stack,
		Local: s.Local.Clone(),
		IP:    s.IP,
	}
}
