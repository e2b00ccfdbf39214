// Package valsp implements the Value Specifier: a recursive operand
// expression lazily evaluated against a running thread (spec §4.1), and
// the textual grammar that parses one (spec §4.6).
package valsp

import "github.com/flasm-project/flasm/internal/word"

// EvalContext is the thread-side capability a ValSp needs to resolve
// itself. internal/vm.ThreadContext implements this; valsp never imports
// vm, avoiding a cycle.
type EvalContext interface {
	// PopStack removes and returns the top of stack.
	PopStack() (word.Word, error)
	// PopIndexed removes and returns the element at stack.len()-1-idx.
	PopIndexed(idx word.Word) (word.Word, error)
	// PeekStack returns the top of stack without removing it.
	PeekStack() (word.Word, error)
	// ReadMemory reads addr through the locality-by-MSB path (Local or
	// Global depending on addr's top bit).
	ReadMemory(addr word.Word) (word.Word, error)
	// ReadGlobalMemory reads addr with the global bit forced on.
	ReadGlobalMemory(addr word.Word) (word.Word, error)
	// ThreadID returns the id of the running thread.
	ThreadID() word.Word
}

// ValSp is a lazily-evaluated operand source. Evaluating the same ValSp
// twice may observe different results, since evaluation can mutate the
// stack (Pop, PopI).
type ValSp interface {
	Eval(ctx EvalContext) (word.Word, error)
}

// Literal is a constant Word, independent of thread state.
type Literal word.Word

func (l Literal) Eval(EvalContext) (word.Word, error) { return word.Word(l), nil }

// Pop removes and returns the top of stack.
type Pop struct{}

func (Pop) Eval(ctx EvalContext) (word.Word, error) { return ctx.PopStack() }

// PopI removes and returns the element at stack.len()-1-index, where
// index is itself a ValSp evaluated first.
type PopI struct {
	Index ValSp
}

func (p PopI) Eval(ctx EvalContext) (word.Word, error) {
	idx, err := p.Index.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return ctx.PopIndexed(idx)
}

// Peek returns the top of stack without removing it.
type Peek struct{}

func (Peek) Eval(ctx EvalContext) (word.Word, error) { return ctx.PeekStack() }

// Memory evaluates Addr and reads memory at the resulting address,
// choosing Local or Global by the address's top bit.
type Memory struct {
	Addr ValSp
}

func (m Memory) Eval(ctx EvalContext) (word.Word, error) {
	addr, err := m.Addr.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return ctx.ReadMemory(addr)
}

// GlobalMemory evaluates Addr, forces the global bit on, and reads.
type GlobalMemory struct {
	Addr ValSp
}

func (g GlobalMemory) Eval(ctx EvalContext) (word.Word, error) {
	addr, err := g.Addr.Eval(ctx)
	if err != nil {
		return 0, err
	}
	return ctx.ReadGlobalMemory(addr)
}

// ThreadID yields the current thread's id.
type ThreadID struct{}

func (ThreadID) Eval(ctx EvalContext) (word.Word, error) { return ctx.ThreadID(), nil }
