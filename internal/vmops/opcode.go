// Package vmops is the flasm opcode table (spec §4.4): a declarative set
// of instructions, each with a fixed-arity list of Value Specifier
// operands and an effect over a running thread. The table shape is
// grounded on the teacher's pkg/micro/opcodes.go declarative opcode
// catalogue, adapted from a byte-tag dispatch table to a name-keyed one
// since flasm opcodes are textual, not byte-packed.
package vmops

import (
	"fmt"

	"github.com/flasm-project/flasm/internal/valsp"
	"github.com/flasm-project/flasm/internal/vmresult"
	"github.com/flasm-project/flasm/internal/word"
)

// ExecContext is the capability an opcode body needs: everything a ValSp
// can read (valsp.EvalContext), plus the mutations and control-flow verbs
// opcode bodies perform. internal/vm.ThreadContext implements this.
type ExecContext interface {
	valsp.EvalContext

	PushStack(v word.Word)
	WriteMemory(addr, value word.Word) error
	WriteGlobalMemory(addr, value word.Word) error
	Jump(target word.Word) error
	Fork(target word.Word) (childID word.Word, err error)
	Join(tid word.Word) (vmresult.Result, error)
	DebugDump()
}

// Run is the body of an opcode: it receives the already-evaluated
// operand words (in declaration order — spec §4.1's ordering invariant is
// enforced by the caller, which evaluates operands before calling Run) and
// either mutates ctx and returns vmresult.Continue, or returns a verdict
// that ends the thread.
type Run func(ctx ExecContext, args []word.Word) (vmresult.Result, error)

// Def is one entry in the opcode table: a name, its operand arity, and
// its effect.
type Def struct {
	Name  string
	Arity int
	Run   Run
}

// Table maps opcode names (as they appear in flasm source) to their
// definition. Unknown names at parse time yield "Unknown command" (spec
// §4.4); the assembler looks names up here.
var Table = map[string]*Def{}

func register(d *Def) {
	Table[d.Name] = d
}

// Lookup returns the Def for name, or an error matching spec §4.4's
// "Unknown command" wording.
func Lookup(name string) (*Def, error) {
	d, ok := Table[name]
	if !ok {
		return nil, fmt.Errorf("Unknown command: %s", name)
	}
	return d, nil
}

func continueResult() (vmresult.Result, error) {
	return vmresult.Result{Kind: vmresult.Continue}, nil
}

func init() {
	register(&Def{Name: "NOP", Arity: 1, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		// Operand already evaluated (and any Pop side effect already
		// applied) by the caller; NOP deliberately discards it.
		return continueResult()
	}})

	register(&Def{Name: "PUSH", Arity: 1, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		ctx.PushStack(args[0])
		return continueResult()
	}})

	register(&Def{Name: "STORE", Arity: 2, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		if err := ctx.WriteMemory(args[0], args[1]); err != nil {
			return vmresult.Result{}, err
		}
		return continueResult()
	}})

	register(&Def{Name: "STORE_GLOBAL", Arity: 2, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		if err := ctx.WriteGlobalMemory(args[0], args[1]); err != nil {
			return vmresult.Result{}, err
		}
		return continueResult()
	}})

	register(&Def{Name: "LOAD", Arity: 1, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		v, err := ctx.ReadMemory(args[0])
		if err != nil {
			return vmresult.Result{}, err
		}
		ctx.PushStack(v)
		return continueResult()
	}})

	register(arith("ADD", func(a, b word.Word) (word.Word, error) { return a + b, nil }))
	register(arith("SUB", func(a, b word.Word) (word.Word, error) { return a - b, nil }))
	register(arith("MUL", func(a, b word.Word) (word.Word, error) { return a * b, nil }))
	register(arith("DIV", func(a, b word.Word) (word.Word, error) {
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	}))

	register(&Def{Name: "SHIFT_LEFT", Arity: 2, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		a, b := args[0], args[1]
		if b >= 64 {
			return vmresult.Result{}, fmt.Errorf("shift amount out of range: %d", b)
		}
		ctx.PushStack(a << b)
		return continueResult()
	}})

	register(&Def{Name: "JUMP", Arity: 1, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		if err := ctx.Jump(args[0]); err != nil {
			return vmresult.Result{}, err
		}
		return continueResult()
	}})

	register(&Def{Name: "JUMP_EQ", Arity: 3, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		a, b, addr := args[0], args[1], args[2]
		if a == b {
			if err := ctx.Jump(addr); err != nil {
				return vmresult.Result{}, err
			}
		}
		return continueResult()
	}})

	register(&Def{Name: "FORK", Arity: 1, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		childID, err := ctx.Fork(args[0])
		if err != nil {
			return vmresult.Result{}, err
		}
		ctx.PushStack(childID)
		return continueResult()
	}})

	register(&Def{Name: "JOIN", Arity: 1, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		res, err := ctx.Join(args[0])
		if err != nil {
			return vmresult.Result{}, err
		}
		if res.Kind == vmresult.Exit {
			return vmresult.Result{Kind: vmresult.Exit, Value: res.Value}, nil
		}
		ctx.PushStack(res.Value)
		return continueResult()
	}})

	register(&Def{Name: "THREAD_FINISH", Arity: 1, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		return vmresult.Result{Kind: vmresult.Finish, Value: args[0]}, nil
	}})

	register(&Def{Name: "EXIT", Arity: 1, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		return vmresult.Result{Kind: vmresult.Exit, Value: args[0]}, nil
	}})

	register(&Def{Name: "ASSERT_EQ", Arity: 2, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		if args[0] != args[1] {
			return vmresult.Result{}, fmt.Errorf("ASSERT_EQ violation: %d != %d", args[0], args[1])
		}
		return continueResult()
	}})

	register(&Def{Name: "DEBUG", Arity: 0, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		ctx.DebugDump()
		return continueResult()
	}})
}

func arith(name string, op func(a, b word.Word) (word.Word, error)) *Def {
	return &Def{Name: name, Arity: 2, Run: func(ctx ExecContext, args []word.Word) (vmresult.Result, error) {
		v, err := op(args[0], args[1])
		if err != nil {
			return vmresult.Result{}, err
		}
		ctx.PushStack(v)
		return continueResult()
	}}
}
