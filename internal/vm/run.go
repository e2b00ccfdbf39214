package vm

import (
	"fmt"

	"github.com/flasm-project/flasm/internal/vmresult"
	"github.com/flasm-project/flasm/internal/word"
)

// RunThread drives a single thread's fetch-evaluate-execute cycle (spec
// §4.2): fetch the instruction at ip, advance ip, evaluate its operands
// left to right against the current state, then run the opcode body. Running off the end of the program is an implicit Exit(0).
func RunThread(proc *Process, id word.Word, state *ThreadState) (vmresult.Result, error) {
	ctx := &ThreadContext{ID: id, Process: proc, State: state}

	for {
		if state.IP >= word.Word(proc.Program.Len()) {
			return vmresult.Result{Kind: vmresult.Exit, Value: 0}, nil
		}

		instr := proc.Program.Instructions[state.IP]
		state.IP++

		args := make([]word.Word, len(instr.Operands))
		for i, operand := range instr.Operands {
			v, err := operand.Eval(ctx)
			if err != nil {
				return vmresult.Result{}, fmt.Errorf("thread %d: %w", id, err)
			}
			args[i] = v
		}

		result, err := instr.Def.Run(ctx, args)
		if err != nil {
			return vmresult.Result{}, fmt.Errorf("thread %d: %w", id, err)
		}
		if result.Kind != vmresult.Continue {
			return result, nil
		}
	}
}
