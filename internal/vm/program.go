package vm

import (
	"github.com/flasm-project/flasm/internal/valsp"
	"github.com/flasm-project/flasm/internal/vmops"
)

// Instruction is one assembled opcode: a definition from the opcode table
// plus the ValSp operand expressions parsed for this occurrence.
type Instruction struct {
	Def      *vmops.Def
	Operands []valsp.ValSp
}

// Program is the immutable result of assembling flasm source: a flat
// opcode vector. Labels are resolved to indices during assembly and are
// not retained here (spec §3).
type Program struct {
	Instructions []Instruction
}

// Len reports the number of instructions.
func (p *Program) Len() int {
	return len(p.Instructions)
}
