// Package legacy implements flasm's alternate numeric bytecode dialect:
// a flat vector of fixed-shape, integer-tagged opcodes instead of the
// textual ValSp-driven instruction set in internal/vm. Grounded on
// flock_bytecode/src/lib.rs (the OpCode enum and ConditionFlags bitset)
// and flock_vm/src/task.rs (the Task dispatch loop), carried over to
// spec §6 for completeness. The dispatch-loop shape — a step function
// returning a continue/return signal, switched on a numeric opcode tag —
// is grounded on the teacher's pkg/micro/vm.go Step/execCommand split.
package legacy

// Kind tags the variant of an Op, standing in for flock_bytecode's Rust
// enum discriminant.
type Kind int

const (
	Push Kind = iota
	Add
	DumpDebug
	Jump
	JumpToSubroutine
	Bury
	Dredge
	Duplicate
	Return
	Pop
	Fork
	Join
	Halt
	Store
	Load
	StoreRelative
	LoadRelative
	Panic
)

// ConditionFlags gates OpCode.Jump the way flock_bytecode's bitflags
// type does: ZERO requires the top of stack be 0, FORK requires the
// current task to be the result of a fork.
type ConditionFlags uint8

const (
	FlagEmpty ConditionFlags = 0
	FlagZero  ConditionFlags = 1 << 0
	FlagFork  ConditionFlags = 1 << 1
)

func (f ConditionFlags) Has(bit ConditionFlags) bool {
	return f&bit != 0
}

// Op is one instruction of the numeric dialect. Only the fields
// meaningful to Kind are populated; Target uses HasTarget to
// distinguish an explicit immediate from "pop it off the stack",
// mirroring flock_bytecode's Option<i64> operands. Push, Bury, Dredge
// and Join (its count) read their immediate from Value.
type Op struct {
	Kind      Kind
	Value     int64
	Flags     ConditionFlags
	Target    int64
	HasTarget bool
	Addr      uint64
	Count     int64
}

// ByteCode is an immutable, indexable vector of Op, mirroring
// flock_bytecode::ByteCode.
type ByteCode struct {
	ops []Op
}

// NewByteCode wraps a slice of ops as an immutable ByteCode.
func NewByteCode(ops []Op) ByteCode {
	return ByteCode{ops: ops}
}

// Get returns the op at index, and whether it exists.
func (b ByteCode) Get(index int) (Op, bool) {
	if index < 0 || index >= len(b.ops) {
		return Op{}, false
	}
	return b.ops[index], true
}

// Len reports how many ops are in this ByteCode.
func (b ByteCode) Len() int {
	return len(b.ops)
}

// Surrounding returns the indices of the ops within bounds positions of
// index, for
// DumpDebug's disassembly window.
func (b ByteCode) Surrounding(index, bounds int) []int {
	if len(b.ops) == 0 {
		return nil
	}
	start := index - bounds
	if start < 0 {
		start = 0
	}
	end := index + bounds
	if end > len(b.ops)-1 {
		end = len(b.ops) - 1
	}
	indices := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		indices = append(indices, i)
	}
	return indices
}
