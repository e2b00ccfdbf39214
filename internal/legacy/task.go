package legacy

import (
	"fmt"
	"io"
)

// ExecKind tags why Task.Run returned, mirroring flock_vm's Execution
// enum: Terminated/Fork/Join/Store/Load are all points where the
// dialect hands control back to a host loop rather than a mid-program
// state.
type ExecKind int

const (
	Terminated ExecKind = iota
	ExecFork
	ExecJoin
	ExecStore
	ExecLoad
)

// Execution is what Task.Run hands back to its caller.
type Execution struct {
	Kind   ExecKind
	TaskID int64
	Count  int64
	Addr   uint64
	Value  int64
}

// ExecutionError is a fault a dialect program can hit mid-run.
type ExecutionError struct {
	msg string
}

func (e *ExecutionError) Error() string { return e.msg }

func errf(format string, args ...any) error {
	return &ExecutionError{msg: fmt.Sprintf(format, args...)}
}

var (
	errPopFromEmptyStack  = errf("PopFromEmptyStack")
	errPeekFromEmptyStack = errf("PeekFromEmptyStack")
	errUnknownTaskID      = errf("UnknownTaskId")
	errExplicitPanic      = errf("ExplicitPanic")
)

// Task is one strand of execution in the numeric dialect: a program
// counter, an int64 stack, and whether this task is itself the result
// of a fork (gating OpCode FORK-flagged jumps).
type Task struct {
	PC     int
	Stack  []int64
	Forked bool

	// DebugOut receives DumpDebug output; defaults to io.Discard.
	DebugOut io.Writer
}

// NewTask returns a task starting at instruction 0 with an empty stack.
func NewTask() *Task {
	return &Task{DebugOut: io.Discard}
}

// Run ticks the task against bytecode until it yields an Execution.
func (t *Task) Run(bytecode ByteCode) (Execution, error) {
	for {
		exec, done, err := t.tick(bytecode)
		if err != nil {
			return Execution{}, err
		}
		if done {
			return exec, nil
		}
	}
}

func (t *Task) tick(bytecode ByteCode) (Execution, bool, error) {
	op, ok := bytecode.Get(t.PC)
	if !ok {
		return Execution{Kind: Terminated}, true, nil
	}
	t.PC++

	switch op.Kind {
	case Push:
		t.Stack = append(t.Stack, op.Value)

	case Add:
		a, err := t.pop()
		if err != nil {
			return Execution{}, false, err
		}
		b, err := t.pop()
		if err != nil {
			return Execution{}, false, err
		}
		t.Stack = append(t.Stack, a+b)

	case DumpDebug:
		w := t.DebugOut
		if w == nil {
			w = io.Discard
		}
		t.PrintDebug(w, bytecode)

	case Jump:
		target, err := t.resolveTarget(op)
		if err != nil {
			return Execution{}, false, err
		}

		zeroOK := true
		if op.Flags.Has(FlagZero) {
			top, err := t.peek()
			if err != nil {
				return Execution{}, false, err
			}
			zeroOK = top == 0
		}
		forkOK := true
		if op.Flags.Has(FlagFork) {
			forkOK = t.Forked
		}
		if zeroOK && forkOK {
			t.PC = int(target)
		}

	case JumpToSubroutine:
		target, err := t.resolveTarget(op)
		if err != nil {
			return Execution{}, false, err
		}
		t.Stack = append(t.Stack, int64(t.PC))
		t.PC = int(target)

	case Bury:
		value, err := t.pop()
		if err != nil {
			return Execution{}, false, err
		}
		insertIndex := len(t.Stack) - int(op.Value)
		if insertIndex < 0 {
			return Execution{}, false, errf("BuryOutOfRange(%d)", op.Value)
		}
		t.Stack = append(t.Stack, 0)
		copy(t.Stack[insertIndex+1:], t.Stack[insertIndex:])
		t.Stack[insertIndex] = value

	case Dredge:
		removeIndex := len(t.Stack) - 1 - int(op.Value)
		if removeIndex < 0 {
			return Execution{}, false, errf("DredgeOutOfRange(%d)", op.Value)
		}
		value := t.Stack[removeIndex]
		t.Stack = append(t.Stack[:removeIndex], t.Stack[removeIndex+1:]...)
		t.Stack = append(t.Stack, value)

	case Duplicate:
		value, err := t.pop()
		if err != nil {
			return Execution{}, false, err
		}
		t.Stack = append(t.Stack, value, value)

	case Pop:
		if _, err := t.pop(); err != nil {
			return Execution{}, false, err
		}

	case Return:
		target, err := t.pop()
		if err != nil {
			return Execution{}, false, err
		}
		t.PC = int(target)

	case Fork:
		return Execution{Kind: ExecFork}, true, nil

	case Join:
		taskID, err := t.pop()
		if err != nil {
			return Execution{}, false, err
		}
		return Execution{Kind: ExecJoin, TaskID: taskID, Count: op.Value}, true, nil

	case Halt:
		return Execution{Kind: Terminated}, true, nil

	case Store:
		value, err := t.pop()
		if err != nil {
			return Execution{}, false, err
		}
		return Execution{Kind: ExecStore, Addr: op.Addr, Value: value}, true, nil

	case StoreRelative:
		offset, err := t.pop()
		if err != nil {
			return Execution{}, false, err
		}
		addr := op.Addr + uint64(offset)
		value, err := t.pop()
		if err != nil {
			return Execution{}, false, err
		}
		return Execution{Kind: ExecStore, Addr: addr, Value: value}, true, nil

	case Load:
		return Execution{Kind: ExecLoad, Addr: op.Addr}, true, nil

	case LoadRelative:
		offset, err := t.pop()
		if err != nil {
			return Execution{}, false, err
		}
		return Execution{Kind: ExecLoad, Addr: op.Addr + uint64(offset)}, true, nil

	case Panic:
		return Execution{}, false, errExplicitPanic

	default:
		return Execution{}, false, errf("unhandled opcode %v", op.Kind)
	}

	return Execution{}, false, nil
}

func (t *Task) resolveTarget(op Op) (int64, error) {
	if op.HasTarget {
		return op.Target, nil
	}
	return t.pop()
}

func (t *Task) pop() (int64, error) {
	n := len(t.Stack)
	if n == 0 {
		return 0, errPopFromEmptyStack
	}
	v := t.Stack[n-1]
	t.Stack = t.Stack[:n-1]
	return v, nil
}

func (t *Task) peek() (int64, error) {
	n := len(t.Stack)
	if n == 0 {
		return 0, errPeekFromEmptyStack
	}
	return t.Stack[n-1], nil
}
