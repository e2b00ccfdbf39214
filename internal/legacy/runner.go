package legacy

import (
	"fmt"
	"sync"
)

// Runner hosts one or more Tasks against a shared bytecode program and
// a flat memory map, driving FORK/JOIN/STORE/LOAD the way a flasm
// process drives the textual dialect in internal/vm, but scoped to
// this dialect's simpler int64-tagged memory model (no local/global
// split — spec §6 carries the numeric dialect over largely unchanged).
type Runner struct {
	Bytecode ByteCode

	mu      sync.Mutex
	memory  map[uint64]int64
	tasks   map[int64]*taskHandle
	nextID  int64
}

type taskHandle struct {
	done   chan struct{}
	result int64
	err    error
}

// NewRunner returns a Runner over bytecode with empty memory.
func NewRunner(bytecode ByteCode) *Runner {
	return &Runner{
		Bytecode: bytecode,
		memory:   make(map[uint64]int64),
		tasks:    make(map[int64]*taskHandle),
	}
}

// RunRoot runs a non-forked root task to completion, returning its exit
// value (0 for a plain Halt/Terminated with an empty stack, or the top
// of stack if one remains).
func (r *Runner) RunRoot() (int64, error) {
	return r.runTask(NewTask())
}

func (r *Runner) runTask(t *Task) (int64, error) {
	for {
		exec, err := t.Run(r.Bytecode)
		if err != nil {
			return 0, err
		}

		switch exec.Kind {
		case Terminated:
			if len(t.Stack) == 0 {
				return 0, nil
			}
			return t.Stack[len(t.Stack)-1], nil

		case ExecStore:
			r.mu.Lock()
			r.memory[exec.Addr] = exec.Value
			r.mu.Unlock()

		case ExecLoad:
			r.mu.Lock()
			v := r.memory[exec.Addr]
			r.mu.Unlock()
			t.Stack = append(t.Stack, v)

		case ExecFork:
			childID := r.spawn()
			t.Stack = append(t.Stack, childID)

		case ExecJoin:
			result, err := r.join(exec.TaskID)
			if err != nil {
				return 0, err
			}
			t.Stack = append(t.Stack, result)

		default:
			return 0, errf("unhandled execution kind %v", exec.Kind)
		}
	}
}

func (r *Runner) spawn() int64 {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	h := &taskHandle{done: make(chan struct{})}
	r.tasks[id] = h
	r.mu.Unlock()

	go func() {
		child := NewTask()
		child.PC = 0
		child.Forked = true
		h.result, h.err = r.runTask(child)
		close(h.done)
	}()

	return id
}

func (r *Runner) join(taskID int64) (int64, error) {
	r.mu.Lock()
	h, ok := r.tasks[taskID]
	r.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("UnknownTaskId(%d)", taskID)
	}

	<-h.done
	return h.result, h.err
}
