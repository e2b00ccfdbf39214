// Package spawner provides Spawner implementations for vm.Process: Local
// runs every thread as a goroutine in this process, Placement adds
// hash-based routing of thread ids to peer processes on top of it. Both
// are grounded on MongooseMoo-barn's scheduler (server/scheduler.go),
// adapted from its task-queue-plus-ticker model down to one goroutine
// per thread with a channel-based join, since flasm threads run to
// completion or suspend only on JOIN.
package spawner

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/flasm-project/flasm/internal/vm"
	"github.com/flasm-project/flasm/internal/vmresult"
	"github.com/flasm-project/flasm/internal/word"
)

type handle struct {
	done   chan struct{}
	result vmresult.Result
	err    error
}

// Local spawns every forked thread as a goroutine in the current
// process (spec §4.3, §4.7). Thread ids are assigned by an atomic
// counter starting at 1 (id 0 is reserved for the root thread).
type Local struct {
	nextID  uint64
	mu      sync.Mutex
	handles map[word.Word]*handle
}

// NewLocal returns a Local spawner with thread 0 reserved for the root
// thread that Execute starts directly.
func NewLocal() *Local {
	return &Local{handles: make(map[word.Word]*handle)}
}

// Spawn assigns state a fresh thread id, starts it on its own goroutine,
// and returns the id immediately without waiting for completion.
func (l *Local) Spawn(proc *vm.Process, state *vm.ThreadState) (word.Word, error) {
	id := word.Word(atomic.AddUint64(&l.nextID, 1))

	h := &handle{done: make(chan struct{})}
	l.mu.Lock()
	l.handles[id] = h
	l.mu.Unlock()

	go func() {
		res, err := vm.RunThread(proc, id, state)
		h.result, h.err = res, err
		close(h.done)
	}()

	return id, nil
}

// reserveRemote allocates a thread id and an empty handle without
// starting a goroutine, for use by Placement when a thread is routed to
// a peer: the id is ours to hand out, but no local goroutine runs the
// thread. Nothing in this package completes such a handle.
func (l *Local) reserveRemote() (word.Word, error) {
	id := word.Word(atomic.AddUint64(&l.nextID, 1))

	l.mu.Lock()
	l.handles[id] = &handle{done: make(chan struct{})}
	l.mu.Unlock()

	return id, nil
}

// Join blocks until tid's thread has produced a verdict, then returns it
// and removes the handle. Joining an id that was never spawned, or that
// has already been joined, is an error (spec §4.3, §4.7: "at-most-once").
func (l *Local) Join(tid word.Word) (vmresult.Result, error) {
	l.mu.Lock()
	h, ok := l.handles[tid]
	if ok {
		delete(l.handles, tid)
	}
	l.mu.Unlock()
	if !ok {
		return vmresult.Result{}, fmt.Errorf("Joined unknown thread: %d", tid)
	}

	<-h.done
	return h.result, h.err
}
