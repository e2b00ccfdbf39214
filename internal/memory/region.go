// Package memory implements the VM's two sparse memory regions: a
// per-thread Local region and a process-wide Global region guarded by a
// readers-writer lock.
package memory

import (
	"fmt"
	"sync"

	"github.com/flasm-project/flasm/internal/word"
)

// Local is a thread-private sparse word-addressed region. It is never
// shared and needs no locking. A Local must only ever be accessed through
// addresses it classifies as Local; attempting a Global address is an
// error (spec §3).
type Local struct {
	words map[word.Word]word.Word
}

// NewLocal returns an empty local memory region.
func NewLocal() *Local {
	return &Local{words: make(map[word.Word]word.Word)}
}

// Read returns the value stored at addr, or 0 if absent. addr must
// classify as Local.
func (l *Local) Read(addr word.Word) (word.Word, error) {
	a, err := word.ClassifyAddress(addr)
	if err != nil {
		return 0, err
	}
	if a.Locality == word.Global {
		return 0, fmt.Errorf("Attempted to access global address in state")
	}
	return l.words[a.Index()], nil
}

// Write stores value at addr, inserting or replacing. addr must classify
// as Local.
func (l *Local) Write(addr, value word.Word) error {
	a, err := word.ClassifyAddress(addr)
	if err != nil {
		return err
	}
	if a.Locality == word.Global {
		return fmt.Errorf("Attempted to access global address in state")
	}
	l.words[a.Index()] = value
	return nil
}

// Len reports the number of distinct addresses ever written.
func (l *Local) Len() int {
	return len(l.words)
}

// Clone returns a deep copy suitable for seeding a forked thread's state.
func (l *Local) Clone() *Local {
	out := make(map[word.Word]word.Word, len(l.words))
	for k, v := range l.words {
		out[k] = v
	}
	return &Local{words: out}
}

// Global is the process-wide sparse memory region. Reads take the shared
// lock; writes take the exclusive lock. Absent keys read as 0. There is
// no explicit free — the region grows monotonically for the process
// lifetime (spec §4.8).
type Global struct {
	mu    sync.RWMutex
	words map[word.Word]word.Word
}

// NewGlobal returns an empty global memory region.
func NewGlobal() *Global {
	return &Global{words: make(map[word.Word]word.Word)}
}

// Read returns the value stored at addr, or 0 if absent. addr must
// classify as Global (the caller, via $gmem/STORE_GLOBAL, has already
// OR'd in the locality bit; a raw $mem access on a Global address also
// lands here).
func (g *Global) Read(addr word.Word) (word.Word, error) {
	a, err := word.ClassifyAddress(addr)
	if err != nil {
		return 0, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.words[a.Index()], nil
}

// Write stores value at addr, inserting or replacing.
func (g *Global) Write(addr, value word.Word) error {
	a, err := word.ClassifyAddress(addr)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.words[a.Index()] = value
	return nil
}
