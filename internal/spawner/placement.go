package spawner

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sync/atomic"

	"github.com/flasm-project/flasm/internal/peer"
	"github.com/flasm-project/flasm/internal/vm"
	"github.com/flasm-project/flasm/internal/vmresult"
	"github.com/flasm-project/flasm/internal/word"
)

// Placement wraps a Local spawner and adds hash-based routing across a
// fixed set of peers: every fork hashes (seed, a monotonic counter) with
// FNV-1a and reduces it mod (len(peers)+1) to pick either this process
// (0) or a remote peer. The original implementation sketches the same
// idea with an empty Peers/Peer pair (src/remote.rs); no example repo in
// the pack carries a third-party hashing library, so hash/fnv from the
// standard library stands in for the original's seahash.
type Placement struct {
	local   *Local
	peers   peer.Set
	seed    uint64
	counter uint64
}

// NewPlacement returns a Placement spawner routing across peers, using
// seed to vary routing decisions between processes that share the same
// peer set.
func NewPlacement(peers peer.Set, seed uint64) *Placement {
	return &Placement{local: NewLocal(), peers: peers, seed: seed}
}

func (p *Placement) route() int {
	n := p.peers.Len() + 1
	if n == 1 {
		return 0
	}

	i := atomic.AddUint64(&p.counter, 1)

	h := fnv.New64a()
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], p.seed)
	binary.BigEndian.PutUint64(buf[8:16], i)
	h.Write(buf[:])

	return int(h.Sum64() % uint64(n))
}

// Spawn routes the thread to either this process's Local spawner (slot
// 0) or a peer (slot 1..len(peers)), per spec §7's placement model.
func (p *Placement) Spawn(proc *vm.Process, state *vm.ThreadState) (word.Word, error) {
	slot := p.route()
	if slot == 0 {
		return p.local.Spawn(proc, state)
	}

	tid, err := p.local.reserveRemote()
	if err != nil {
		return 0, err
	}

	target := p.peers[slot-1]
	if err := target.SendMessage(peer.SpawnMessage{ThreadID: tid, State: state}); err != nil {
		return 0, fmt.Errorf("placing thread %d on peer %d: %w", tid, slot-1, err)
	}
	return tid, nil
}

// Join joins a thread spawned by this Placement spawner. A thread that
// ran locally is joined as with Local.Join; for a thread placed on a
// peer, the handle is never completed, so Join blocks indefinitely.
func (p *Placement) Join(tid word.Word) (vmresult.Result, error) {
	return p.local.Join(tid)
}
