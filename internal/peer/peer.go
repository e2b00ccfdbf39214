// Package peer models the remote side of thread placement: other flasm
// processes a Placement spawner can route forked threads to. It is
// grounded on the original implementation's Peers/Peer/Message::Spawn
// shape (src/remote.rs), which stubs the wire transport with todo!() —
// this module keeps that stub honest rather than fabricating a
// transport no example in the pack implements.
package peer

import (
	"errors"

	"github.com/flasm-project/flasm/internal/vm"
	"github.com/flasm-project/flasm/internal/word"
)

// ErrNotImplemented is the error a Peer without a transport reports.
// This package provides no Peer implementation of its own; placement
// logic (spawner.Placement) is tested with fake peers, independent of
// whether a peer can actually be reached.
var ErrNotImplemented = errors.New("peer: remote transport not implemented")

// SpawnMessage is the envelope sent to a peer to start a forked thread
// there, mirroring Message::Spawn from the original source.
type SpawnMessage struct {
	ThreadID word.Word
	State    *vm.ThreadState
}

// Peer is a remote flasm process a thread can be placed on.
type Peer interface {
	SendMessage(msg SpawnMessage) error
}

// Set is an ordered list of peers, indexed the same way on every
// process so placement hashing agrees process-to-process.
type Set []Peer

func (s Set) Len() int {
	return len(s)
}
