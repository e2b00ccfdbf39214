package spawner

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/flasm-project/flasm/internal/assembler"
	"github.com/flasm-project/flasm/internal/peer"
	"github.com/flasm-project/flasm/internal/vm"
	"github.com/flasm-project/flasm/internal/word"
)

type fakePeer struct {
	sent []peer.SpawnMessage
	err  error
}

func (f *fakePeer) SendMessage(msg peer.SpawnMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestPlacementRoutesLocallyWithNoPeers(t *testing.T) {
	p := NewPlacement(nil, 1)
	for i := 0; i < 10; i++ {
		if slot := p.route(); slot != 0 {
			t.Fatalf("route() with no peers = %d, want 0", slot)
		}
	}
}

func TestPlacementRoutingIsDeterministicForSameSeed(t *testing.T) {
	peers := peer.Set{&fakePeer{}, &fakePeer{}}

	a := NewPlacement(peers, 5)
	b := NewPlacement(peers, 5)

	for i := 0; i < 20; i++ {
		sa, sb := a.route(), b.route()
		if sa != sb {
			t.Fatalf("route() call %d diverged across identical seeds: %d vs %d", i, sa, sb)
		}
	}
}

func newTestProcess(t *testing.T, p vm.Spawner) *vm.Process {
	t.Helper()
	program, err := assembler.Assemble("EXIT 0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return vm.NewProcess(program, p, &sync.Mutex{}, &bytes.Buffer{})
}

func TestPlacementSpawnRemoteSendsMessage(t *testing.T) {
	fp := &fakePeer{}
	p := NewPlacement(peer.Set{fp}, 0)
	proc := newTestProcess(t, p)

	// A 2-way hash can land on either slot; drive it until it selects
	// the remote peer.
	var tid word.Word
	for i := 0; i < 200; i++ {
		var err error
		tid, err = p.Spawn(proc, vm.NewThreadState())
		if err != nil {
			t.Fatalf("Spawn: %v", err)
		}
		if len(fp.sent) > 0 {
			break
		}
	}
	if len(fp.sent) == 0 {
		t.Skip("route() never selected the remote peer in 200 tries")
	}
	if fp.sent[len(fp.sent)-1].ThreadID != tid {
		t.Errorf("peer received ThreadID %d, want %d", fp.sent[len(fp.sent)-1].ThreadID, tid)
	}
}

func TestPlacementSpawnRemoteErrorWraps(t *testing.T) {
	fp := &fakePeer{err: fmt.Errorf("boom")}
	p := NewPlacement(peer.Set{fp}, 0)
	proc := newTestProcess(t, p)

	var gotErr error
	for i := 0; i < 200; i++ {
		if _, err := p.Spawn(proc, vm.NewThreadState()); err != nil {
			gotErr = err
			break
		}
	}
	if gotErr == nil {
		t.Skip("route() never selected the remote peer in 200 tries")
	}
	if !strings.Contains(gotErr.Error(), "boom") {
		t.Errorf("error = %q, want it to wrap %q", gotErr.Error(), "boom")
	}
}
