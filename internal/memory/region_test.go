package memory

import (
	"testing"

	"github.com/flasm-project/flasm/internal/word"
)

func TestLocalReadDefaultsZero(t *testing.T) {
	l := NewLocal()
	v, err := l.Read(0x10)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 0 {
		t.Errorf("Read of never-written address = %d, want 0", v)
	}
}

func TestLocalWriteThenRead(t *testing.T) {
	l := NewLocal()
	if err := l.Write(0x8, 42); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, err := l.Read(0x8)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 42 {
		t.Errorf("Read = %d, want 42", v)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestLocalRejectsGlobalAddress(t *testing.T) {
	l := NewLocal()
	if _, err := l.Read(1 << 63); err == nil {
		t.Fatal("expected an error reading a global address from Local")
	}
}

func TestLocalCloneIsIndependent(t *testing.T) {
	l := NewLocal()
	_ = l.Write(0x8, 1)

	clone := l.Clone()
	_ = clone.Write(0x8, 2)

	v, _ := l.Read(0x8)
	if v != 1 {
		t.Errorf("original mutated by clone write: Read = %d, want 1", v)
	}
}

func TestGlobalReadDefaultsZero(t *testing.T) {
	g := NewGlobal()
	v, err := g.Read(1<<63 | 0x8)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 0 {
		t.Errorf("Read of never-written global address = %d, want 0", v)
	}
}

func TestGlobalWriteThenRead(t *testing.T) {
	g := NewGlobal()
	addr := word.Word(1<<63 | 0x10)
	if err := g.Write(addr, 7); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, err := g.Read(addr)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 7 {
		t.Errorf("Read = %d, want 7", v)
	}
}
