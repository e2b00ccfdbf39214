package valsp

import (
	"strings"
	"testing"

	"github.com/flasm-project/flasm/internal/word"
)

func stubResolver(labels map[string]word.Word) LabelResolver {
	return func(name string) (word.Word, bool) {
		v, ok := labels[name]
		return v, ok
	}
}

func TestParsePop(t *testing.T) {
	v, err := Parse("$pop", stubResolver(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := v.(Pop); !ok {
		t.Errorf("Parse(%q) = %T, want Pop", "$pop", v)
	}
}

func TestParsePeek(t *testing.T) {
	v, err := Parse("$peek", stubResolver(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := v.(Peek); !ok {
		t.Errorf("Parse(%q) = %T, want Peek", "$peek", v)
	}
}

func TestParsePopIndexed(t *testing.T) {
	v, err := Parse("$pop[3]", stubResolver(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, ok := v.(PopI)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want PopI", "$pop[3]", v)
	}
	lit, ok := p.Index.(Literal)
	if !ok || word.Word(lit) != 3 {
		t.Errorf("PopI.Index = %#v, want Literal(3)", p.Index)
	}
}

func TestParseMemory(t *testing.T) {
	v, err := Parse("$mem[0x10]", stubResolver(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, ok := v.(Memory)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want Memory", "$mem[0x10]", v)
	}
	lit, ok := m.Addr.(Literal)
	if !ok || word.Word(lit) != 0x10 {
		t.Errorf("Memory.Addr = %#v, want Literal(0x10)", m.Addr)
	}
}

func TestParseGlobalMemory(t *testing.T) {
	v, err := Parse("$gmem[$pop]", stubResolver(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, ok := v.(GlobalMemory)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want GlobalMemory", "$gmem[$pop]", v)
	}
	if _, ok := g.Addr.(Pop); !ok {
		t.Errorf("GlobalMemory.Addr = %#v, want Pop", g.Addr)
	}
}

func TestParseThreadID(t *testing.T) {
	v, err := Parse("$tid", stubResolver(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := v.(ThreadID); !ok {
		t.Errorf("Parse(%q) = %T, want ThreadID", "$tid", v)
	}
}

func TestParseHexLiteral(t *testing.T) {
	v, err := Parse("0x2a", stubResolver(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lit, ok := v.(Literal)
	if !ok || word.Word(lit) != 0x2a {
		t.Errorf("Parse(%q) = %#v, want Literal(0x2a)", "0x2a", v)
	}
}

func TestParseDecimalLiteral(t *testing.T) {
	v, err := Parse("42", stubResolver(nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lit, ok := v.(Literal)
	if !ok || word.Word(lit) != 42 {
		t.Errorf("Parse(%q) = %#v, want Literal(42)", "42", v)
	}
}

func TestParseLabelResolved(t *testing.T) {
	v, err := Parse(":done", stubResolver(map[string]word.Word{"done": 7}))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lit, ok := v.(Literal)
	if !ok || word.Word(lit) != 7 {
		t.Errorf("Parse(%q) = %#v, want Literal(7)", ":done", v)
	}
}

func TestParseUnknownLabel(t *testing.T) {
	_, err := Parse(":missing", stubResolver(nil))
	if err == nil {
		t.Fatal("expected an error for an unresolved label")
	}
	if !strings.Contains(err.Error(), "unknown label: missing") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "unknown label: missing")
	}
}

func TestParseUnbalancedBrackets(t *testing.T) {
	_, err := Parse("$mem[0x10", stubResolver(nil))
	if err == nil {
		t.Fatal("expected an error for unbalanced brackets")
	}
	if !strings.Contains(err.Error(), "Expected ']' at end of") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "Expected ']' at end of")
	}
}

func TestParseMemoryRequiresIndex(t *testing.T) {
	_, err := Parse("$mem", stubResolver(nil))
	if err == nil {
		t.Fatal("expected an error for $mem without an index")
	}
	if !strings.Contains(err.Error(), "requires index") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "requires index")
	}
}

func TestParseGlobalMemoryRequiresIndex(t *testing.T) {
	_, err := Parse("$gmem", stubResolver(nil))
	if err == nil {
		t.Fatal("expected an error for $gmem without an index")
	}
	if !strings.Contains(err.Error(), "requires index") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "requires index")
	}
}
