package valsp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/flasm-project/flasm/internal/word"
)

// exprNode is the participle grammar AST for a single ValSp, mirroring
// the teacher's pkg/parser.Expression union-of-pointers shape. It is
// converted into a runtime ValSp by build.
type exprNode struct {
	Label  *string    `parser:"(  \":\" @Ident"`
	PopIdx *exprNode  `parser:" | \"$\" \"pop\" \"[\" @@ \"]\""`
	Pop    *string    `parser:" | @(\"$\" \"pop\")"`
	Peek   *string    `parser:" | @(\"$\" \"peek\")"`
	GMem   *exprNode  `parser:" | \"$\" \"gmem\" \"[\" @@ \"]\""`
	Mem    *exprNode  `parser:" | \"$\" \"mem\" \"[\" @@ \"]\""`
	Tid    *string    `parser:" | @(\"$\" \"tid\")"`
	Hex    *string    `parser:" | @Hex"`
	Dec    *string    `parser:" | @Dec )"`
}

var valspLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Hex", Pattern: `0x[0-9a-fA-F]+`},
	{Name: "Dec", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Dollar", Pattern: `\$`},
	{Name: "Colon", Pattern: `:`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var valspParser = participle.MustBuild[exprNode](
	participle.Lexer(valspLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

// LabelResolver looks up a label's instruction index, as built by the
// assembler's label pass.
type LabelResolver func(name string) (word.Word, bool)

// Parse parses the textual ValSp grammar (spec §4.6) into a runtime
// ValSp. Labels are resolved immediately against resolveLabel and become
// Literal values — labels are not retained at runtime (spec §3).
func Parse(text string, resolveLabel LabelResolver) (ValSp, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty value specifier")
	}

	if err := checkBracketsAndIndexedForms(text); err != nil {
		return nil, err
	}

	node, err := valspParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return build(node, resolveLabel)
}

// checkBracketsAndIndexedForms gives the two grammar failures spec.md
// names an exact message ahead of participle's generic parse error:
// unbalanced brackets, and $mem/$gmem used without an index.
func checkBracketsAndIndexedForms(text string) error {
	depth := 0
	for _, r := range text {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return fmt.Errorf("Expected ']' at end of %s", text)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("Expected ']' at end of %s", text)
	}

	for _, kind := range []string{"$mem", "$gmem"} {
		if text == kind || (strings.HasPrefix(text, kind) && !strings.HasPrefix(text[len(kind):], "[")) {
			return fmt.Errorf("%s requires index", kind)
		}
	}
	return nil
}

func build(n *exprNode, resolveLabel LabelResolver) (ValSp, error) {
	switch {
	case n.Label != nil:
		idx, ok := resolveLabel(*n.Label)
		if !ok {
			return nil, fmt.Errorf("unknown label: %s", *n.Label)
		}
		return Literal(idx), nil

	case n.PopIdx != nil:
		inner, err := build(n.PopIdx, resolveLabel)
		if err != nil {
			return nil, err
		}
		return PopI{Index: inner}, nil

	case n.Pop != nil:
		return Pop{}, nil

	case n.Peek != nil:
		return Peek{}, nil

	case n.GMem != nil:
		inner, err := build(n.GMem, resolveLabel)
		if err != nil {
			return nil, err
		}
		return GlobalMemory{Addr: inner}, nil

	case n.Mem != nil:
		inner, err := build(n.Mem, resolveLabel)
		if err != nil {
			return nil, err
		}
		return Memory{Addr: inner}, nil

	case n.Tid != nil:
		return ThreadID{}, nil

	case n.Hex != nil:
		v, err := strconv.ParseUint((*n.Hex)[2:], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing hex literal %q: %w", *n.Hex, err)
		}
		return Literal(v), nil

	case n.Dec != nil:
		v, err := strconv.ParseUint(*n.Dec, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing decimal literal %q: %w", *n.Dec, err)
		}
		return Literal(v), nil

	default:
		return nil, fmt.Errorf("could not parse value specifier")
	}
}
