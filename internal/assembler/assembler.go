// Package assembler implements flasm's two-pass textual assembler: a
// label pass that records every label's instruction index, then an
// opcode pass that resolves each instruction's operands (valsp.Parse
// may reference any label, defined earlier or later in the source).
// The per-line tokenizing shape — split the command from its
// comma-separated arguments — is grounded on the original source's
// lib.rs::parse; the two-pass label/fixup structure generalizes the
// teacher's pkg/micro/asm.go Assembler, which performs the equivalent
// job (resolve label in a second pass) for a byte-packed instruction
// stream instead of a flat opcode vector.
package assembler

import (
	"fmt"
	"strings"

	"github.com/flasm-project/flasm/internal/valsp"
	"github.com/flasm-project/flasm/internal/vm"
	"github.com/flasm-project/flasm/internal/vmops"
	"github.com/flasm-project/flasm/internal/word"
)

type sourceLine struct {
	lineNo int
	text   string
}

// Assemble parses flasm source text into a Program (spec §4.5).
func Assemble(source string) (*vm.Program, error) {
	lines := splitLines(source)

	labels, opLines, err := firstPass(lines)
	if err != nil {
		return nil, err
	}

	resolveLabel := func(name string) (word.Word, bool) {
		idx, ok := labels[name]
		return word.Word(idx), ok
	}

	instructions, err := secondPass(opLines, resolveLabel)
	if err != nil {
		return nil, err
	}

	return &vm.Program{Instructions: instructions}, nil
}

func splitLines(source string) []sourceLine {
	raw := strings.Split(source, "\n")
	lines := make([]sourceLine, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSpace(text)
		if idx := strings.Index(text, "#"); idx >= 0 {
			text = strings.TrimSpace(text[:idx])
		}
		if text == "" {
			continue
		}
		lines = append(lines, sourceLine{lineNo: i + 1, text: text})
	}
	return lines
}

// firstPass records every label's resolved instruction index and
// returns the remaining (non-label) lines in order.
func firstPass(lines []sourceLine) (map[string]int, []sourceLine, error) {
	labels := make(map[string]int)
	opLines := make([]sourceLine, 0, len(lines))

	for _, line := range lines {
		if label, ok := strings.CutPrefix(line.text, ":"); ok {
			label = strings.TrimSpace(label)
			if label == "" {
				return nil, nil, fmt.Errorf("line %d: empty label", line.lineNo)
			}
			if _, dup := labels[label]; dup {
				return nil, nil, fmt.Errorf("line %d: duplicate label %q", line.lineNo, label)
			}
			labels[label] = len(opLines)
			continue
		}
		opLines = append(opLines, line)
	}

	return labels, opLines, nil
}

func secondPass(lines []sourceLine, resolveLabel valsp.LabelResolver) ([]vm.Instruction, error) {
	instructions := make([]vm.Instruction, 0, len(lines))

	for _, line := range lines {
		instr, err := assembleLine(line.text, resolveLabel)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line.lineNo, err)
		}
		instructions = append(instructions, instr)
	}

	return instructions, nil
}

func assembleLine(text string, resolveLabel valsp.LabelResolver) (vm.Instruction, error) {
	name, rest, _ := strings.Cut(text, " ")
	name = strings.TrimSpace(name)

	def, err := vmops.Lookup(name)
	if err != nil {
		return vm.Instruction{}, err
	}

	var operandTexts []string
	rest = strings.TrimSpace(rest)
	if rest != "" {
		operandTexts = strings.Split(rest, ",")
	}
	if len(operandTexts) < def.Arity {
		return vm.Instruction{}, fmt.Errorf("Too few arguments to %s", name)
	}
	if len(operandTexts) > def.Arity {
		return vm.Instruction{}, fmt.Errorf("Too many arguments to %s", name)
	}

	operands := make([]valsp.ValSp, def.Arity)
	for i, text := range operandTexts {
		v, err := valsp.Parse(strings.TrimSpace(text), resolveLabel)
		if err != nil {
			return vm.Instruction{}, fmt.Errorf("%s operand %d: %w", name, i+1, err)
		}
		operands[i] = v
	}

	return vm.Instruction{Def: def, Operands: operands}, nil
}
