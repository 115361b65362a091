// Copyright (C) 2026 The genasm Authors

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package token implements the line tokenizer: classifying a stripped
// source line as blank, a symbol definition, or an instruction, and
// parsing it into a SymbolToken or InstructionToken against a plugged-in
// isa.Trait.
package token

import (
	"strings"

	"github.com/genasmlib/genasm/pkg/isa"
	"github.com/genasmlib/genasm/pkg/lex"
)

// Tokenizer classifies and parses one source line at a time against a
// single isa.Trait. It is not safe for concurrent use; a pipeline
// processing several translation units in parallel should give each its
// own Tokenizer.
type Tokenizer struct {
	trait isa.Trait

	stripped string
	symbol   SymbolToken
	instr    InstructionToken
	isSymbol bool
}

// New returns a Tokenizer bound to the given ISA trait.
func New(trait isa.Trait) *Tokenizer {
	return &Tokenizer{trait: trait}
}

// Tokenize strips comments and whitespace from line and classifies and
// parses what remains. When shouldTokenizeSymbol is false, symbol
// definition lines are classified but not parsed into a SymbolToken, for
// callers that only need IsSymbol/IsInstruction classification;
// assemble.Read always passes true.
func (t *Tokenizer) Tokenize(line string, pos Cursor, shouldTokenizeSymbol bool) error {
	t.symbol = SymbolToken{}
	t.instr = InstructionToken{}

	t.stripped = lex.StripCommentsAndWhitespace(line, ';')

	if t.IsBlank() {
		return nil
	}

	cursor, isSymbol, err := evaluateIsSymbol(t.stripped)
	if err != nil {
		return err
	}
	t.isSymbol = isSymbol

	if t.IsInstruction() {
		return t.tokenizeInstruction(pos)
	}
	if t.IsSymbol() && shouldTokenizeSymbol {
		return t.tokenizeSymbol(pos, cursor)
	}
	return nil
}

// IsBlank reports whether the last tokenized line had no content once
// comments and whitespace were stripped.
func (t *Tokenizer) IsBlank() bool { return t.stripped == "" }

// IsSymbol reports whether the last tokenized line defines a symbol.
func (t *Tokenizer) IsSymbol() bool { return !t.IsBlank() && t.isSymbol }

// IsInstruction reports whether the last tokenized line is an
// instruction.
func (t *Tokenizer) IsInstruction() bool { return !t.IsBlank() && !t.isSymbol }

// Symbol returns the SymbolToken parsed by the last Tokenize call.
func (t *Tokenizer) Symbol() SymbolToken { return t.symbol }

// Instruction returns the InstructionToken parsed by the last Tokenize
// call.
func (t *Tokenizer) Instruction() InstructionToken { return t.instr }

// evaluateIsSymbol scans line for a structural ':' outside of quoted
// text. If found, it reports the offset of the colon and true; if the
// line is exhausted without a colon, it reports false with an offset of
// either the end of the line (when the line ends inside or right after a
// quoted run) or zero (a plain instruction line).
func evaluateIsSymbol(line string) (cursor int, isSymbol bool, err error) {
	pos := 0
	for pos < len(line) {
		ch, _, next, ok, err := lex.AdvanceSkipQuoted(line, pos)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return next, false, nil
		}
		if ch == ':' {
			return next - 1, true, nil
		}
		pos = next
	}
	return 0, false, nil
}

func (t *Tokenizer) tokenizeInstruction(pos Cursor) error {
	split := lex.SplitOnDelimiterList(t.stripped, []byte{' ', ','})

	op, err := t.trait.ResolveOpCode(split[0])
	if err != nil {
		return &InvalidArgumentError{Position: pos, Text: split[0], Cause: err}
	}
	t.instr.OpCode = op

	for i := 1; i < len(split); i++ {
		arg := lex.StripWhitespace(split[i])
		argIndex := i - 1

		if arg == "" {
			return &EmptyArgumentError{Position: pos}
		}

		switch {
		case arg[0] == '%':
			reg, err := t.trait.ResolveRegister(arg[1:])
			if err != nil {
				return &InvalidArgumentError{Position: pos, Text: arg, Cause: err}
			}
			t.instr.RegisterArgs = append(t.instr.RegisterArgs, IndexedData[isa.RegisterCode]{Index: argIndex, Value: reg})

		case arg[0] == '$':
			val, err := lex.ConvertNumberString(arg[1:], 64)
			if err != nil {
				return &MalformedNumberError{Position: pos, Text: arg, Cause: err}
			}
			t.instr.ImmediateArgs = append(t.instr.ImmediateArgs, IndexedData[isa.LargestValue]{Index: argIndex, Value: val})

		case arg[0] == '\'' && len(arg) > 2 && arg[len(arg)-1] == '\'':
			var val byte
			if len(arg) == 3 {
				val = arg[1]
			} else {
				val, err = lex.ConvertEscapedString(arg[1 : len(arg)-1])
				if err != nil {
					return &MalformedNumberError{Position: pos, Text: arg, Cause: err}
				}
			}
			t.instr.ImmediateArgs = append(t.instr.ImmediateArgs, IndexedData[isa.LargestValue]{Index: argIndex, Value: isa.LargestValue(val)})

		case t.trait.IsModifier(arg):
			mod, err := t.trait.ResolveModifier(arg)
			if err != nil {
				return &InvalidArgumentError{Position: pos, Text: arg, Cause: err}
			}
			t.instr.ModifierArgs = append(t.instr.ModifierArgs, IndexedData[isa.ModifierCode]{Index: argIndex, Value: mod})

		default:
			ref, err := parseSymbolRef(arg, pos)
			if err != nil {
				return err
			}
			t.instr.SymbolArgs = append(t.instr.SymbolArgs, IndexedData[SymbolRef]{Index: argIndex, Value: ref})
		}
	}

	return nil
}

func parseSymbolRef(arg string, pos Cursor) (SymbolRef, error) {
	indexBegin := strings.IndexByte(arg, '[')

	name := arg
	if indexBegin >= 0 {
		name = arg[:indexBegin]
	}

	ref := SymbolRef{Name: name}
	if indexBegin < 0 {
		return ref, nil
	}

	indexEndRel := strings.IndexByte(arg[indexBegin:], ']')
	if indexEndRel < 0 {
		return ref, &MalformedIndexError{Position: pos, Reason: "missing closing ']'"}
	}
	indexEnd := indexBegin + indexEndRel

	idxText := arg[indexBegin+1 : indexEnd]
	if idxText == "" {
		return ref, &MalformedIndexError{Position: pos, Reason: "empty index"}
	}

	idx1, err := lex.ConvertNumberString(idxText, 64)
	if err != nil {
		return ref, &MalformedNumberError{Position: pos, Text: idxText, Cause: err}
	}
	ref.IndexPrimary = idx1

	next := lex.AdvanceOverWhitespace(arg, indexEnd+1)
	if next < 0 || next >= len(arg) {
		return ref, nil
	}

	if arg[next] != '[' {
		return ref, &MalformedIndexError{Position: pos, Reason: "unexpected character after first index"}
	}
	if arg[len(arg)-1] != ']' {
		return ref, &MalformedIndexError{Position: pos, Reason: "unexpected character at end of symbol argument"}
	}

	idxText2 := arg[next+1 : len(arg)-1]
	if idxText2 == "" {
		return ref, &MalformedIndexError{Position: pos, Reason: "empty index"}
	}

	idx2, err := lex.ConvertNumberString(idxText2, 64)
	if err != nil {
		return ref, &MalformedNumberError{Position: pos, Text: idxText2, Cause: err}
	}
	ref.IndexSecondary = idx2

	return ref, nil
}

func validateSymbolName(name string, pos Cursor) error {
	if name == "" {
		return &InvalidSymbolNameError{Position: pos, Name: name}
	}

	first := name[0]
	if (first >= '0' && first <= '9') || first == '@' {
		return &InvalidSymbolNameError{Position: pos, Name: name}
	}

	for i := 0; i < len(name); i++ {
		ch := name[i]
		valid := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '_' || ch == '@'
		if !valid {
			return &InvalidSymbolNameError{Position: pos, Name: name}
		}
	}

	return nil
}

// invalidCursor reports whether cursor has run off the end of line,
// mirroring the C++ original's use of npos as an "exhausted" sentinel.
func invalidCursor(line string, cursor int) bool {
	return cursor < 0 || cursor >= len(line)
}

func advanceCursor(line string, cursor, count int) int {
	next := lex.AdvanceOverWhitespace(line, cursor+count)
	if next < 0 {
		return len(line)
	}
	return next
}

func (t *Tokenizer) tokenizeSymbol(pos Cursor, colon int) error {
	line := t.stripped

	name := lex.StripWhitespace(line[:colon])
	if err := validateSymbolName(name, pos); err != nil {
		return err
	}
	t.symbol.Name = name

	cursor := advanceCursor(line, colon, 1)

	t.symbol.IsExport = lex.IsExactSubstr(line, ExportSwitch, cursor)
	if t.symbol.IsExport {
		cursor = advanceCursor(line, cursor, len(ExportSwitch))
	}

	if invalidCursor(line, cursor) {
		t.symbol.Type = Jump
		return nil
	}

	switch {
	case lex.IsExactSubstr(line, DataSwitch, cursor):
		t.symbol.Type = Data
		cursor = advanceCursor(line, cursor, len(DataSwitch))
	case lex.IsExactSubstr(line, ConstSwitch, cursor):
		t.symbol.Type = Const
		cursor = advanceCursor(line, cursor, len(ConstSwitch))
	default:
		return &UnrecognizedSwitchError{Position: pos}
	}

	if invalidCursor(line, cursor) {
		return &MissingSizeSwitchError{Position: pos}
	}

	if lex.IsExactSubstr(line, AsciiSwitch, cursor) {
		t.symbol.BlockSize = AsciiData
		cursor = advanceCursor(line, cursor, len(AsciiSwitch))
	} else if line[cursor] == '.' {
		end := strings.IndexAny(line[cursor:], lex.Whitespace)
		var sizeText string
		if end < 0 {
			sizeText = lex.StripWhitespace(line[cursor:])
			cursor = len(line)
		} else {
			end += cursor
			sizeText = lex.StripWhitespace(line[cursor:end])
			cursor = advanceCursor(line, end, 0)
		}

		size, err := t.trait.ResolveSize(sizeText)
		if err != nil {
			return &InvalidArgumentError{Position: pos, Text: sizeText, Cause: err}
		}
		t.symbol.BlockSize = size
	} else {
		return &MissingSizeSwitchError{Position: pos}
	}

	if t.symbol.BlockSize != AsciiData {
		if invalidCursor(line, cursor) || line[cursor] != '[' {
			return &MalformedIndexError{Position: pos, Reason: "non-ascii data/const types require an element count inside '[]'"}
		}

		cursor = advanceCursor(line, cursor, 1)
		end := strings.IndexByte(line[cursor:], ']')
		if end < 0 {
			return &MalformedIndexError{Position: pos, Reason: "expected ']'"}
		}
		end += cursor

		count, err := lex.ConvertNumberString(line[cursor:end], 64)
		if err != nil {
			return &MalformedNumberError{Position: pos, Text: line[cursor:end], Cause: err}
		}

		cursor = advanceCursor(line, end, 1)
		t.symbol.InitValue = make([]isa.LargestValue, count)
	}

	if invalidCursor(line, cursor) {
		if t.symbol.Type == Const {
			return &MissingInitialValueError{Position: pos}
		}
		if t.symbol.BlockSize == AsciiData {
			return &MissingInitialValueError{Position: pos}
		}
		return nil
	}

	if t.symbol.BlockSize != AsciiData {
		parts := lex.SplitOnDelimiterList(line[cursor:], []byte{','})

		min := len(t.symbol.InitValue)
		if len(parts) < min {
			min = len(parts)
		}

		for i := 0; i < min; i++ {
			val, err := lex.ConvertNumberString(lex.StripWhitespace(parts[i]), 64)
			if err != nil {
				return &MalformedNumberError{Position: pos, Text: parts[i], Cause: err}
			}
			t.symbol.InitValue[i] = val
		}
	} else {
		if line[cursor] != '"' || line[len(line)-1] != '"' {
			return &UnterminatedStringError{Position: pos}
		}

		text := line[cursor+1 : len(line)-1]
		if text != "" {
			p := 0
			for p < len(text) {
				ch, _, next, err := lex.AdvanceOverText(text, p)
				if err != nil {
					return &MalformedNumberError{Position: pos, Text: text, Cause: err}
				}
				t.symbol.InitValue = append(t.symbol.InitValue, isa.LargestValue(ch))
				p = next
			}
		}
		t.symbol.InitValue = append(t.symbol.InitValue, 0)
	}

	return nil
}
