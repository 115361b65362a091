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

// Package assemble wires the tokenizer, address resolver, symbol table
// and encoder into the two-pass pipeline: pass one reads a translation
// unit's source and populates the symbol table and its own running
// offsets; pass two walks the same tokens again and emits the final
// encoded instructions and initial data image, now that every symbol
// a unit (or, once linked, a set of units) defines is known.
package assemble

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/genasmlib/genasm/pkg/encode"
	"github.com/genasmlib/genasm/pkg/isa"
	"github.com/genasmlib/genasm/pkg/reader"
	"github.com/genasmlib/genasm/pkg/resolve"
	"github.com/genasmlib/genasm/pkg/symtab"
	"github.com/genasmlib/genasm/pkg/token"
)

// Item is one non-blank tokenized line of a translation unit: either a
// symbol definition or an instruction, never both.
type Item struct {
	Pos         token.Cursor
	Symbol      *token.SymbolToken
	Instruction *token.InstructionToken
}

// Unit is a fully tokenized translation unit, ready for the two
// assembly passes.
type Unit struct {
	Name  string
	Items []Item
}

// Read tokenizes every line of src into a Unit named name. Blank lines
// and comment-only lines are dropped; everything else must tokenize as
// either a symbol definition or an instruction.
func Read(trait isa.Trait, name string, src io.Reader) (*Unit, error) {
	rd := reader.New(name, src)
	tk := token.New(trait)

	u := &Unit{Name: name}

	for {
		line, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "assemble: reading %s", name)
		}

		_, lineNo := rd.Id()
		pos := token.Cursor{File: name, Line: lineNo}

		if err := tk.Tokenize(line, pos, true); err != nil {
			return nil, errors.Wrapf(err, "assemble: %s:%d", name, lineNo)
		}
		if tk.IsBlank() {
			continue
		}

		item := Item{Pos: pos}
		switch {
		case tk.IsSymbol():
			sym := tk.Symbol()
			item.Symbol = &sym
		case tk.IsInstruction():
			instr := tk.Instruction()
			item.Instruction = &instr
		}
		u.Items = append(u.Items, item)
	}

	return u, nil
}

// PassOneError wraps an error a unit's first pass encountered, with
// the source position it occurred at.
type PassOneError struct {
	Pos token.Cursor
	Err error
}

func (e *PassOneError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Pos.File, e.Pos.Line, e.Err)
}

func (e *PassOneError) Unwrap() error { return e.Err }

// PassOne walks a unit's items in source order, recording every symbol
// it defines into table under unitID and advancing a private resolver
// as it goes. It returns the resolver so PassTwo's caller can, once
// every unit sharing table has run its own first pass, derive final
// base addresses (e.g. laying data segments back to back) before
// resolving any symbol references.
func PassOne(table *symtab.Table, trait isa.Trait, unitID int, u *Unit) (*resolve.Resolver, error) {
	r := resolve.New(trait)

	for _, item := range u.Items {
		switch {
		case item.Symbol != nil:
			if err := table.Add(unitID, *item.Symbol, r); err != nil {
				return r, &PassOneError{Pos: item.Pos, Err: err}
			}
			r.UpdateSymbol(*item.Symbol)
		case item.Instruction != nil:
			r.UpdateInstruction(*item.Instruction)
		}
	}

	return r, nil
}

// PassTwoError wraps an error a unit's second pass encountered, with
// the source position it occurred at.
type PassTwoError struct {
	Pos token.Cursor
	Err error
}

func (e *PassTwoError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Pos.File, e.Pos.Line, e.Err)
}

func (e *PassTwoError) Unwrap() error { return e.Err }

// Output is the result of assembling one translation unit: its encoded
// instructions in source order, and the initial values every Data
// symbol it defines should be loaded with, laid out in the same order
// the resolver accumulated their offsets in.
type Output struct {
	Code []*encode.Instruction
	Data []isa.LargestValue
}

// PassTwo re-walks a unit's items, now that table has every symbol any
// unit sharing it defines, encoding each instruction's opcode and
// operands into a bit-packed Instruction and collecting each Data
// symbol's initial values in layout order.
func PassTwo(table *symtab.Table, trait isa.Trait, unitID int, u *Unit) (*Output, error) {
	out := &Output{}

	for _, item := range u.Items {
		switch {
		case item.Symbol != nil && item.Symbol.Type == token.Data:
			out.Data = append(out.Data, item.Symbol.InitValue...)

		case item.Instruction != nil:
			ins, err := encodeInstruction(table, trait, unitID, *item.Instruction)
			if err != nil {
				return nil, &PassTwoError{Pos: item.Pos, Err: err}
			}
			out.Code = append(out.Code, ins)
		}
	}

	return out, nil
}

// argValues collects an instruction's register, immediate, modifier
// and symbol arguments into a single list ordered by each argument's
// original source position, resolving symbol references against
// table. This is the order FieldSchedule's entries (after the leading
// opcode field) are expected to line up with.
func argValues(table *symtab.Table, unitID int, instr token.InstructionToken) ([]uint64, error) {
	type positioned struct {
		index int
		value uint64
	}

	var all []positioned
	for _, a := range instr.RegisterArgs {
		all = append(all, positioned{a.Index, uint64(a.Value)})
	}
	for _, a := range instr.ImmediateArgs {
		all = append(all, positioned{a.Index, a.Value})
	}
	for _, a := range instr.ModifierArgs {
		all = append(all, positioned{a.Index, uint64(a.Value)})
	}
	for _, a := range instr.SymbolArgs {
		resolved, err := table.Resolve(unitID, a.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving symbol %q", a.Value.Name)
		}
		all = append(all, positioned{a.Index, resolved})
	}

	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j-1].index > all[j].index; j-- {
			all[j-1], all[j] = all[j], all[j-1]
		}
	}

	values := make([]uint64, len(all))
	for i, p := range all {
		values[i] = p.value
	}
	return values, nil
}

func encodeInstruction(table *symtab.Table, trait isa.Trait, unitID int, instr token.InstructionToken) (*encode.Instruction, error) {
	fields := trait.FieldSchedule(instr.OpCode)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no field schedule for opcode %d", instr.OpCode)
	}

	args, err := argValues(table, unitID, instr)
	if err != nil {
		return nil, err
	}

	values := make([]uint64, 0, len(fields))
	values = append(values, uint64(instr.OpCode))
	values = append(values, args...)

	if len(values) != len(fields) {
		return nil, fmt.Errorf("opcode %d: expected %d operand(s), got %d", instr.OpCode, len(fields)-1, len(values)-1)
	}

	width := int(trait.InstructionWidthInBasicUnits(instr.OpCode)) * 8 * int(wordSizeInBytes)
	ins := encode.New(width)
	if err := ins.Load(fields, values); err != nil {
		return nil, err
	}
	return ins, nil
}

// wordSizeInBytes is the width, in bytes, of a single BasicUnit-sized
// cell for every ISA this pipeline currently targets (risc16's 16-bit
// word). A trait that widens its basic unit would need this derived
// from the trait instead of assumed fixed.
const wordSizeInBytes = 2
