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

package token

import "github.com/genasmlib/genasm/pkg/isa"

// Cursor identifies the source location a token, or an error about a
// token, originated from.
type Cursor struct {
	File string
	Line uint64
}

// Positioned is satisfied by any error that can report where in the
// source it occurred.
type Positioned interface {
	GetPosition() Cursor
}

// Data size markers a symbol's blockSizeCode can carry in addition to
// whatever an ISA trait's ResolveSize defines; these two are meaningful
// to the tokenizer itself rather than to any one ISA.
const (
	NoData    isa.BlockSizeCode = 0
	AsciiData isa.BlockSizeCode = 1
)

// Symbol definition switches recognized after the colon that ends a
// symbol's name.
const (
	ExportSwitch = ".export"
	DataSwitch   = ".data"
	ConstSwitch  = ".const"
	AsciiSwitch  = ".ascii"
)

// SymbolType classifies what a defined symbol names.
type SymbolType int

const (
	// Jump symbols name a code address (a label).
	Jump SymbolType = iota
	// Data symbols name a mutable, zero- or explicitly-initialized
	// data block.
	Data
	// Const symbols name an assembly-time constant block.
	Const
)

func (t SymbolType) String() string {
	switch t {
	case Jump:
		return "jump"
	case Data:
		return "data"
	case Const:
		return "const"
	default:
		return "unknown"
	}
}

// SymbolToken is the tokenized form of a symbol definition line.
type SymbolToken struct {
	Name      string
	IsExport  bool
	Type      SymbolType
	BlockSize isa.BlockSizeCode
	InitValue []isa.LargestValue
}

// IndexedData pairs a positional argument index (its place in the
// instruction's argument list) with the value tokenized from it.
type IndexedData[T any] struct {
	Index int
	Value T
}

// SymbolRef is a tokenized reference to a symbol used as an instruction
// argument, with up to two array subscripts.
type SymbolRef struct {
	Name           string
	IndexPrimary   uint64
	IndexSecondary uint64
}

// InstructionToken is the tokenized form of an instruction line.
type InstructionToken struct {
	OpCode        isa.OpCode
	RegisterArgs  []IndexedData[isa.RegisterCode]
	ImmediateArgs []IndexedData[isa.LargestValue]
	ModifierArgs  []IndexedData[isa.ModifierCode]
	SymbolArgs    []IndexedData[SymbolRef]
}
