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

// Package isa defines the pluggable instruction-set trait that the
// tokenizer, address resolver, and symbol table are all written against.
// A concrete ISA is a single value implementing Trait; no dynamic
// subtyping is needed across the pipeline, so one concrete type per ISA
// is all a plug-in provides (see pkg/isa/risc16).
package isa

import "github.com/genasmlib/genasm/pkg/encode"

// Fixed-width stand-ins for the original's template parameters: every ISA
// this pipeline targets fits comfortably within these widths, so the
// generality of an arbitrary-width numeric type is not needed.
type (
	// BasicUnit is the smallest addressable unit of the target (its
	// "byte").
	BasicUnit = uint8

	// LargestValue holds any literal or data value the assembler can
	// carry, including QWORD-sized constants.
	LargestValue = uint64

	// Word is the natural word size of the target ISA.
	Word = uint64

	// Address indexes code or data memory.
	Address = uint64

	// BlockSizeCode identifies a data size keyword (e.g. .word, .dword).
	BlockSizeCode = uint8

	// RegisterCode identifies a register operand.
	RegisterCode = uint16

	// ModifierCode identifies an instruction modifier/condition.
	ModifierCode = uint16

	// OpCode identifies an instruction mnemonic.
	OpCode = uint16
)

// UnknownSizeError reports a size keyword the ISA trait does not
// recognize.
type UnknownSizeError struct{ Text string }

func (e *UnknownSizeError) Error() string { return "unknown size keyword: " + e.Text }

// UnknownRegisterError reports a register operand the ISA trait does not
// recognize.
type UnknownRegisterError struct{ Text string }

func (e *UnknownRegisterError) Error() string { return "unknown register: " + e.Text }

// UnknownModifierError reports a modifier operand the ISA trait does not
// recognize.
type UnknownModifierError struct{ Text string }

func (e *UnknownModifierError) Error() string { return "unknown modifier: " + e.Text }

// UnknownOpCodeError reports an instruction mnemonic the ISA trait does
// not recognize.
type UnknownOpCodeError struct{ Text string }

func (e *UnknownOpCodeError) Error() string { return "unknown instruction: " + e.Text }

// Trait is the ISA plug-in surface injected into the tokenizer, the
// address resolver, and the symbol table. A concrete binding supplies the
// mnemonic, register, modifier and size-keyword tables for one ISA.
type Trait interface {
	// ResolveSize encodes a size keyword such as ".word".
	ResolveSize(text string) (BlockSizeCode, error)

	// ResolveRegister encodes a register operand.
	ResolveRegister(text string) (RegisterCode, error)

	// ResolveModifier encodes a modifier operand.
	ResolveModifier(text string) (ModifierCode, error)

	// IsModifier reports whether text names a modifier for this ISA.
	IsModifier(text string) bool

	// ResolveOpCode encodes an instruction mnemonic.
	ResolveOpCode(text string) (OpCode, error)

	// InstructionName reverse-looks-up a mnemonic from its opcode, for
	// diagnostics and debug dumping.
	InstructionName(op OpCode) (string, error)

	// SizeInBasicUnits returns how many BasicUnit-sized cells a single
	// element of the given block size occupies.
	SizeInBasicUnits(code BlockSizeCode) uint

	// InstructionWidthInBasicUnits returns how many BasicUnit-sized cells
	// an encoded instruction with this opcode occupies.
	InstructionWidthInBasicUnits(op OpCode) uint

	// FieldSchedule returns the bit-field layout used to encode an
	// instruction with the given opcode.
	FieldSchedule(op OpCode) []encode.Field
}
