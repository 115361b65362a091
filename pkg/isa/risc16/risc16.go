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

// Package risc16 binds the pipeline's ISA trait to a small 16-bit
// register machine: 8 data registers (r1..r5 also have mnemonic names,
// r0, r6 and r7 do not), no instruction modifiers, and 13 instructions encoded as a
// single 16-bit word with a 4-bit opcode in its top nibble.
package risc16

import (
	"strconv"
	"strings"

	"github.com/genasmlib/genasm/pkg/encode"
	"github.com/genasmlib/genasm/pkg/isa"
	"github.com/genasmlib/genasm/pkg/lex"
	"github.com/genasmlib/genasm/pkg/token"
)

// sizeTypes mirrors the original's sizeTypes array; its index plus two
// is the block size code, so ".word" resolves to 2 and ".qword" to 4.
var sizeTypes = [...]string{".word", ".dword", ".qword"}

// regNames gives registers 1..5 mnemonic aliases ("bp" is register 1).
// Any register can also be named "r<N>" or addressed by a bare number.
var regNames = [...]string{"bp", "sp", "ra", "fa1", "fa2"}

// instrList is indexed by opcode.
var instrList = [...]string{
	"add", "addi", "nand", "lui", "lw", "sw", "beq", "jalr",
	"movi", "push", "pop", "call", "ret",
}

const (
	opAdd isa.OpCode = iota
	opAddi
	opNand
	opLui
	opLw
	opSw
	opBeq
	opJalr
	opMovi
	opPush
	opPop
	opCall
	opRet
)

// Trait implements isa.Trait for the risc16 target.
type Trait struct{}

// ResolveSize encodes a ".word"/".dword"/".qword" size keyword.
func (Trait) ResolveSize(text string) (isa.BlockSizeCode, error) {
	for i, name := range sizeTypes {
		if name == text {
			return isa.BlockSizeCode(i + 2), nil
		}
	}
	return 0, &isa.UnknownSizeError{Text: text}
}

// ResolveRegister encodes a register operand, either a mnemonic name
// ("bp", "sp", ...), an "r<N>" form, or a bare number.
func (Trait) ResolveRegister(text string) (isa.RegisterCode, error) {
	for i, name := range regNames {
		if name == text {
			return isa.RegisterCode(i + 1), nil
		}
	}

	if strings.HasPrefix(text, "r") {
		digits := text[1:]
		if !lex.ValidateDecString(digits) {
			return 0, &isa.UnknownRegisterError{Text: text}
		}
		return isa.RegisterCode(lex.ConvertDecimalString(digits)), nil
	}

	if lex.ValidateNumberString(text) {
		val, err := lex.ConvertNumberString(text, 8)
		if err != nil {
			return 0, &isa.UnknownRegisterError{Text: text}
		}
		return isa.RegisterCode(val), nil
	}

	return 0, &isa.UnknownRegisterError{Text: text}
}

// ResolveModifier always fails: risc16 has no condition modifiers.
func (Trait) ResolveModifier(text string) (isa.ModifierCode, error) {
	return 0, &isa.UnknownModifierError{Text: text}
}

// IsModifier always reports false: risc16 has no condition modifiers.
func (Trait) IsModifier(string) bool { return false }

// ResolveOpCode encodes an instruction mnemonic.
func (Trait) ResolveOpCode(text string) (isa.OpCode, error) {
	for i, name := range instrList {
		if name == text {
			return isa.OpCode(i), nil
		}
	}
	return 0, &isa.UnknownOpCodeError{Text: text}
}

// InstructionName reverse-looks-up a mnemonic from its opcode.
func (Trait) InstructionName(op isa.OpCode) (string, error) {
	if int(op) >= len(instrList) {
		return "", &isa.UnknownOpCodeError{Text: strconv.FormatUint(uint64(op), 10)}
	}
	return instrList[op], nil
}

// SizeInBasicUnits returns the 16-bit-word count a block size code
// occupies: none for an undeclared size, one 16-bit unit for an ASCII
// byte or a .word, two for a .dword, four for a .qword.
func (Trait) SizeInBasicUnits(code isa.BlockSizeCode) uint {
	switch code {
	case token.NoData:
		return 0
	case token.AsciiData:
		return 1
	case 2:
		return 1
	case 3:
		return 2
	case 4:
		return 4
	default:
		return 0
	}
}

// InstructionWidthInBasicUnits is always one: every risc16 instruction
// is a single 16-bit word.
func (Trait) InstructionWidthInBasicUnits(isa.OpCode) uint { return 1 }

// Bit positions shared by every instruction's field schedule: a 16-bit
// word with the opcode in the top nibble.
const (
	opcodeOffset = 12
	opcodeSize   = 4
)

func opcodeField() encode.Field { return encode.Field{Offset: opcodeOffset, Size: opcodeSize} }

// FieldSchedule returns the bit-field layout an encoded instruction's
// opcode and operands are packed into. Schedule order matches each
// mnemonic's argument order: opcode first, then register operands (in
// source order), then any trailing immediate/offset field.
func (Trait) FieldSchedule(op isa.OpCode) []encode.Field {
	switch op {
	case opAdd, opNand:
		// <op> dr, sr1, sr2
		return []encode.Field{
			opcodeField(),
			{Offset: 9, Size: 3},
			{Offset: 6, Size: 3},
			{Offset: 0, Size: 3},
		}
	case opAddi:
		// addi dr, sr1, imm6
		return []encode.Field{
			opcodeField(),
			{Offset: 9, Size: 3},
			{Offset: 6, Size: 3},
			{Offset: 0, Size: 6},
		}
	case opLui, opMovi:
		// <op> dr, imm9
		return []encode.Field{
			opcodeField(),
			{Offset: 9, Size: 3},
			{Offset: 0, Size: 9},
		}
	case opLw:
		// lw dr, base, offset6
		return []encode.Field{
			opcodeField(),
			{Offset: 9, Size: 3},
			{Offset: 6, Size: 3},
			{Offset: 0, Size: 6},
		}
	case opSw:
		// sw sr, base, offset6
		return []encode.Field{
			opcodeField(),
			{Offset: 9, Size: 3},
			{Offset: 6, Size: 3},
			{Offset: 0, Size: 6},
		}
	case opBeq:
		// beq sr1, sr2, offset6
		return []encode.Field{
			opcodeField(),
			{Offset: 9, Size: 3},
			{Offset: 6, Size: 3},
			{Offset: 0, Size: 6},
		}
	case opJalr:
		// jalr dr, base
		return []encode.Field{
			opcodeField(),
			{Offset: 9, Size: 3},
			{Offset: 6, Size: 3},
		}
	case opPush, opPop:
		// push sr / pop dr
		return []encode.Field{
			opcodeField(),
			{Offset: 9, Size: 3},
		}
	case opCall:
		// call imm12
		return []encode.Field{
			opcodeField(),
			{Offset: 0, Size: 12},
		}
	case opRet:
		// ret
		return []encode.Field{opcodeField()}
	default:
		return []encode.Field{opcodeField()}
	}
}
