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

// Package resolve tracks the running code and data address offsets
// within a translation unit as pass one walks its tokens.
package resolve

import (
	"github.com/genasmlib/genasm/pkg/isa"
	"github.com/genasmlib/genasm/pkg/token"
)

// Resolver accumulates code and data address offsets as pass one visits
// each symbol and instruction token in source order.
type Resolver struct {
	trait isa.Trait

	codeOffset isa.Address
	dataOffset isa.Address
}

// New returns a Resolver starting both offsets at zero.
func New(trait isa.Trait) *Resolver {
	return &Resolver{trait: trait}
}

// CodeAddressOffset returns the code offset accumulated so far, i.e. the
// address the next instruction would be placed at, relative to the
// translation unit's code base address.
func (r *Resolver) CodeAddressOffset() isa.Address { return r.codeOffset }

// DataAddressOffset returns the data offset accumulated so far, relative
// to the translation unit's data base address.
func (r *Resolver) DataAddressOffset() isa.Address { return r.dataOffset }

// UpdateSymbol advances the data offset by the space a Data symbol's
// initial values occupy. Jump and Const symbols do not consume data
// space and leave the offset unchanged.
func (r *Resolver) UpdateSymbol(sym token.SymbolToken) {
	if sym.Type == token.Data {
		r.dataOffset += isa.Address(r.trait.SizeInBasicUnits(sym.BlockSize)) * isa.Address(len(sym.InitValue))
	}
}

// UpdateInstruction advances the code offset by the width of an encoded
// instruction with the given opcode.
func (r *Resolver) UpdateInstruction(instr token.InstructionToken) {
	r.codeOffset += isa.Address(r.trait.InstructionWidthInBasicUnits(instr.OpCode))
}
