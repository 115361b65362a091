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

package symtab

import "github.com/genasmlib/genasm/pkg/isa"

// Entry is satisfied by every symbol table entry variant: JumpEntry,
// DataEntry, and ConstEntry.
type Entry interface {
	Name() string
	TranslationUnit() int
	IsExport() bool
}

type base struct {
	name   string
	unit   int
	export bool
}

func (b base) Name() string         { return b.name }
func (b base) TranslationUnit() int { return b.unit }
func (b base) IsExport() bool       { return b.export }

// JumpEntry names a code address: a label.
type JumpEntry struct {
	base
	CodeAddressOffset isa.Address
}

// DataEntry names a mutable data block.
type DataEntry struct {
	base
	DataAddressOffset isa.Address
	BlockSize         isa.BlockSizeCode
	ElementCount      int
}

// ConstEntry names an assembly-time constant block, carrying its
// initial values directly since nothing else ever mutates them.
type ConstEntry struct {
	base
	BlockSize isa.BlockSizeCode
	InitValue []isa.LargestValue
}
