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

// Package symtab collects symbol definitions across one or more
// translation units and resolves references against them.
package symtab

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/genasmlib/genasm/pkg/isa"
	"github.com/genasmlib/genasm/pkg/resolve"
	"github.com/genasmlib/genasm/pkg/token"
)

// Table holds every symbol defined across the translation units being
// assembled together and resolves instruction argument references
// against them.
type Table struct {
	trait isa.Trait

	entries []Entry

	codeBase isa.Address
	dataBase isa.Address
}

// New returns an empty Table bound to trait.
func New(trait isa.Trait) *Table {
	return &Table{trait: trait}
}

// SetBaseAddress fixes the code and data base addresses. Resolve adds
// the data base to a data symbol's within-unit offset; the code base is
// only stored for GetBaseAddress and is not added to jump symbols.
func (t *Table) SetBaseAddress(code, data isa.Address) {
	t.codeBase = code
	t.dataBase = data
}

// GetBaseAddress returns the base addresses set by SetBaseAddress.
func (t *Table) GetBaseAddress() (code, data isa.Address) {
	return t.codeBase, t.dataBase
}

// Entries returns every symbol defined so far, in definition order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Dump renders the table's contents for debugging.
func (t *Table) Dump() string {
	return spew.Sdump(t.entries)
}

// findSymbol looks up a definition of name visible from unit: one
// defined in the same unit, or exported from any unit.
func (t *Table) findSymbol(name string, unit int) Entry {
	for _, e := range t.entries {
		if e.Name() != name {
			continue
		}
		if e.TranslationUnit() == unit || e.IsExport() {
			return e
		}
	}
	return nil
}

// findIfCollides reports whether candidate collides with an existing
// entry: a same-unit redefinition, or an export colliding with any
// other definition of the same name.
func (t *Table) findIfCollides(candidate Entry) error {
	for _, e := range t.entries {
		if e.Name() != candidate.Name() {
			continue
		}
		if e.TranslationUnit() == candidate.TranslationUnit() {
			return &SymbolRedefinedError{Name: candidate.Name()}
		}
		if e.IsExport() || candidate.IsExport() {
			return &ExportCollisionError{Name: candidate.Name()}
		}
	}
	return nil
}

// Add records sym as defined in translation unit unit, using r's
// current offsets as the symbol's within-unit address or, for a Const
// symbol, has no address of its own. It returns an error without
// modifying the table if sym collides with an existing definition.
func (t *Table) Add(unit int, sym token.SymbolToken, r *resolve.Resolver) error {
	var entry Entry
	switch sym.Type {
	case token.Jump:
		entry = &JumpEntry{
			base:              base{name: sym.Name, unit: unit, export: sym.IsExport},
			CodeAddressOffset: r.CodeAddressOffset(),
		}
	case token.Data:
		entry = &DataEntry{
			base:              base{name: sym.Name, unit: unit, export: sym.IsExport},
			DataAddressOffset: r.DataAddressOffset(),
			BlockSize:         sym.BlockSize,
			ElementCount:      len(sym.InitValue),
		}
	case token.Const:
		values := make([]isa.LargestValue, len(sym.InitValue))
		copy(values, sym.InitValue)
		entry = &ConstEntry{
			base:      base{name: sym.Name, unit: unit, export: sym.IsExport},
			BlockSize: sym.BlockSize,
			InitValue: values,
		}
	}

	if err := t.findIfCollides(entry); err != nil {
		return err
	}
	t.entries = append(t.entries, entry)
	return nil
}

// Resolve computes the value an instruction argument's symbol
// reference stands for, as seen from translation unit unit.
func (t *Table) Resolve(unit int, ref token.SymbolRef) (isa.LargestValue, error) {
	entry := t.findSymbol(ref.Name, unit)
	if entry == nil {
		return 0, &UnknownSymbolError{Name: ref.Name}
	}

	switch e := entry.(type) {
	case *JumpEntry:
		if ref.IndexPrimary != 0 || ref.IndexSecondary != 0 {
			return 0, &SubscriptedJumpError{Name: ref.Name}
		}
		return isa.LargestValue(e.CodeAddressOffset), nil

	case *DataEntry:
		if ref.IndexPrimary >= uint64(e.ElementCount) {
			return 0, &IndexOutOfRangeError{Name: ref.Name, Index: ref.IndexPrimary, Count: e.ElementCount}
		}
		size := t.trait.SizeInBasicUnits(e.BlockSize)
		if ref.IndexSecondary >= uint64(size) {
			return 0, &SubelementIndexError{Name: ref.Name, Index: ref.IndexSecondary, Size: size}
		}
		addr := t.dataBase + e.DataAddressOffset + isa.Address(size)*isa.Address(ref.IndexPrimary) + isa.Address(ref.IndexSecondary)
		return isa.LargestValue(addr), nil

	case *ConstEntry:
		if ref.IndexPrimary >= uint64(len(e.InitValue)) {
			return 0, &IndexOutOfRangeError{Name: ref.Name, Index: ref.IndexPrimary, Count: len(e.InitValue)}
		}
		size := t.trait.SizeInBasicUnits(e.BlockSize)
		if ref.IndexSecondary >= uint64(size) {
			return 0, &SubelementIndexError{Name: ref.Name, Index: ref.IndexSecondary, Size: size}
		}
		// Sub-unit extraction, not sub-unit indexing into a wider
		// backing array: shift the whole init value right by
		// size*IndexSecondary bits. The shift count is the block's
		// basic-unit count times the sub-unit index, not the
		// sub-unit's bit offset.
		return e.InitValue[ref.IndexPrimary] >> (size * uint(ref.IndexSecondary)), nil

	default:
		return 0, &UnknownSymbolError{Name: ref.Name}
	}
}
