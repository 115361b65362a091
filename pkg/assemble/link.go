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

package assemble

import (
	"github.com/genasmlib/genasm/pkg/isa"
	"github.com/genasmlib/genasm/pkg/symtab"
)

// LinkedUnit names one translation unit's own code and data base
// addresses once every unit given to LinkUnits has been laid out back
// to back, plus its assembled Output. CodeBase is for placing Output's
// Code into a final memory image only: Table.Resolve's jump case
// returns a symbol's bare CodeAddressOffset with no base address added
// (see pkg/symtab), so a jump symbol exported across units still
// resolves relative to its own unit, not the linked whole.
type LinkedUnit struct {
	Name     string
	CodeBase isa.Address
	DataBase isa.Address
	Output   *Output
}

// LinkUnits assembles several named sources as one program sharing a
// single symbol table, so a symbol exported from one unit can be
// referenced from any other. Each unit's code and data are laid out
// back to back in the order given; units[i]'s base addresses equal the
// sum of every earlier unit's code and data sizes.
//
// This is a supplement over a single translation unit's two passes:
// the original tool bound one AddressResolver and one SymbolTable to a
// single source file, but nothing about either type is actually
// single-unit-only, so multiple sources can share one table exactly as
// the table's TranslationUnit/IsExport visibility rules already
// anticipate.
func LinkUnits(trait isa.Trait, sources map[string]*Unit, order []string) ([]LinkedUnit, error) {
	table := symtab.New(trait)

	var codeBase, dataBase isa.Address
	bases := make(map[string][2]isa.Address, len(order))

	for id, name := range order {
		u, ok := sources[name]
		if !ok {
			return nil, &UnknownUnitError{Name: name}
		}

		r, err := PassOne(table, trait, id, u)
		if err != nil {
			return nil, err
		}

		bases[name] = [2]isa.Address{codeBase, dataBase}

		codeBase += r.CodeAddressOffset()
		dataBase += r.DataAddressOffset()
	}

	// Table.Resolve's arithmetic adds a single table-wide dataBase to
	// every data symbol's within-unit offset (see pkg/symtab), so a
	// linked program needs each unit's own data to start where the
	// previous unit's ended. SetBaseAddress only accepts one pair, so
	// per-unit base accounting happens here, above the table.
	var out []LinkedUnit
	for id, name := range order {
		u := sources[name]
		base := bases[name]

		table.SetBaseAddress(0, base[1])
		output, err := PassTwo(table, trait, id, u)
		if err != nil {
			return nil, err
		}

		out = append(out, LinkedUnit{
			Name:     name,
			CodeBase: base[0],
			DataBase: base[1],
			Output:   output,
		})
	}

	return out, nil
}

// UnknownUnitError reports a name in LinkUnits' order slice with no
// corresponding entry in its sources map.
type UnknownUnitError struct{ Name string }

func (e *UnknownUnitError) Error() string { return "assemble: unknown translation unit: " + e.Name }
