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

package symtab_test

import (
	"testing"

	"github.com/genasmlib/genasm/pkg/encode"
	"github.com/genasmlib/genasm/pkg/isa"
	"github.com/genasmlib/genasm/pkg/resolve"
	"github.com/genasmlib/genasm/pkg/symtab"
	"github.com/genasmlib/genasm/pkg/token"
)

type fixedTrait struct{}

func (fixedTrait) ResolveSize(string) (isa.BlockSizeCode, error)    { return 2, nil }
func (fixedTrait) ResolveRegister(string) (isa.RegisterCode, error) { return 0, nil }
func (fixedTrait) ResolveModifier(string) (isa.ModifierCode, error) { return 0, nil }
func (fixedTrait) IsModifier(string) bool                           { return false }
func (fixedTrait) ResolveOpCode(string) (isa.OpCode, error)         { return 0, nil }
func (fixedTrait) InstructionName(isa.OpCode) (string, error)       { return "add", nil }
func (fixedTrait) SizeInBasicUnits(isa.BlockSizeCode) uint          { return 2 }
func (fixedTrait) InstructionWidthInBasicUnits(isa.OpCode) uint     { return 1 }
func (fixedTrait) FieldSchedule(isa.OpCode) []encode.Field          { return nil }

func TestAddAndResolveJumpSymbol(t *testing.T) {
	trait := fixedTrait{}
	r := resolve.New(trait)
	table := symtab.New(trait)

	r.UpdateInstruction(token.InstructionToken{})
	if err := table.Add(0, token.SymbolToken{Name: "loop", Type: token.Jump}, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, err := table.Resolve(0, token.SymbolRef{Name: "loop"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 1 {
		t.Fatalf("want resolved address 1, have %d", val)
	}
}

func TestResolveJumpRejectsSubscript(t *testing.T) {
	trait := fixedTrait{}
	r := resolve.New(trait)
	table := symtab.New(trait)

	if err := table.Add(0, token.SymbolToken{Name: "loop", Type: token.Jump}, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := table.Resolve(0, token.SymbolRef{Name: "loop", IndexPrimary: 1}); err == nil {
		t.Fatal("expected subscripted-jump error")
	}
}

func TestAddAndResolveDataSymbol(t *testing.T) {
	trait := fixedTrait{}
	r := resolve.New(trait)
	table := symtab.New(trait)
	table.SetBaseAddress(0, 100)

	if err := table.Add(0, token.SymbolToken{
		Name: "buf", Type: token.Data, BlockSize: 2,
		InitValue: make([]isa.LargestValue, 3),
	}, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.UpdateSymbol(token.SymbolToken{Type: token.Data, BlockSize: 2, InitValue: make([]isa.LargestValue, 3)})

	if err := table.Add(0, token.SymbolToken{
		Name: "next", Type: token.Data, BlockSize: 2,
		InitValue: make([]isa.LargestValue, 1),
	}, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, err := table.Resolve(0, token.SymbolRef{Name: "next", IndexPrimary: 0, IndexSecondary: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// base 100 + offset 6 (three 2-wide elements already consumed) + size*0 + 1
	if val != 107 {
		t.Fatalf("want 107, have %d", val)
	}
}

func TestResolveDataIndexOutOfRange(t *testing.T) {
	trait := fixedTrait{}
	r := resolve.New(trait)
	table := symtab.New(trait)

	if err := table.Add(0, token.SymbolToken{
		Name: "buf", Type: token.Data, BlockSize: 2,
		InitValue: make([]isa.LargestValue, 2),
	}, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := table.Resolve(0, token.SymbolRef{Name: "buf", IndexPrimary: 5}); err == nil {
		t.Fatal("expected index-out-of-range error")
	}
}

func TestResolveConstSubUnitShift(t *testing.T) {
	trait := fixedTrait{}
	r := resolve.New(trait)
	table := symtab.New(trait)

	if err := table.Add(0, token.SymbolToken{
		Name: "k", Type: token.Const, BlockSize: 2,
		InitValue: []isa.LargestValue{0xabcd},
	}, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, err := table.Resolve(0, token.SymbolRef{Name: "k", IndexPrimary: 0, IndexSecondary: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// size (2) * subIndex (1) = 2 bit shift
	if want := isa.LargestValue(0xabcd >> 2); val != want {
		t.Fatalf("want %#x, have %#x", want, val)
	}
}

func TestSameUnitRedefinitionRejected(t *testing.T) {
	trait := fixedTrait{}
	r := resolve.New(trait)
	table := symtab.New(trait)

	if err := table.Add(0, token.SymbolToken{Name: "loop", Type: token.Jump}, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := table.Add(0, token.SymbolToken{Name: "loop", Type: token.Jump}, r)
	if err == nil {
		t.Fatal("expected redefinition error")
	}
	if _, ok := err.(*symtab.SymbolRedefinedError); !ok {
		t.Fatalf("want *SymbolRedefinedError, have %T", err)
	}
}

func TestExportCollisionAcrossUnits(t *testing.T) {
	trait := fixedTrait{}
	r := resolve.New(trait)
	table := symtab.New(trait)

	if err := table.Add(0, token.SymbolToken{Name: "shared", Type: token.Jump, IsExport: true}, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := table.Add(1, token.SymbolToken{Name: "shared", Type: token.Jump}, r)
	if err == nil {
		t.Fatal("expected export collision error")
	}
	if _, ok := err.(*symtab.ExportCollisionError); !ok {
		t.Fatalf("want *ExportCollisionError, have %T", err)
	}
}

func TestSameNameDifferentUnitsNoExportIsVisibleOnlyLocally(t *testing.T) {
	trait := fixedTrait{}
	r := resolve.New(trait)
	table := symtab.New(trait)

	if err := table.Add(0, token.SymbolToken{Name: "local", Type: token.Jump}, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := table.Resolve(1, token.SymbolRef{Name: "local"}); err == nil {
		t.Fatal("expected unit 1 to not see unit 0's non-exported symbol")
	}
}

func TestUnknownSymbolResolve(t *testing.T) {
	trait := fixedTrait{}
	table := symtab.New(trait)
	if _, err := table.Resolve(0, token.SymbolRef{Name: "ghost"}); err == nil {
		t.Fatal("expected unknown symbol error")
	}
}
