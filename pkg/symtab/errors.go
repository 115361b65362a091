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

import "fmt"

// SymbolRedefinedError reports a second definition of the same symbol
// name within one translation unit.
type SymbolRedefinedError struct {
	Name string
}

func (e *SymbolRedefinedError) Error() string {
	return fmt.Sprintf("symbol %q redefined in the same translation unit", e.Name)
}

// ExportCollisionError reports a symbol name that collides with an
// export already visible from another translation unit.
type ExportCollisionError struct {
	Name string
}

func (e *ExportCollisionError) Error() string {
	return fmt.Sprintf("symbol %q collides with an existing export", e.Name)
}

// UnknownSymbolError reports a reference to a symbol name with no
// visible definition.
type UnknownSymbolError struct {
	Name string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q", e.Name)
}

// SubscriptedJumpError reports a jump symbol referenced with a
// non-zero array subscript; jump symbols name a single address and
// cannot be indexed.
type SubscriptedJumpError struct {
	Name string
}

func (e *SubscriptedJumpError) Error() string {
	return fmt.Sprintf("jump symbol %q cannot be subscripted", e.Name)
}

// IndexOutOfRangeError reports a primary array subscript beyond a
// symbol's element count.
type IndexOutOfRangeError struct {
	Name  string
	Index uint64
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("symbol %q index %d out of range (have %d elements)", e.Name, e.Index, e.Count)
}

// SubelementIndexError reports a secondary array subscript beyond the
// basic-unit width of a symbol's block size.
type SubelementIndexError struct {
	Name  string
	Index uint64
	Size  uint
}

func (e *SubelementIndexError) Error() string {
	return fmt.Sprintf("symbol %q sub-element index %d out of range (element is %d units wide)", e.Name, e.Index, e.Size)
}
