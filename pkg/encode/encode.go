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

// Package encode implements the bit-field packed instruction encoding: a
// fixed-width bit vector addressed by (offset, size) fields, with
// overlapping fields resolved last-write-wins.
package encode

import (
	"fmt"
	"math/bits"

	"github.com/genasmlib/genasm/pkg/numeric"
)

// Field describes one bit field within an Instruction: size bits starting
// at offset, offset zero being the least significant bit.
type Field struct {
	Offset int
	Size   int
}

// FieldArityMismatchError reports a call to Load where the number of
// fields does not match the number of values supplied.
type FieldArityMismatchError struct {
	Fields int
	Values int
}

func (e *FieldArityMismatchError) Error() string {
	return fmt.Sprintf("field/value count mismatch: %d fields, %d values", e.Fields, e.Values)
}

// FieldOutOfRangeError reports a field whose offset+size does not fit
// within the instruction's declared width.
type FieldOutOfRangeError struct {
	Field Field
	Width int
}

func (e *FieldOutOfRangeError) Error() string {
	return fmt.Sprintf("field %+v does not fit within a %d bit instruction", e.Field, e.Width)
}

// Instruction is a fixed-width bit vector built up field by field.
// Widths beyond 64 bits are represented as multiple 64-bit limbs,
// little-limb-first.
type Instruction struct {
	width int
	limbs []uint64
}

// New returns a zeroed Instruction of the given bit width.
func New(width int) *Instruction {
	return &Instruction{
		width: width,
		limbs: make([]uint64, numeric.DivideRoundUp(uint64(width), 64)),
	}
}

// Width returns the instruction's bit width.
func (ins *Instruction) Width() int { return ins.width }

// Load writes each value into its corresponding field, masked to the
// field's size. Fields are applied in order, so overlapping fields have
// their bits resolved by the later field in the slice (last write wins).
func (ins *Instruction) Load(fields []Field, values []uint64) error {
	if len(fields) != len(values) {
		return &FieldArityMismatchError{Fields: len(fields), Values: len(values)}
	}

	for i, f := range fields {
		if f.Offset < 0 || f.Size < 0 || f.Offset+f.Size > ins.width {
			return &FieldOutOfRangeError{Field: f, Width: ins.width}
		}
		ins.setField(f, values[i]&numeric.NBitMask(uint(f.Size)))
	}

	return nil
}

func (ins *Instruction) setField(f Field, value uint64) {
	clearBits(ins.limbs, f.Offset, f.Size)

	remaining := f.Size
	bitOffset := f.Offset
	v := value

	for remaining > 0 {
		limbIdx := bitOffset / 64
		bitInLimb := bitOffset % 64
		take := 64 - bitInLimb
		if take > remaining {
			take = remaining
		}

		chunk := v & ((uint64(1) << take) - 1)
		ins.limbs[limbIdx] |= chunk << bitInLimb

		v >>= take
		bitOffset += take
		remaining -= take
	}
}

func clearBits(limbs []uint64, offset, size int) {
	remaining := size
	bitOffset := offset

	for remaining > 0 {
		limbIdx := bitOffset / 64
		bitInLimb := bitOffset % 64
		take := 64 - bitInLimb
		if take > remaining {
			take = remaining
		}

		mask := ((uint64(1) << take) - 1) << bitInLimb
		limbs[limbIdx] &^= mask

		bitOffset += take
		remaining -= take
	}
}

// Access reads size bits starting at offset and returns them as a
// right-justified value. size must be no greater than 64.
func (ins *Instruction) Access(offset, size int) (uint64, error) {
	if offset < 0 || size < 0 || offset+size > ins.width {
		return 0, &FieldOutOfRangeError{Field: Field{Offset: offset, Size: size}, Width: ins.width}
	}
	if size > 64 {
		return 0, fmt.Errorf("encode: Access size %d exceeds 64 bits", size)
	}

	var ret uint64
	remaining := size
	bitOffset := offset
	shift := 0

	for remaining > 0 {
		limbIdx := bitOffset / 64
		bitInLimb := bitOffset % 64
		take := 64 - bitInLimb
		if take > remaining {
			take = remaining
		}

		chunk := (ins.limbs[limbIdx] >> bitInLimb) & ((uint64(1) << take) - 1)
		ret |= chunk << shift

		shift += take
		bitOffset += take
		remaining -= take
	}

	return ret, nil
}

// Data returns the raw limbs backing the instruction, least significant
// limb first.
func (ins *Instruction) Data() []uint64 {
	return ins.limbs
}

// Bytes packs the instruction's bits into little-endian bytes, padded up
// to a whole number of bytes.
func (ins *Instruction) Bytes() []byte {
	nbytes := numeric.DivideRoundUp(uint64(ins.width), 8)
	out := make([]byte, nbytes)

	for i := range out {
		bitOffset := i * 8
		limb := ins.limbs[bitOffset/64]
		out[i] = byte(limb >> (bitOffset % 64))
	}

	return out
}

// PopCount returns the number of set bits across the instruction.
func (ins *Instruction) PopCount() int {
	count := 0
	for _, limb := range ins.limbs {
		count += bits.OnesCount64(limb)
	}
	return count
}
