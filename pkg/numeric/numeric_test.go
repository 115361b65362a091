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

package numeric_test

import (
	"testing"

	"github.com/genasmlib/genasm/pkg/numeric"
)

func TestNBitMask(t *testing.T) {
	cases := []struct {
		Name string
		Size uint
		Want uint64
	}{
		{"zero", 0, 0},
		{"one", 1, 0x1},
		{"byte", 8, 0xff},
		{"word", 16, 0xffff},
		{"full", 64, 0xffffffffffffffff},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			if have := numeric.NBitMask(c.Size); have != c.Want {
				t.Fatalf("NBitMask(%d): want %#x, have %#x", c.Size, c.Want, have)
			}
		})
	}
}

func TestCeilLog2(t *testing.T) {
	cases := []struct {
		Val  uint64
		Want uint
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{1024, 10},
	}

	for _, c := range cases {
		if have := numeric.CeilLog2(c.Val); have != c.Want {
			t.Fatalf("CeilLog2(%d): want %d, have %d", c.Val, c.Want, have)
		}
	}
}

func TestDivideRoundUp(t *testing.T) {
	cases := []struct {
		Num, Den uint64
		Want     uint64
	}{
		{10, 5, 2},
		{11, 5, 3},
		{1, 8, 1},
		{16, 8, 2},
	}

	for _, c := range cases {
		if have := numeric.DivideRoundUp(c.Num, c.Den); have != c.Want {
			t.Fatalf("DivideRoundUp(%d,%d): want %d, have %d", c.Num, c.Den, c.Want, have)
		}
	}
}

func TestAddCheckOverflow(t *testing.T) {
	var sum uint64 = 0xfe
	if overflow := numeric.AddCheckOverflow(&sum, 1, false, 0xff); overflow {
		t.Fatalf("unexpected overflow, sum=%#x", sum)
	}
	if sum != 0xff {
		t.Fatalf("want sum 0xff, have %#x", sum)
	}

	if overflow := numeric.AddCheckOverflow(&sum, 1, false, 0xff); !overflow {
		t.Fatalf("expected overflow, sum=%#x", sum)
	}
}

func TestSplitInteger(t *testing.T) {
	have := numeric.SplitInteger(0x1234, 16, 8)
	want := []uint64{0x34, 0x12}

	if len(have) != len(want) {
		t.Fatalf("want %d pieces, have %d", len(want), len(have))
	}

	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("piece %d: want %#x, have %#x", i, want[i], have[i])
		}
	}
}

func TestMinMaxUint64(t *testing.T) {
	data := []uint64{5, 1, 9, 3}

	if have := numeric.MinUint64(data); have != 1 {
		t.Fatalf("MinUint64: want 1, have %d", have)
	}
	if have := numeric.MaxUint64(data); have != 9 {
		t.Fatalf("MaxUint64: want 9, have %d", have)
	}
}
