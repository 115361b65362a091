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

package lex_test

import (
	"testing"

	"github.com/genasmlib/genasm/pkg/lex"
)

func TestStripWhitespace(t *testing.T) {
	cases := []struct{ Input, Want string }{
		{"  hello  ", "hello"},
		{"\t\nfoo\r", "foo"},
		{"noedges", "noedges"},
		{"   ", ""},
	}

	for _, c := range cases {
		if have := lex.StripWhitespace(c.Input); have != c.Want {
			t.Fatalf("StripWhitespace(%q): want %q, have %q", c.Input, c.Want, have)
		}
	}
}

func TestAdvanceOverWhitespace(t *testing.T) {
	cases := []struct {
		Line   string
		Offset int
		Want   int
	}{
		{"counter: .export .data ...", 8, 9},
		{"  foo", 0, 2},
		{"foo", 0, 0},
		{"foo   ", 3, -1},
		{"", 0, -1},
	}

	for _, c := range cases {
		if have := lex.AdvanceOverWhitespace(c.Line, c.Offset); have != c.Want {
			t.Fatalf("AdvanceOverWhitespace(%q, %d): want %d, have %d", c.Line, c.Offset, c.Want, have)
		}
	}
}

func TestStripCommentsAndWhitespace(t *testing.T) {
	cases := []struct{ Input, Want string }{
		{"  add r0, r1  ; comment here", "add r0, r1"},
		{"; only a comment", ""},
		{"no comment", "no comment"},
	}

	for _, c := range cases {
		if have := lex.StripCommentsAndWhitespace(c.Input, ';'); have != c.Want {
			t.Fatalf("StripCommentsAndWhitespace(%q): want %q, have %q", c.Input, c.Want, have)
		}
	}
}

func TestSplitOnDelimiterList(t *testing.T) {
	have := lex.SplitOnDelimiterList("hello uo, awr; asdf; asda, sad , asd a , a", []byte{' ', ',', ';', ','})
	want := []string{"hello", "uo", " awr", " asdf; asda", " sad ", " asd a ", " a"}

	if len(have) != len(want) {
		t.Fatalf("want %d fields, have %d (%q)", len(want), len(have), have)
	}
	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("field %d: want %q, have %q", i, want[i], have[i])
		}
	}
}

func TestConvertNumberString(t *testing.T) {
	cases := []struct {
		Input string
		Want  uint64
	}{
		{"0", 0},
		{"10", 10},
		{"0x1F", 0x1f},
		{"0b101", 0b101},
		{"017", 0o17},
		{"-1", 0xffff},
	}

	for _, c := range cases {
		have, err := lex.ConvertNumberString(c.Input, 16)
		if err != nil {
			t.Fatalf("ConvertNumberString(%q): unexpected error: %v", c.Input, err)
		}
		if have != c.Want {
			t.Fatalf("ConvertNumberString(%q): want %#x, have %#x", c.Input, c.Want, have)
		}
	}
}

func TestConvertNumberStringInvalid(t *testing.T) {
	cases := []string{"", "-", "0xZZ", "0b2", "09"}

	for _, in := range cases {
		if _, err := lex.ConvertNumberString(in, 16); err == nil {
			t.Fatalf("ConvertNumberString(%q): expected error, got none", in)
		}
	}
}

func TestConvertEscapedString(t *testing.T) {
	cases := []struct {
		Input string
		Want  byte
	}{
		{`\n`, '\n'},
		{`\t`, '\t'},
		{`\\`, '\\'},
		{`\x41`, 'A'},
		{`\o101`, 'A'},
		{`\65`, 'A'},
	}

	for _, c := range cases {
		have, err := lex.ConvertEscapedString(c.Input)
		if err != nil {
			t.Fatalf("ConvertEscapedString(%q): unexpected error: %v", c.Input, err)
		}
		if have != c.Want {
			t.Fatalf("ConvertEscapedString(%q): want %q, have %q", c.Input, c.Want, have)
		}
	}
}

func TestAdvanceOverText(t *testing.T) {
	ch, escaped, next, err := lex.AdvanceOverText(`\x41rest`, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch != 'A' || !escaped || next != 4 {
		t.Fatalf("want ('A', true, 4), have (%q, %v, %d)", ch, escaped, next)
	}
}

func TestAdvanceSkipQuoted(t *testing.T) {
	// Mirrors the reference behavior: quoted runs are treated as
	// invisible when scanning for structural characters.
	s := `hello"asd""asd"aa'a'`

	pos := 0
	var out []byte
	for pos < len(s) {
		ch, _, next, ok, err := lex.AdvanceSkipQuoted(s, pos)
		if err != nil {
			t.Fatalf("unexpected error at %d: %v", pos, err)
		}
		if !ok {
			break
		}
		out = append(out, ch)
		pos = next
	}

	if string(out) != "helloaa" {
		t.Fatalf("want %q, have %q", "helloaa", string(out))
	}
}

func TestIsExactSubstr(t *testing.T) {
	if !lex.IsExactSubstr("hello world", "world", 6) {
		t.Fatal("expected match at offset 6")
	}
	if lex.IsExactSubstr("hello world", "world", 100) {
		t.Fatal("expected no match past end of string")
	}
}
