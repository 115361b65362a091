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

// Package reader provides the line-oriented source reader the tokenizer
// pulls translation units from. Every line is case-folded to lowercase on
// the way in, including any text that happens to sit inside a quoted
// literal — assembly source is treated as case-insensitive end to end, and
// preserving that fold rather than special-casing quotes keeps behavior
// consistent with the rest of the front end.
package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// NotAFileError reports that a path passed to Open does not name a
// regular file.
type NotAFileError struct {
	Path string
}

func (e *NotAFileError) Error() string {
	return fmt.Sprintf("not a regular file: %s", e.Path)
}

// Reader pulls case-folded lines from a source, tracking a
// (name, line number) identity for every line it hands out.
type Reader struct {
	name    string
	scanner *bufio.Scanner
	closer  io.Closer
	line    uint64
	atEOF   bool
}

// Open validates that path names a regular file and returns a Reader over
// its contents.
func Open(path string) (*Reader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, &NotAFileError{Path: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return &Reader{
		name:    path,
		scanner: bufio.NewScanner(f),
		closer:  f,
	}, nil
}

// New wraps an arbitrary io.Reader (e.g. stdin) as a Reader identified by
// name.
func New(name string, r io.Reader) *Reader {
	return &Reader{name: name, scanner: bufio.NewScanner(r)}
}

// Read returns the next line, folded to lowercase, and advances the line
// counter. It returns io.EOF once the source is exhausted.
func (r *Reader) Read() (string, error) {
	if r.atEOF {
		return "", io.EOF
	}
	if !r.scanner.Scan() {
		r.atEOF = true
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	r.line++
	return foldCase(r.scanner.Text()), nil
}

func foldCase(line string) string {
	out := make([]byte, len(line))
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch >= 'A' && ch <= 'Z' {
			ch = ch - 'A' + 'a'
		}
		out[i] = ch
	}
	return string(out)
}

// Eof reports whether a Read has reached the end of the source. It stays
// false after the last line is returned, until a Read returns io.EOF or
// a read error.
func (r *Reader) Eof() bool {
	return r.atEOF
}

// Id returns the reader's source name and the number of the last line
// returned by Read.
func (r *Reader) Id() (string, uint64) {
	return r.name, r.line
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
