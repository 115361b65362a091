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

package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/genasmlib/genasm/pkg/assemble"
	"github.com/genasmlib/genasm/pkg/isa/risc16"
	"github.com/genasmlib/genasm/pkg/symtab"
)

var helpvar bool
var outvar string

const usage = "genasm-asm [-out outfile] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.StringVar(
		&outvar, "out", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	flag.Parse()
}

func genasmAsm() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	var name string
	var input io.Reader

	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 {
		input = os.Stdin
		name = "<stdin>"
		log.SetPrefix("\033[1m<stdin>:\033[0m")

		if outvar == "" {
			outvar = "out.bin"
		}
	} else {
		if len(args) != 1 {
			log.Println(usage)
			return 1
		}

		file, err := os.Open(args[0])
		if err != nil {
			log.Println(err)
			return 1
		}
		defer file.Close()

		if stat, err := file.Stat(); err != nil {
			log.Println(err)
			return 1
		} else if stat.IsDir() {
			log.Printf("%s is not a valid source file", file.Name())
			return 1
		}

		input = file
		name = filepath.Base(file.Name())
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m", name))

		if outvar == "" {
			outvar = strings.ReplaceAll(name, filepath.Ext(name), ".bin")
		}
	}

	trait := risc16.Trait{}

	unit, err := assemble.Read(trait, name, input)
	if err != nil {
		log.Println(err)
		return 1
	}

	table := symtab.New(trait)
	if _, err := assemble.PassOne(table, trait, 0, unit); err != nil {
		log.Println(err)
		return 1
	}

	out, err := assemble.PassTwo(table, trait, 0, unit)
	if err != nil {
		log.Println(err)
		return 1
	}

	buffer := new(bytes.Buffer)
	for _, ins := range out.Code {
		if _, err := buffer.Write(ins.Bytes()); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}
	}
	for _, val := range out.Data {
		if err := binary.Write(buffer, binary.BigEndian, uint16(val)); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}
	}

	if err := os.WriteFile(outvar, buffer.Bytes(), 0666); err != nil {
		log.Println("Error writing output file")
		log.Println(err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(genasmAsm())
}
