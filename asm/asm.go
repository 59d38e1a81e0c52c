// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/db47h/intcode/vm"
)

// mnemonics and aliases. The first entry is the one used by the disassembler
// and matches vm.Opcode.String.
var opcodes = map[vm.Opcode][]string{
	vm.OpAdd:         {"add"},
	vm.OpMul:         {"mul"},
	vm.OpIn:          {"in", "inp"},
	vm.OpOut:         {"out"},
	vm.OpJumpIfTrue:  {"jt", "jnz"},
	vm.OpJumpIfFalse: {"jf", "jz"},
	vm.OpLessThan:    {"lt"},
	vm.OpEquals:      {"eq"},
	vm.OpAdjustBase:  {"arb", "rbo"},
	vm.OpHalt:        {"hlt", "halt"},
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for op, names := range opcodes {
		for _, n := range names {
			opcodeIndex[n] = op
		}
	}
}

// isWriteTarget returns true if operand k of op is a write target.
func isWriteTarget(op vm.Opcode, k int) bool {
	switch op {
	case vm.OpIn:
		return k == 0
	case vm.OpAdd, vm.OpMul, vm.OpLessThan, vm.OpEquals:
		return k == 2
	}
	return false
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (img vm.Image, err error) {
	p := newParser()
	img, err = p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func writeOperand(w io.Writer, m vm.Mode, v vm.Cell) {
	s := strconv.FormatInt(int64(v), 10)
	switch m {
	case vm.Immediate:
		io.WriteString(w, s)
	case vm.Relative:
		if v < 0 {
			io.WriteString(w, "[rb"+s+"]")
		} else {
			io.WriteString(w, "[rb+"+s+"]")
		}
	default:
		io.WriteString(w, "["+s+"]")
	}
}

// Disassemble writes a disassembly of the cells in the given slice at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not hold a valid instruction are written as a .dat directive.
func Disassemble(img []vm.Cell, pc int, w io.Writer) (next int, err error) {
	ew := ici.NewErrWriter(w)

	word := img[pc]
	in, err := vm.Decode(word)
	valid := err == nil && pc+in.Len() <= len(img)
	// only list instructions that assemble back to the same word
	canon, scale := vm.Cell(in.Op), vm.Cell(100)
	for k := 0; valid && k < in.Op.Arity(); k++ {
		if in.Modes[k] == vm.Immediate && isWriteTarget(in.Op, k) {
			valid = false
		}
		canon += vm.Cell(in.Modes[k]) * scale
		scale *= 10
	}
	if canon != word {
		valid = false
	}
	if !valid {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(word), 10))
		return pc + 1, ew.Err
	}

	io.WriteString(ew, in.Op.String())
	for k := 0; k < in.Op.Arity(); k++ {
		ew.Write([]byte{' '})
		writeOperand(ew, in.Modes[k], img[pc+1+k])
	}
	return pc + in.Len(), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// frist cell (i[0]). It will return any write error.
func DisassembleAll(img []vm.Cell, base int, w io.Writer) error {
	ew := ici.NewErrWriter(w)
	for pc := 0; pc < len(img); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(img, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
