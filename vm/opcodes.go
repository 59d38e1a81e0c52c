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

package vm

import "strconv"

// Opcode is the operation part of an instruction word, i.e. its two least
// significant decimal digits.
type Opcode Cell

// Intcode Virtual Machine Opcodes.
const (
	OpAdd Opcode = iota + 1
	OpMul
	OpIn
	OpOut
	OpJumpIfTrue
	OpJumpIfFalse
	OpLessThan
	OpEquals
	OpAdjustBase
	OpHalt Opcode = 99
)

type opInfo struct {
	name  string
	arity int
}

var opcodes = map[Opcode]opInfo{
	OpAdd:         {"add", 3},
	OpMul:         {"mul", 3},
	OpIn:          {"in", 1},
	OpOut:         {"out", 1},
	OpJumpIfTrue:  {"jt", 2},
	OpJumpIfFalse: {"jf", 2},
	OpLessThan:    {"lt", 3},
	OpEquals:      {"eq", 3},
	OpAdjustBase:  {"arb", 1},
	OpHalt:        {"hlt", 0},
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Arity returns the number of operands expected by op. It returns 0 for
// unknown opcodes.
func (op Opcode) Arity() int {
	return opcodes[op].arity
}

// String returns the assembler mnemonic for op.
func (op Opcode) String() string {
	if o, ok := opcodes[op]; ok {
		return o.name
	}
	return "op" + strconv.Itoa(int(op))
}

// Mode is an operand addressing mode.
type Mode Cell

// Addressing modes.
const (
	Position  Mode = iota // operand is an address
	Immediate             // operand is a literal
	Relative              // operand is an offset from the relative base
)

var modes = [...]string{"position", "immediate", "relative"}

func (m Mode) String() string {
	if m >= Position && m <= Relative {
		return modes[m]
	}
	return "mode" + strconv.Itoa(int(m))
}

// MaxOperands is the largest arity of any opcode.
const MaxOperands = 3
