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

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxOperands]Mode
}

// Len returns the size of the instruction in cells, opcode included.
func (in Instruction) Len() int {
	return 1 + in.Op.Arity()
}

// Decode splits an instruction word into its opcode and the addressing modes
// of its operands. Mode digits beyond the opcode's arity are ignored.
func Decode(word Cell) (Instruction, error) {
	op := Opcode(word % 100)
	if !op.Valid() {
		return Instruction{}, &DecodeError{word, "unknown opcode " + strconv.Itoa(int(op))}
	}
	in := Instruction{Op: op}
	m := word / 100
	for k := 0; k < op.Arity(); k++ {
		mode := Mode(m % 10)
		if mode < Position || mode > Relative {
			return Instruction{}, &DecodeError{word, "unknown addressing mode " + strconv.Itoa(int(mode))}
		}
		in.Modes[k] = mode
		m /= 10
	}
	return in, nil
}

// Operand is an instruction operand as fetched from memory.
type Operand struct {
	Mode  Mode
	Value Cell
}

// view is a read-only view of the VM state used to resolve operands.
type view struct {
	mem *Memory
	rb  Cell
}

// value resolves o for reading.
func (v view) value(o Operand) Cell {
	switch o.Mode {
	case Immediate:
		return o.Value
	case Relative:
		return v.mem.Read(v.rb + o.Value)
	default:
		return v.mem.Read(o.Value)
	}
}

// address resolves o as a write target.
func (v view) address(o Operand) (Cell, error) {
	var addr Cell
	switch o.Mode {
	case Immediate:
		return 0, ErrImmediateWrite
	case Relative:
		addr = v.rb + o.Value
	default:
		addr = o.Value
	}
	if addr < 0 || addr >= Cell(v.mem.limit) {
		return 0, &AddressError{addr}
	}
	return addr, nil
}
