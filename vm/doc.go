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

// Package vm implements an Intcode Virtual Machine.
//
// Intcode programs are flat sequences of integers. Each instruction word
// holds an opcode in its two least significant decimal digits and, above
// those, one addressing mode digit per operand:
//
//	opcode	asm	operands	description
//	------	---	--------	---------------------------------------------
//	1	add	a b dst		dst = a + b
//	2	mul	a b dst		dst = a * b
//	3	in	dst		pop the input queue into dst
//	4	out	src		push src to the output queue
//	5	jt	c t		jump to t if c != 0
//	6	jf	c t		jump to t if c == 0
//	7	lt	a b dst		dst = 1 if a < b, else 0
//	8	eq	a b dst		dst = 1 if a == b, else 0
//	9	arb	d		add d to the relative base
//	99	hlt			halt
//
// Addressing modes are 0 (position: the operand is an address), 1
// (immediate: the operand is a literal) and 2 (relative: the operand is an
// offset from the relative base). For example, 1002 is a mul whose second
// operand is immediate.
//
// Memory grows on demand and is zero filled, so programs can use addresses
// beyond the end of their image, up to a configurable limit (see MemLimit).
//
// An input instruction executed while the input queue is empty does not fail:
// Run returns Suspended and leaves the VM state untouched so that the same
// instruction is retried when Run is called again after pushing more input.
// This makes it easy to chain several instances together, see package
// github.com/db47h/intcode/amp.
//
// Any other abnormal condition (unknown opcode or addressing mode, immediate
// write target, negative or out of range address, negative relative base) is
// a fatal error: Run returns it and the PC points to the faulting instruction.
package vm
