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

// Package asm provides utility functions to assemble and disassemble Intcode
// VM code.
//
// Supported assembler mnemonics:
//
//	opcode	asm		operands	description
//	------	---		--------	---------------------------------
//	1	add		a b dst		dst = a + b
//	2	mul		a b dst		dst = a * b
//	3	in, inp		dst		read input into dst
//	4	out		src		write src to output
//	5	jt, jnz		c t		jump to t if c != 0
//	6	jf, jz		c t		jump to t if c == 0
//	7	lt		a b dst		dst = 1 if a < b, else 0
//	8	eq		a b dst		dst = 1 if a == b, else 0
//	9	arb, rbo	d		add d to the relative base
//	99	hlt, halt			halt
//
// Operands:
//
// The addressing mode of an operand is given by its syntax:
//
//	42		immediate: the literal value 42
//	[42]		position: the value at address 42
//	[rb+42]		relative: the value at address relative base + 42
//	[rb-2]		relative, negative offset
//	[rb]		relative, same as [rb+0]
//
// No white space is allowed within brackets. Write targets (dst above) cannot
// be immediate operands.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not, the parser will see a label named "(this" )
//
// Literals, labels and constants:
//
// Input is split at white space into tokens. A token that can be converted
// to a Go integer (see strconv.ParseInt), a Go character literal between
// single quotes or the name of a defined constant is an integer literal. Any
// other token where a value is expected is a reference to a label. Labels
// are defined by prefixing them with a colon and can be used anywhere an
// integer literal is expected, including within brackets:
//
//	:loop	in [buf]
//		out [buf]
//		jt 1 loop	( jump to the address of loop )
//	:buf	.dat 0
//
// Relative offsets with a minus sign must be integer literals.
//
// Where an instruction is expected, literals and label references are
// compiled as raw data, i.e. "42" is the same as ".dat 42".
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named
// constant or character literal.
//
//	.org <value>
//
// will place the next instruction at the address specified by the given integer
// literal or named constant. Skipped cells are zero.
//
//	.dat <value>
//
// will compile the specified integer value, named constant, character literal
// or label address as-is.
package asm
