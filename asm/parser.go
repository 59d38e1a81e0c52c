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
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

// ErrAsm is the error type returned by Assemble. It holds at most 10 entries.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for k, err := range e {
		if k > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// parser states
const (
	stInstruction = iota // accept anything
	stOperand            // need an operand for the current instruction
	stOrg                // need integer or const for .org
	stEqu                // need integer or const for .equ value
	stDat                // need integer, const or label for .dat
)

type parser struct {
	i       vm.Image
	pc      int
	size    int
	s       scanner.Scanner
	labels  map[string]*label
	consts  map[string]labelSite
	cstName string
	cstPos  scanner.Position
	errs    ErrAsm
	state   int

	// instruction being assembled
	op   vm.Opcode
	opPC int
	argn int
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) errorAt(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, struct {
			Pos scanner.Position
			Msg string
		}{pos, msg})
	}
}

func (p *parser) fail(msg string) {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	p.errorAt(pos, msg)
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.s.Position, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Position, p.pc})
}

func (p *parser) defineLabel(n string) {
	if len(n) == 0 {
		p.fail("Empty label name")
		return
	}
	if cst, ok := p.consts[n]; ok {
		p.fail("Label redefinition: " + n + ", previously defined as a constant here: " + cst.pos.String())
		return
	}
	if l, ok := p.labels[n]; ok {
		if l.address != -1 {
			p.fail("Label redefinition: " + n + ", previous definition here: " + l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = p.s.Position
		return
	}
	p.labels[n] = &label{labelSite{p.s.Position, p.pc}, nil}
}

// number converts s to an integer literal. s can be a Go integer, a Go
// character literal or a defined constant.
func (p *parser) number(s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, _, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil {
			p.fail(err.Error())
			return 0, false
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// value writes a number or a label reference to the current cell.
func (p *parser) value(s string) {
	if v, ok := p.number(s); ok {
		p.write(v)
		return
	}
	if s[0] == ':' || s[0] == '.' || s[0] == '[' {
		p.fail("Unexpected " + s)
		return
	}
	p.useLabel(s)
	p.write(0)
}

func (p *parser) operand(s string) {
	mode := vm.Immediate
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		mode = vm.Position
		s = s[1 : len(s)-1]
		switch {
		case s == "rb":
			mode, s = vm.Relative, "0"
		case strings.HasPrefix(s, "rb+"):
			mode, s = vm.Relative, s[3:]
		case strings.HasPrefix(s, "rb-"):
			mode, s = vm.Relative, "-"+s[3:]
			if _, ok := p.number(s); !ok {
				p.fail("Relative offset must be a number: " + s)
				s = "0"
			}
		}
		if len(s) == 0 {
			p.fail("Missing operand value")
			s = "0"
		}
	}
	if mode == vm.Immediate && isWriteTarget(p.op, p.argn) {
		p.fail("Write target in immediate mode: " + s)
	}
	scale := vm.Cell(100)
	for k := 0; k < p.argn; k++ {
		scale *= 10
	}
	p.i[p.opPC] += vm.Cell(mode) * scale
	p.value(s)
	p.argn++
	if p.argn == p.op.Arity() {
		p.state = stInstruction
	}
}

func (p *parser) instruction(s string) {
	switch s[0] {
	case ':':
		p.defineLabel(s[1:])
		return
	case '.':
		switch s {
		case ".org":
			p.state = stOrg
		case ".dat":
			p.state = stDat
		case ".equ":
			if t := p.s.Scan(); t != scanner.Ident {
				p.fail(".equ: expected identifier, got " + p.s.TokenText())
				return
			}
			p.cstName = p.s.TokenText()
			if l, ok := p.labels[p.cstName]; ok {
				p.fail(".equ: redefinition of " + p.cstName + ", previously defined/used as a label here: " + l.pos.String())
				return
			}
			p.cstPos = p.s.Position
			p.state = stEqu
		default:
			p.fail("Unknown dot directive: " + s)
		}
		return
	}
	if op, ok := opcodeIndex[s]; ok {
		p.op, p.opPC, p.argn = op, p.pc, 0
		p.write(vm.Cell(op))
		if op.Arity() > 0 {
			p.state = stOperand
		}
		return
	}
	// raw data
	p.value(s)
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Image, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.fail(msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.fail("Unexpected character " + strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()
		if s == "(" {
			// skip comments
			for ; tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			continue
		}

		switch p.state {
		case stOperand:
			p.operand(s)
		case stOrg:
			p.state = stInstruction
			v, ok := p.number(s)
			if !ok || v < 0 {
				p.fail(".org: expected a positive integer or constant, got " + s)
				break
			}
			p.pc = int(v)
		case stEqu:
			p.state = stInstruction
			v, ok := p.number(s)
			if !ok {
				p.fail(".equ: expected an integer or constant, got " + s)
				break
			}
			p.consts[p.cstName] = labelSite{p.cstPos, int(v)}
		case stDat:
			p.state = stInstruction
			p.value(s)
		default:
			p.instruction(s)
		}
	}
	if p.state != stInstruction {
		p.fail("Unexpected end of input")
	}

	// write labels
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.errorAt(l.uses[0].pos, "Undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] += vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.i[:p.size], nil
}
