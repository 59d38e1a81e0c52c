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

import "github.com/pkg/errors"

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// fault converts memory access panics into errors.
func (i *Instance) fault(st *Status, err *error) {
	if e := recover(); e != nil {
		ae, ok := e.(*AddressError)
		if !ok {
			panic(e)
		}
		*st, *err = i.status, errors.Wrapf(ae, "pc %d", i.PC)
	}
}

// Run starts or resumes execution of the VM until it either halts or needs
// input that is not available yet.
//
// When Run returns Suspended, the PC points to the input instruction that
// could not complete; nothing else has changed. Push some input and call Run
// again to resume. Once Halted, further calls to Run return Halted
// immediately.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error and the returned status is meaningless.
func (i *Instance) Run() (st Status, err error) {
	defer i.fault(&st, &err)
	if i.status == Suspended {
		i.log.Debug("resume", "pc", i.PC, "rb", i.rb, "input", i.in.Len())
	}
	for {
		if st, err = i.step(); err != nil || st != Running {
			return st, err
		}
	}
}

// Step executes a single instruction and returns the resulting status.
func (i *Instance) Step() (st Status, err error) {
	defer i.fault(&st, &err)
	return i.step()
}

func (i *Instance) step() (Status, error) {
	pc := i.PC
	in, err := Decode(i.Mem.Read(Cell(pc)))
	if err != nil {
		return i.status, errors.Wrapf(err, "pc %d", pc)
	}
	var ops [MaxOperands]Operand
	for k := 0; k < in.Op.Arity(); k++ {
		ops[k] = Operand{in.Modes[k], i.Mem.Read(Cell(pc + 1 + k))}
	}
	v := view{i.Mem, i.rb}
	next := pc + in.Len()

	switch in.Op {
	case OpAdd:
		err = i.store(v, ops[2], v.value(ops[0])+v.value(ops[1]))
	case OpMul:
		err = i.store(v, ops[2], v.value(ops[0])*v.value(ops[1]))
	case OpIn:
		var addr Cell
		if addr, err = v.address(ops[0]); err != nil {
			break
		}
		if i.in.Len() == 0 {
			i.status = Suspended
			i.log.Debug("suspend", "pc", pc, "rb", i.rb, "count", i.insCount)
			return Suspended, nil
		}
		i.Mem.Write(addr, i.in.PopFront())
	case OpOut:
		i.out.PushBack(v.value(ops[0]))
	case OpJumpIfTrue:
		if v.value(ops[0]) != 0 {
			next = int(v.value(ops[1]))
		}
	case OpJumpIfFalse:
		if v.value(ops[0]) == 0 {
			next = int(v.value(ops[1]))
		}
	case OpLessThan:
		err = i.store(v, ops[2], b2c(v.value(ops[0]) < v.value(ops[1])))
	case OpEquals:
		err = i.store(v, ops[2], b2c(v.value(ops[0]) == v.value(ops[1])))
	case OpAdjustBase:
		rb := i.rb + v.value(ops[0])
		if rb < 0 {
			err = errors.Wrapf(ErrNegativeBase, "%d", rb)
			break
		}
		i.rb = rb
	case OpHalt:
		if i.status != Halted {
			i.status = Halted
			i.insCount++
			i.log.Debug("halt", "pc", pc, "count", i.insCount)
		}
		return Halted, nil
	}
	if err != nil {
		return i.status, errors.Wrapf(err, "pc %d", pc)
	}

	i.PC = next
	i.status = Running
	i.insCount++
	return Running, nil
}

// store writes val to the address designated by dst.
func (i *Instance) store(v view, dst Operand, val Cell) error {
	addr, err := v.address(dst)
	if err != nil {
		return err
	}
	i.Mem.Write(addr, val)
	return nil
}
