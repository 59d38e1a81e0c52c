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

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/db47h/intcode/internal/ici"
	"github.com/gammazero/deque"
	"github.com/pkg/errors"
)

// Status is the execution status of an Instance.
type Status int

// Instance states. Running is only observed while a step is in progress or
// before the first call to Run.
const (
	Running Status = iota
	Suspended
	Halted
)

var statusNames = [...]string{"running", "suspended", "halted"}

func (s Status) String() string {
	if s >= Running && s <= Halted {
		return statusNames[s]
	}
	return "status" + strconv.Itoa(int(s))
}

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int     // Program Counter (aka. Instruction Pointer)
	Mem      *Memory // Memory
	rb       Cell
	in       deque.Deque[Cell]
	out      deque.Deque[Cell]
	status   Status
	insCount int64
	log      *slog.Logger
}

// Option interface
type Option func(*Instance) error

// Input pushes the given values to the input queue.
func Input(v ...Cell) Option {
	return func(i *Instance) error { i.PushInput(v...); return nil }
}

// MemSize grows memory to at least size cells. Memory grows on demand anyway,
// this only saves reallocations for programs known to use a lot of memory.
func MemSize(size int) Option {
	return func(i *Instance) error {
		if size < 0 || size > i.Mem.limit {
			return errors.Errorf("invalid memory size %d", size)
		}
		if size > 0 {
			i.Mem.grow(Cell(size - 1))
		}
		return nil
	}
}

// MemLimit sets the maximum memory size in cells. Accessing an address at or
// beyond the limit is a fatal error. The default is DefaultMemLimit.
func MemLimit(size int) Option {
	return func(i *Instance) error {
		return i.Mem.SetLimit(size)
	}
}

// Logger sets the logger used to report suspensions and halts at debug level.
// The default is to discard all logs.
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error {
		if l == nil {
			return errors.New("nil logger")
		}
		i.log = l
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// New creates a new Intcode Virtual Machine instance.
//
// The image is copied into the instance's memory, so the same image can be
// used to create any number of independent instances.
//
// Options will be set by calling SetOptions.
func New(image Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		Mem: NewMemory(image),
		log: discard,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// RelativeBase returns the current value of the relative base register.
func (i *Instance) RelativeBase() Cell {
	return i.rb
}

// Status returns the status as of the last executed instruction.
func (i *Instance) Status() Status {
	return i.status
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

func queueCells(q *deque.Deque[Cell]) []Cell {
	a := make([]Cell, q.Len())
	for k := range a {
		a[k] = q.At(k)
	}
	return a
}

// Dump writes the VM registers, I/O queues and memory to the specified
// io.Writer. Each item is written on its own line, lists are comma separated.
func (i *Instance) Dump(w io.Writer) error {
	ew := ici.NewErrWriter(w)
	io.WriteString(ew, "pc ")
	io.WriteString(ew, strconv.Itoa(i.PC))
	io.WriteString(ew, " rb ")
	io.WriteString(ew, strconv.FormatInt(int64(i.rb), 10))
	io.WriteString(ew, " ")
	io.WriteString(ew, i.status.String())
	ew.Write([]byte{'\n'})
	ici.WriteList(ew, queueCells(&i.in), ',')
	ici.WriteList(ew, queueCells(&i.out), ',')
	ici.WriteList(ew, i.Mem.cells, ',')
	return ew.Err
}
