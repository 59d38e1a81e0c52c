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

// Memory is the VM's addressable store. It grows on demand: any access past
// its current length extends it with zero cells first, so callers never need
// bounds checks. It never shrinks.
//
// Accessing a negative address, or an address at or past the memory limit,
// panics with an *AddressError. The VM's Run and Step methods recover such
// panics and return them as errors.
type Memory struct {
	cells []Cell
	limit int
}

// DefaultMemLimit is the default maximum memory size in cells (128MiB).
const DefaultMemLimit = 1 << 24

// NewMemory returns a new Memory holding a copy of image. Its limit is
// DefaultMemLimit, or the image size if larger.
func NewMemory(image []Cell) *Memory {
	m := &Memory{append(make([]Cell, 0, len(image)), image...), DefaultMemLimit}
	if len(image) > m.limit {
		m.limit = len(image)
	}
	return m
}

// grow makes sure that addr is a valid index.
func (m *Memory) grow(addr Cell) int {
	if addr < 0 || addr >= Cell(m.limit) {
		panic(&AddressError{addr})
	}
	a := int(addr)
	if a >= len(m.cells) {
		m.cells = append(m.cells, make([]Cell, a+1-len(m.cells))...)
	}
	return a
}

// Read returns the value stored at addr.
func (m *Memory) Read(addr Cell) Cell {
	return m.cells[m.grow(addr)]
}

// Write stores v at addr.
func (m *Memory) Write(addr, v Cell) {
	m.cells[m.grow(addr)] = v
}

// SetLimit sets the maximum memory size in cells. It cannot be set below the
// current size.
func (m *Memory) SetLimit(n int) error {
	if n < len(m.cells) {
		return errors.Errorf("memory limit %d below current size %d", n, len(m.cells))
	}
	m.limit = n
	return nil
}

// Limit returns the maximum memory size in cells.
func (m *Memory) Limit() int {
	return m.limit
}

// Len returns the current memory size in cells.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Cells returns a copy of the memory contents.
func (m *Memory) Cells() []Cell {
	return append([]Cell(nil), m.cells...)
}
