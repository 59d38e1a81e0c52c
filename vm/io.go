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

// PushInput appends the given values to the input queue. Values are consumed
// by input instructions in the order they were pushed.
func (i *Instance) PushInput(v ...Cell) {
	for _, c := range v {
		i.in.PushBack(c)
	}
}

// PopOutput removes and returns the oldest value from the output queue. It
// returns ErrNoOutput if the queue is empty.
func (i *Instance) PopOutput() (Cell, error) {
	if i.out.Len() == 0 {
		return 0, ErrNoOutput
	}
	return i.out.PopFront(), nil
}

// Output drains the output queue and returns its contents, oldest first.
func (i *Instance) Output() []Cell {
	if i.out.Len() == 0 {
		return nil
	}
	o := make([]Cell, 0, i.out.Len())
	for i.out.Len() > 0 {
		o = append(o, i.out.PopFront())
	}
	return o
}

// InputLen returns the number of values waiting in the input queue.
func (i *Instance) InputLen() int {
	return i.in.Len()
}

// OutputLen returns the number of values waiting in the output queue.
func (i *Instance) OutputLen() int {
	return i.out.Len()
}
