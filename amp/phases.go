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

package amp

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Permutations returns all permutations of phases, using Heap's algorithm.
// The returned slices are independent copies.
func Permutations(phases []vm.Cell) [][]vm.Cell {
	a := append([]vm.Cell(nil), phases...)
	n := len(a)
	perms := [][]vm.Cell{append([]vm.Cell(nil), a...)}
	c := make([]int, n)
	for k := 1; k < n; {
		if c[k] < k {
			if k%2 == 0 {
				a[0], a[k] = a[k], a[0]
			} else {
				a[c[k]], a[k] = a[k], a[c[k]]
			}
			perms = append(perms, append([]vm.Cell(nil), a...))
			c[k]++
			k = 1
		} else {
			c[k] = 0
			k++
		}
	}
	return perms
}

// MaxSignal runs a fresh pipeline for every permutation of phases and returns
// the highest signal along with the phase order that produced it.
func MaxSignal(image vm.Image, phases []vm.Cell, opts ...Option) (best vm.Cell, order []vm.Cell, err error) {
	if len(phases) == 0 {
		return 0, nil, errors.New("no phases")
	}
	for _, perm := range Permutations(phases) {
		p, err := New(image, perm, opts...)
		if err != nil {
			return 0, nil, err
		}
		s, err := p.Run()
		if err != nil {
			return 0, nil, errors.Wrapf(err, "phases %v", perm)
		}
		if order == nil || s > best {
			best, order = s, perm
			p.log.Debug("new max signal", "signal", s, "phases", perm)
		}
	}
	return best, order, nil
}
