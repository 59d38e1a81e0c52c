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

package amp_test

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/db47h/intcode/amp"
	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

type C = vm.Image

var (
	serial1   = C{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	serial2   = C{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23, 101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0}
	serial3   = C{3, 31, 3, 32, 1002, 32, 10, 32, 1001, 31, -2, 31, 1007, 31, 0, 33, 1002, 33, 7, 33, 1, 33, 31, 31, 1, 32, 31, 31, 4, 31, 99, 0, 0, 0}
	feedback1 = C{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5}
	feedback2 = C{3, 52, 1001, 52, -5, 52, 3, 53, 1, 52, 56, 54, 1007, 54, 5, 55, 1005, 55, 26, 1001, 54, -5, 54, 1105, 1, 12, 1, 53, 54, 53, 1008, 54, 0, 55, 1001, 55, 1, 55, 2, 53, 55, 53, 4, 53, 1001, 56, -1, 56, 1005, 56, 6, 99, 0, 0, 0, 0, 10}
)

var pipelineTests = []struct {
	name   string
	image  vm.Image
	phases []vm.Cell
	signal vm.Cell
}{
	{"serial1", serial1, []vm.Cell{4, 3, 2, 1, 0}, 43210},
	{"serial2", serial2, []vm.Cell{0, 1, 2, 3, 4}, 54321},
	{"serial3", serial3, []vm.Cell{1, 0, 4, 3, 2}, 65210},
	{"feedback1", feedback1, []vm.Cell{9, 8, 7, 6, 5}, 139629729},
	{"feedback2", feedback2, []vm.Cell{9, 7, 8, 5, 6}, 18216},
}

func TestPipeline_Run(t *testing.T) {
	for _, test := range pipelineTests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			p, err := amp.New(test.image, test.phases)
			if err != nil {
				t.Fatal(err)
			}
			s, err := p.Run()
			if err != nil {
				t.Fatal(err)
			}
			if s != test.signal {
				t.Errorf("expected signal %d, got %d", test.signal, s)
			}
			for k := 0; k < p.Len(); k++ {
				if !p.Halted(k) {
					t.Errorf("engine %d not halted", k)
				}
			}
		})
	}
}

func TestPipeline_deterministic(t *testing.T) {
	for _, test := range pipelineTests {
		var s [2]vm.Cell
		for k := range s {
			p, err := amp.New(test.image, test.phases)
			if err != nil {
				t.Fatal(err)
			}
			if s[k], err = p.Run(); err != nil {
				t.Fatal(err)
			}
		}
		if s[0] != s[1] {
			t.Errorf("%s: got %d then %d", test.name, s[0], s[1])
		}
	}
}

func TestPipeline_imageUnchanged(t *testing.T) {
	img := feedback1.Clone()
	p, err := amp.New(img, []vm.Cell{9, 8, 7, 6, 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = p.Run(); err != nil {
		t.Fatal(err)
	}
	for k := range img {
		if img[k] != feedback1[k] {
			t.Fatalf("image modified at %d: %d != %d", k, img[k], feedback1[k])
		}
	}
}

func TestPipeline_initialSignal(t *testing.T) {
	p, err := amp.New(serial1, []vm.Cell{4, 3, 2, 1, 0}, amp.InitialSignal(1))
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}
	if s != 143210 {
		t.Errorf("expected signal 143210, got %d", s)
	}
}

func TestPipeline_runTwice(t *testing.T) {
	p, err := amp.New(serial1, []vm.Cell{4, 3, 2, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = p.Run(); err != nil {
		t.Fatal(err)
	}
	s, err := p.Run()
	if errors.Cause(err) != amp.ErrPipelineDone {
		t.Fatalf("expected ErrPipelineDone, got %v", err)
	}
	if s != 43210 {
		t.Errorf("expected last signal 43210, got %d", s)
	}
}

func TestPipeline_errors(t *testing.T) {
	if _, err := amp.New(serial1, nil); err == nil {
		t.Error("expected error for empty pipeline")
	}
	if _, err := amp.New(serial1, []vm.Cell{0}, amp.Logger(nil)); err == nil {
		t.Error("expected error for nil logger")
	}
	if _, err := amp.New(serial1, []vm.Cell{0}, amp.EngineOptions(vm.MemSize(-1))); err == nil {
		t.Error("expected error for invalid engine option")
	}

	// in [0], in [0], hlt
	p, err := amp.New(C{3, 0, 3, 0, 99}, []vm.Cell{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = p.Run(); errors.Cause(err) != vm.ErrNoOutput {
		t.Errorf("expected ErrNoOutput, got %v", err)
	}

	p, err = amp.New(C{42}, []vm.Cell{0})
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Run()
	if _, ok := errors.Cause(err).(*vm.DecodeError); !ok {
		t.Errorf("expected a DecodeError, got %v", err)
	}
}

// recorder is a slog.Handler that keeps hand-off records.
type recorder struct {
	mu  sync.Mutex
	log []handOff
}

type handOff struct {
	engine int64
	status string
}

func (r *recorder) Enabled(context.Context, slog.Level) bool { return true }
func (r *recorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recorder) WithGroup(string) slog.Handler { return r }

func (r *recorder) Handle(_ context.Context, rec slog.Record) error {
	if rec.Message != "hand-off" {
		return nil
	}
	var h handOff
	rec.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "engine":
			h.engine = a.Value.Int64()
		case "status":
			h.status = a.Value.String()
		}
		return true
	})
	r.mu.Lock()
	r.log = append(r.log, h)
	r.mu.Unlock()
	return nil
}

func TestPipeline_neverRunsHaltedEngines(t *testing.T) {
	for _, test := range pipelineTests {
		r := &recorder{}
		p, err := amp.New(test.image, test.phases, amp.Logger(slog.New(r)))
		if err != nil {
			t.Fatal(err)
		}
		if _, err = p.Run(); err != nil {
			t.Fatal(err)
		}
		halted := make(map[int64]bool)
		for _, h := range r.log {
			if halted[h.engine] {
				t.Fatalf("%s: engine %d run after it halted", test.name, h.engine)
			}
			if h.status == vm.Halted.String() {
				halted[h.engine] = true
			}
		}
		if len(halted) != len(test.phases) {
			t.Errorf("%s: %d engines halted, expected %d", test.name, len(halted), len(test.phases))
		}
		if len(r.log)%len(test.phases) != 0 {
			t.Errorf("%s: %d hand-offs is not a whole number of rounds", test.name, len(r.log))
		}
	}
}

// countdown increments and forwards the signal once per unit of its phase
// value, then halts.
const countdown = `
		in [phase]
	:loop	in [signal]
		add [signal] 1 [signal]
		out [signal]
		add [phase] -1 [phase]
		jt [phase] loop
		hlt
		.org 100
	:phase	.dat 0
	:signal	.dat 0`

func TestPipeline_staggeredHalts(t *testing.T) {
	img, err := asm.Assemble("countdown", strings.NewReader(countdown))
	if err != nil {
		t.Fatal(err)
	}
	r := &recorder{}
	phases := []vm.Cell{1, 3, 2}
	p, err := amp.New(img, phases, amp.Logger(slog.New(r)))
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}
	if s != 6 {
		t.Errorf("expected signal 6, got %d", s)
	}
	for k := 0; k < p.Len(); k++ {
		if !p.Halted(k) {
			t.Errorf("engine %d not halted", k)
		}
	}
	// engine 0 halts in the first round, engine 2 in the second.
	order := []int64{0, 1, 2, 1, 2, 1}
	if len(r.log) != len(order) {
		t.Fatalf("expected %d hand-offs, got %d: %v", len(order), len(r.log), r.log)
	}
	halted := make(map[int64]bool)
	for k, h := range r.log {
		if h.engine != order[k] {
			t.Errorf("hand-off %d: expected engine %d, got %d", k, order[k], h.engine)
		}
		if halted[h.engine] {
			t.Errorf("engine %d run after it halted", h.engine)
		}
		if h.status == vm.Halted.String() {
			halted[h.engine] = true
		}
	}
	if len(halted) != len(phases) {
		t.Errorf("%d engines halted, expected %d", len(halted), len(phases))
	}
}

func TestPermutations(t *testing.T) {
	if p := amp.Permutations(nil); len(p) != 1 || len(p[0]) != 0 {
		t.Errorf("expected a single empty permutation, got %v", p)
	}
	in := []vm.Cell{0, 1, 2, 3, 4}
	perms := amp.Permutations(in)
	if len(perms) != 120 {
		t.Fatalf("expected 120 permutations, got %d", len(perms))
	}
	seen := make(map[[5]vm.Cell]bool)
	for _, p := range perms {
		var key [5]vm.Cell
		var set int
		for k, v := range p {
			key[k] = v
			set |= 1 << v
		}
		if set != 0x1f {
			t.Fatalf("%v is not a permutation of %v", p, in)
		}
		if seen[key] {
			t.Fatalf("duplicate permutation %v", p)
		}
		seen[key] = true
	}
	if in[0] != 0 || in[4] != 4 {
		t.Errorf("input modified: %v", in)
	}
	perms[0][0] = 42
	if perms[1][0] == 42 {
		t.Error("permutations share storage")
	}
}

func TestMaxSignal(t *testing.T) {
	serial := []vm.Cell{0, 1, 2, 3, 4}
	fb := []vm.Cell{5, 6, 7, 8, 9}
	td := []struct {
		name   string
		image  vm.Image
		phases []vm.Cell
		signal vm.Cell
		order  []vm.Cell
	}{
		{"serial1", serial1, serial, 43210, []vm.Cell{4, 3, 2, 1, 0}},
		{"serial2", serial2, serial, 54321, []vm.Cell{0, 1, 2, 3, 4}},
		{"serial3", serial3, serial, 65210, []vm.Cell{1, 0, 4, 3, 2}},
		{"feedback1", feedback1, fb, 139629729, []vm.Cell{9, 8, 7, 6, 5}},
		{"feedback2", feedback2, fb, 18216, []vm.Cell{9, 7, 8, 5, 6}},
	}
	for _, test := range td {
		s, order, err := amp.MaxSignal(test.image, test.phases)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if s != test.signal {
			t.Errorf("%s: expected max signal %d, got %d", test.name, test.signal, s)
		}
		if len(order) != len(test.order) {
			t.Fatalf("%s: expected phases %v, got %v", test.name, test.order, order)
		}
		for k := range order {
			if order[k] != test.order[k] {
				t.Errorf("%s: expected phases %v, got %v", test.name, test.order, order)
				break
			}
		}
	}
	if _, _, err := amp.MaxSignal(serial1, nil); err == nil {
		t.Error("expected error with no phases")
	}
}
