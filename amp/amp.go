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

// Package amp chains Intcode VM instances into amplifier pipelines.
//
// All instances of a pipeline run the same program and are seeded with a
// distinct phase value. The output of each instance is fed as input to the
// next one, the last instance feeding back into the first, until every
// instance has halted.
package amp

import (
	"io"
	"log/slog"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// ErrPipelineDone is returned when running a pipeline that has already been
// run.
var ErrPipelineDone = errors.New("pipeline already run")

// Pipeline is a cycle of VM instances.
type Pipeline struct {
	engines []*vm.Instance
	halted  []bool
	signal  vm.Cell
	done    bool
	vmOpts  []vm.Option
	log     *slog.Logger
}

// Option interface
type Option func(*Pipeline) error

// Logger sets the logger used to report signal hand-offs at debug level and
// engine faults at error level. The default is to discard all logs.
func Logger(l *slog.Logger) Option {
	return func(p *Pipeline) error {
		if l == nil {
			return errors.New("nil logger")
		}
		p.log = l
		return nil
	}
}

// InitialSignal sets the signal fed to the first instance. The default is 0.
func InitialSignal(v vm.Cell) Option {
	return func(p *Pipeline) error { p.signal = v; return nil }
}

// EngineOptions sets options for every VM instance of the pipeline. They are
// applied after the phase setting has been pushed to the instance's input.
func EngineOptions(opts ...vm.Option) Option {
	return func(p *Pipeline) error {
		p.vmOpts = append(p.vmOpts, opts...)
		return nil
	}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// New creates a new pipeline with one VM instance per phase, in order. Each
// instance gets its own copy of image and has its phase pushed to its input.
func New(image vm.Image, phases []vm.Cell, opts ...Option) (*Pipeline, error) {
	if len(phases) == 0 {
		return nil, errors.New("empty pipeline")
	}
	p := &Pipeline{
		engines: make([]*vm.Instance, len(phases)),
		halted:  make([]bool, len(phases)),
		log:     discard,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	for k, ph := range phases {
		o := make([]vm.Option, 0, len(p.vmOpts)+1)
		o = append(o, vm.Input(ph))
		o = append(o, p.vmOpts...)
		e, err := vm.New(image, o...)
		if err != nil {
			return nil, errors.Wrapf(err, "engine %d", k)
		}
		p.engines[k] = e
	}
	return p, nil
}

// Len returns the number of instances in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.engines)
}

// Halted returns true if instance k has halted.
func (p *Pipeline) Halted(k int) bool {
	return p.halted[k]
}

// Run runs the pipeline until all instances have halted and returns the last
// output value.
//
// Instances are run in turn: the current signal is pushed to the instance's
// input, the instance runs until it halts or needs more input, then the first
// value in its output queue becomes the new signal. Halted instances are
// skipped, and the signal passes through unchanged.
//
// An instance that stops without producing any output is an error.
func (p *Pipeline) Run() (vm.Cell, error) {
	if p.done {
		return p.signal, ErrPipelineDone
	}
	p.done = true

	n := len(p.engines)
	for k, running := 0, n; running > 0; k = (k + 1) % n {
		if p.halted[k] {
			continue
		}
		e := p.engines[k]
		e.PushInput(p.signal)
		st, err := e.Run()
		if err != nil {
			p.log.Error("engine fault", "engine", k, "error", err)
			return p.signal, errors.Wrapf(err, "engine %d", k)
		}
		if st == vm.Halted {
			p.halted[k] = true
			running--
		}
		out, err := e.PopOutput()
		if err != nil {
			p.log.Error("no output", "engine", k, "status", st)
			return p.signal, errors.Wrapf(err, "engine %d", k)
		}
		p.log.Debug("hand-off", "engine", k, "status", st, "in", p.signal, "out", out)
		p.signal = out
	}
	p.log.Debug("done", "signal", p.signal)
	return p.signal, nil
}
