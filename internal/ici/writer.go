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

// Package ici holds small helpers shared by the intcode packages.
package ici

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ErrWriter is a simple wrapper to track io errors. Once a write has failed,
// Write keeps returning the same error without writing anything.
type ErrWriter struct {
	w   io.Writer
	Err error
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// NewErrWriter returns a new ErrWriter. If w already is an *ErrWriter, it is
// returned as is so that errors are tracked in a single place.
func NewErrWriter(w io.Writer) *ErrWriter {
	if ew, ok := w.(*ErrWriter); ok {
		return ew
	}
	return &ErrWriter{w, nil}
}

// WriteList writes the values in a as decimal integers separated by sep,
// followed by a newline. It returns the first write error.
func WriteList[T ~int64](w io.Writer, a []T, sep byte) error {
	ew := NewErrWriter(w)
	b := make([]byte, 0, 32)
	for k, v := range a {
		if k > 0 {
			b = append(b, sep)
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if len(b) > 512 {
			ew.Write(b)
			b = b[:0]
		}
	}
	b = append(b, '\n')
	ew.Write(b)
	return ew.Err
}
