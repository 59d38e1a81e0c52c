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
	"strconv"

	"github.com/pkg/errors"
)

// Errors returned by the VM. They are usually wrapped with the address of the
// faulting instruction; use errors.Cause to compare them.
var (
	ErrImmediateWrite = errors.New("write target in immediate mode")
	ErrNegativeBase   = errors.New("negative relative base")
	ErrNoOutput       = errors.New("output queue empty")
)

// DecodeError is returned when an instruction word cannot be decoded.
type DecodeError struct {
	Word   Cell
	Reason string
}

func (e *DecodeError) Error() string {
	return "bad instruction " + strconv.FormatInt(int64(e.Word), 10) + ": " + e.Reason
}

// AddressError reports an access to a negative memory address or to an
// address beyond the memory limit.
type AddressError struct {
	Addr Cell
}

func (e *AddressError) Error() string {
	if e.Addr < 0 {
		return "negative address " + strconv.FormatInt(int64(e.Addr), 10)
	}
	return "address " + strconv.FormatInt(int64(e.Addr), 10) + " out of range"
}
