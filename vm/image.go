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

// Cell is the raw type stored in a memory location.
type Cell int64

// Image is an Intcode program: the initial contents of a VM's memory.
type Image []Cell

// Clone returns an independent copy of the image.
func (img Image) Clone() Image {
	if img == nil {
		return nil
	}
	return append(make(Image, 0, len(img)), img...)
}
