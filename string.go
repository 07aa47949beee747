// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package arenastr

import (
	"fmt"
	"math"

	"github.com/arenastr/arenastr/internal/arena"
	"github.com/arenastr/arenastr/internal/debug"
	"github.com/arenastr/arenastr/internal/xunsafe"
	"github.com/arenastr/arenastr/internal/xunsafe/layout"
)

// inlineCap is the number of content bytes a String holds without an
// external buffer.
const inlineCap = 16

// String is the payload of a string-typed field: a length, a capacity, and
// either a small inline buffer or a pointer to an external one.
//
// Contents of up to inlineCap bytes are stored inline. Longer contents live
// in an external buffer, which is on the Go heap for a heap-allocated
// payload and in arena memory for an arena-resident one, never mixed.
// [Field.Release] depends on that split when it steals a heap buffer
// instead of copying it.
//
// The zero String is empty and ready to use. Every *String this package
// hands out ([NewString], [Field.Mutable], [Field.Release] and so on) is
// heap-allocated; arena-resident payloads never leave [Field]'s internals.
// That is what makes [String.Assign] and [String.Append] safe without an
// arena: they only ever grow onto the Go heap, and the GC can see the
// result.
type String struct {
	_ xunsafe.NoCopy

	data *byte
	len  uint32
	cap  uint32

	inline [inlineCap]byte
}

// NewString returns a heap-allocated String holding a copy of v.
func NewString(v string) *String {
	s := new(String)
	s.assignString(v, nil)
	return s
}

// NewStringBytes returns a heap-allocated String holding a copy of v.
func NewStringBytes(v []byte) *String {
	s := new(String)
	s.assign(v, nil)
	return s
}

// arenaString allocates an empty String on a.
//
// Arena memory is always zeroed, so the result is valid without further
// initialization.
func arenaString(a *arena.Arena) *String {
	return xunsafe.Cast[String](a.Alloc(layout.Size[String]()))
}

// Len returns the length of the contents in bytes.
func (s *String) Len() int {
	return int(s.len)
}

// Cap returns the capacity of the current buffer in bytes.
func (s *String) Cap() int {
	if s.external() {
		return int(s.cap)
	}
	return inlineCap
}

// String returns the contents as a string.
//
// The result aliases the payload's buffer instead of copying it. Mutating s
// invalidates it, as does [Arena.Free] when the payload belongs to an
// arena-backed field.
func (s *String) String() string {
	return xunsafe.String(s.ptr(), s.len)
}

// Bytes returns the contents as a byte slice.
//
// Like [String.String], the result is a view, not a copy. Callers must not
// write through it.
func (s *String) Bytes() []byte {
	return xunsafe.Slice(s.ptr(), s.len)
}

// Assign replaces the contents with a copy of v.
func (s *String) Assign(v string) {
	s.assignString(v, nil)
}

// AssignBytes replaces the contents with a copy of v.
func (s *String) AssignBytes(v []byte) {
	s.assign(v, nil)
}

// Append appends a copy of v to the contents.
func (s *String) Append(v string) {
	s.appendString(v, nil)
}

// AppendBytes appends a copy of v to the contents.
func (s *String) AppendBytes(v []byte) {
	s.append(v, nil)
}

// Clear resets the length to zero. The buffer is kept, so a later write of
// at most [String.Cap] bytes will not allocate.
func (s *String) Clear() {
	s.len = 0
}

// Format implements [fmt.Formatter], printing the contents.
func (s *String) Format(state fmt.State, verb rune) {
	fmt.Fprintf(state, fmt.FormatString(state, verb), s.String())
}

// external reports whether the contents are in an external buffer rather
// than the inline one.
func (s *String) external() bool {
	return s.cap > inlineCap
}

// ptr returns the base of the buffer currently holding the contents.
func (s *String) ptr() *byte {
	if s.external() {
		return s.data
	}
	return &s.inline[0]
}

// assign replaces the contents with a copy of v, growing through a when the
// current capacity is too small.
//
// a must be non-nil exactly when s is arena-resident.
func (s *String) assign(v []byte, a *arena.Arena) {
	if len(v) > s.Cap() {
		s.grow(len(v), 0, a)
	}
	copy(xunsafe.Slice(s.ptr(), len(v)), v)
	s.len = uint32(len(v))
}

func (s *String) assignString(v string, a *arena.Arena) {
	s.assign(xunsafe.StringToSlice[[]byte](v), a)
}

// append appends a copy of v to the contents. Same contract as assign.
func (s *String) append(v []byte, a *arena.Arena) {
	need := s.Len() + len(v)
	if need > s.Cap() {
		s.grow(need, s.Len(), a)
	}
	copy(xunsafe.Slice(xunsafe.ByteAdd[byte](s.ptr(), s.len), len(v)), v)
	s.len = uint32(need)
}

func (s *String) appendString(v string, a *arena.Arena) {
	s.append(xunsafe.StringToSlice[[]byte](v), a)
}

// grow installs a buffer with capacity at least need, preserving the first
// keep bytes of the contents. Capacity never shrinks.
//
// Heap growth doubles the capacity to amortize repeated appends. Arena
// growth is exact, since arena memory is not reclaimed before the whole
// arena is freed.
func (s *String) grow(need, keep int, a *arena.Arena) {
	debug.Assert(uint64(need) <= math.MaxUint32, "oversized string: %d bytes", need)

	if a != nil {
		s.growArena(need, keep, a)
		return
	}

	newCap := need
	if keep > 0 {
		newCap = max(need, 2*s.Cap())
	}
	buf := make([]byte, newCap)
	copy(buf, xunsafe.Slice(s.ptr(), keep))
	s.data = &buf[0]
	s.cap = uint32(newCap)
}

// growArena is the arena half of grow. The buffer is resized in place when
// it was the arena's most recent allocation.
func (s *String) growArena(need, keep int, a *arena.Arena) {
	var p *byte
	if s.external() && keep > 0 {
		p = a.Realloc(need, int(s.cap), s.data)
	} else {
		p = a.Alloc(need)
		xunsafe.Copy(p, s.ptr(), keep)
	}

	// s is arena-resident here: its slots are not scanned by the GC, and
	// p's chunk is kept alive by the arena itself.
	xunsafe.StoreNoWB(&s.data, p)
	s.cap = uint32(need)
}

// move transfers the contents of s into a fresh heap-allocated String,
// leaving s empty. An external buffer moves by pointer; inline contents are
// copied.
func (s *String) move() *String {
	out := new(String)
	out.data, out.len, out.cap = s.data, s.len, s.cap
	out.inline = s.inline
	s.data, s.len, s.cap = nil, 0, 0
	return out
}

// cloneForHeap returns a heap-allocated String with a copy of s's contents.
// The clone never shares a buffer with s, so it remains valid after an
// arena-resident s is freed.
func (s *String) cloneForHeap() *String {
	out := new(String)
	out.assign(s.Bytes(), nil)
	return out
}

// swapContents exchanges the contents of s and o. Both must be
// heap-allocated.
func (s *String) swapContents(o *String) {
	s.data, o.data = o.data, s.data
	s.len, o.len = o.len, s.len
	s.cap, o.cap = o.cap, s.cap
	s.inline, o.inline = o.inline, s.inline
}
