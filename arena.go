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
	"github.com/arenastr/arenastr/internal/arena"
	"github.com/arenastr/arenastr/internal/xunsafe"
)

// Arena is a bump allocator that fields borrow memory from.
//
// The zero Arena is empty and ready to use. Arenas are not synchronized,
// must not be copied after first use, and never free individual objects:
// everything allocated from one is reclaimed at once by [Arena.Free], or by
// the GC once the arena and everything allocated from it are unreachable.
//
// Passing a nil *Arena to any [Field] operation selects plain heap
// allocation instead, matching a message that was built without an arena.
type Arena struct {
	impl arena.Arena
}

// New allocates a copy of v on a, or on the Go heap when a is nil.
//
// This is how arena-resident holder structs come to be: allocate the
// message on the arena, then [Field.Init] each string field before use.
//
// The GC does not scan arena memory. Pointers stored in an arena-resident
// value keep their referent alive only if the referent is itself arena
// memory from the same arena, or is registered with [Arena.KeepAlive].
// Field's operations maintain that registration for their own payloads;
// other pointer fields are the caller's problem.
func New[T any](a *Arena, v T) *T {
	if a == nil {
		return &v
	}
	return arena.New(&a.impl, v)
}

// Alloc returns n zeroed bytes of arena memory, pointer-aligned.
//
// The slice is a view into the arena; it is invalidated by [Arena.Free]
// like everything else the arena hands out.
func (a *Arena) Alloc(n int) []byte {
	return xunsafe.Slice(a.impl.Alloc(n), n)
}

// KeepAlive pins v to the arena: v stays reachable for as long as the arena
// itself does. This is the ownership hand-off used when a heap value is
// adopted into an arena-resident message.
func (a *Arena) KeepAlive(v any) {
	a.impl.KeepAlive(v)
}

// Free releases the arena's memory at once and makes a ready for reuse.
//
// Memory is retained and recycled by the next round of allocation, which is
// the point of the type: a message parsed into an arena, dropped, and
// parsed again costs near zero allocations at steady state.
//
// Every payload, view, and sub-object borrowed from an arena-backed field
// is invalid after Free. Values detached with [Field.Release] remain valid:
// they own their contents.
func (a *Arena) Free() {
	a.impl.Free()
}

// unwrap returns the underlying allocator, mapping nil to nil.
func (a *Arena) unwrap() *arena.Arena {
	if a == nil {
		return nil
	}
	return &a.impl
}
