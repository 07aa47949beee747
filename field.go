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
	"github.com/arenastr/arenastr/internal/debug"
	"github.com/arenastr/arenastr/internal/tagptr"
	"github.com/arenastr/arenastr/internal/xunsafe"
)

// Field is a string-typed field slot inside a message struct: one tagged
// word pointing at the payload, with the tag bit recording where the
// payload's storage lives.
//
// A Field is always in one of three states:
//
//   - Unset: pointing at its declaration's [Default] sentinel.
//   - Heap: pointing at a *String on the Go heap, owned by the holder and
//     registered with the arena when there is one.
//   - Arena: pointing at a String carved out of the arena itself.
//
// The zero Field is invalid. [Field.Init] is the only way to bring one into
// service, and the only operation that may be applied to raw memory.
//
// The arena parameter on mutating operations must be the arena the holder
// struct was allocated on, or nil for an ordinary heap-allocated holder.
// Fields are exactly one word and carry no synchronization; the holder is
// responsible for exclusive access during mutation, just as it is for its
// other fields.
type Field struct {
	p tagptr.Ptr[String]
}

// Init points the field at def's sentinel, making it unset.
//
// Init disregards the previous contents of the word, which is what makes it
// safe on raw memory, and the right way to re-initialize a field that
// becomes the active member of a oneof union.
func (f *Field) Init(def *Default) {
	f.p = def.sentinel
}

// IsDefault reports whether the field is unset, still holding def's
// sentinel.
//
// This is an identity comparison against the sentinel, not a content
// comparison: a field Set to a value equal to the default is set.
func (f *Field) IsDefault(def *Default) bool {
	return f.p == def.sentinel
}

// Get returns the current contents. Unset fields return the default
// contents.
//
// The result is a zero-copy view; see [String.String] for when views are
// invalidated.
func (f *Field) Get() string {
	return f.payload().String()
}

// GetBytes is [Field.Get] as a byte slice. Callers must not write through
// the result.
func (f *Field) GetBytes() []byte {
	return f.payload().Bytes()
}

// Set replaces the contents with a copy of v.
//
// The first write to an unset field creates the payload: on the arena when
// a is non-nil, on the Go heap otherwise. Later writes reuse the payload in
// place, growing its buffer only when v does not fit.
func (f *Field) Set(def *Default, v string, a *Arena) {
	f.setBytes(def, xunsafe.StringToSlice[[]byte](v), a.unwrap())
}

// SetBytes is [Field.Set] for byte slice contents.
func (f *Field) SetBytes(def *Default, v []byte, a *Arena) {
	f.setBytes(def, v, a.unwrap())
}

// Mutable returns a payload the caller may mutate directly.
//
// An unset field gets a fresh heap payload holding a copy of the default
// contents. An arena-resident payload is promoted first: its contents move
// to a heap payload, which takes its place. A heap payload is returned
// as-is.
//
// The result is address-stable until an operation that replaces the payload
// (Release, SetAllocated, Destroy, Swap in debug builds).
func (f *Field) Mutable(def *Default, a *Arena) *String {
	switch {
	case f.IsDefault(def):
		return f.mutableSlow(def, a)
	case f.p.Is(tagptr.Arena):
		return f.promote(a)
	default:
		return f.p.As(tagptr.Heap)
	}
}

// Release detaches the payload, leaving the field unset.
//
// The result always owns its contents, independent of any arena: a heap
// payload under an arena has its buffer stolen into a fresh String (the
// registered shell stays behind, empty), and an arena-resident payload is
// copied out. Unset fields return nil.
func (f *Field) Release(def *Default, a *Arena) *String {
	if f.IsDefault(def) {
		return nil
	}
	return f.ReleaseNonDefault(def, a)
}

// ReleaseNonDefault is [Field.Release] for callers that already know the
// field is set.
func (f *Field) ReleaseNonDefault(def *Default, a *Arena) *String {
	debug.Assert(!f.IsDefault(def), "released an unset field")

	var out *String
	switch {
	case a == nil:
		out = f.p.As(tagptr.Heap)
	case f.p.Is(tagptr.Heap):
		// The registered shell stays with the arena; only its buffer moves.
		out = f.p.Get().move()
	default:
		out = f.p.Get().cloneForHeap()
	}
	f.log("release", "%d bytes, arena=%v", out.Len(), a != nil)
	f.p = def.sentinel
	return out
}

// UnsafeArenaRelease detaches the payload without making it independent of
// the arena: the result stays registered with a, and is meant to be handed
// to [Field.UnsafeArenaSetAllocated] on another field of the same arena,
// not kept beyond the arena's lifetime. Unset fields return nil. The field
// is left unset.
//
// With a nil arena this is a plain ownership transfer, same as
// [Field.Release].
func (f *Field) UnsafeArenaRelease(def *Default, a *Arena) *String {
	if f.IsDefault(def) {
		return nil
	}

	var out *String
	if f.p.Is(tagptr.Arena) {
		out = f.p.Get().cloneForHeap()
		if a != nil {
			a.KeepAlive(out)
		}
	} else {
		out = f.p.As(tagptr.Heap)
	}
	f.p = def.sentinel
	return out
}

// SetAllocated adopts v, a heap-allocated String, as the field's payload.
//
// The previous payload is dropped: an unreferenced heap payload becomes
// garbage, an arena payload stays with its arena. When a is non-nil, v is
// registered with the arena so that an arena-resident holder keeps it
// reachable; each adoption registers exactly once. A nil v resets the field
// to unset.
func (f *Field) SetAllocated(def *Default, v *String, a *Arena) {
	if v == nil {
		f.p = def.sentinel
		return
	}
	f.p.Set(v, tagptr.Heap)
	if a != nil {
		a.KeepAlive(v)
	}
	f.log("adopt", "%d bytes, arena=%v", v.Len(), a != nil)
}

// UnsafeArenaSetAllocated adopts v without registering it anywhere.
//
// This is only safe for values already tied to the holder's arena, such as
// those returned by [Field.UnsafeArenaRelease] on another field of the same
// arena. A nil v resets the field to unset.
func (f *Field) UnsafeArenaSetAllocated(def *Default, v *String) {
	if v == nil {
		f.p = def.sentinel
		return
	}
	f.p.Set(v, tagptr.Heap)
}

// Swap exchanges the values of f and o, which must share a declaration and
// belong to holders on the same arena (or both to none).
//
// The exchange is a single word swap; no payload bytes are touched. Debug
// builds exchange the contents through [Field.Mutable] instead, which
// invalidates previously returned views, the same invalidation a
// message-level swap is documented to perform.
func (f *Field) Swap(o *Field, def *Default, a *Arena) {
	if debug.Enabled {
		if f.IsDefault(def) && o.IsDefault(def) {
			return
		}
		f.Mutable(def, a).swapContents(o.Mutable(def, a))
		return
	}
	f.UnsafeSwap(o)
}

// UnsafeSwap exchanges payload words with no guard at all. Message-level
// swap logic is responsible for only calling it on fields whose ownership
// actually permits it.
func (f *Field) UnsafeSwap(o *Field) {
	f.p, o.p = o.p, f.p
}

// ClearToEmpty empties the contents without releasing the payload, so its
// capacity survives for the next write. Unset fields stay unset.
//
// This is for declarations whose default is the empty string; the field
// reads as empty either way.
func (f *Field) ClearToEmpty(def *Default, _ *Arena) {
	if f.IsDefault(def) {
		return
	}
	f.payload().Clear()
}

// ClearNonDefaultToEmpty is [Field.ClearToEmpty] for callers that already
// know the field is set. Calling it on an unset field would empty the
// shared sentinel.
func (f *Field) ClearNonDefaultToEmpty() {
	f.payload().Clear()
}

// ClearToDefault restores the default contents in place, reusing the
// payload's buffer when they fit. Unset fields stay unset.
func (f *Field) ClearToDefault(def *Default, a *Arena) {
	if f.IsDefault(def) {
		return
	}
	f.assignInPlace(def.content.Bytes(), a.unwrap())
}

// Destroy drops the payload and resets the field to unset.
//
// With no arena, this is how an owning holder lets go of its heap payload;
// the GC does the reclaiming. With an arena there is nothing to reclaim per
// field, so only the word is reset.
func (f *Field) Destroy(def *Default, _ *Arena) {
	f.p = def.sentinel
}

// UnsafeMutablePointer returns the payload with no default check, for
// callers that already know the field holds a mutable heap payload.
func (f *Field) UnsafeMutablePointer() *String {
	return f.p.As(tagptr.Heap)
}

// payload returns the current payload, whatever its representation.
func (f *Field) payload() *String {
	debug.Assert(!f.p.IsNil(), "use of an uninitialized Field")
	return f.p.Get()
}

func (f *Field) setBytes(def *Default, v []byte, a *arena.Arena) {
	if f.IsDefault(def) {
		f.create(v, a)
		return
	}
	f.assignInPlace(v, a)
}

// assignInPlace writes v into the existing payload, with the allocator that
// matches its representation. A heap payload always grows on the Go heap,
// even under an arena.
func (f *Field) assignInPlace(v []byte, a *arena.Arena) {
	s := f.payload()
	if f.p.Is(tagptr.Arena) {
		debug.Assert(a != nil, "arena-resident payload, nil arena")
		s.assign(v, a)
	} else {
		s.assign(v, nil)
	}
}

// create builds the payload for a field's first value.
//
// Outlined to keep the common assign path small.
//
//go:noinline
func (f *Field) create(v []byte, a *arena.Arena) {
	if a != nil {
		s := arenaString(a)
		s.assign(v, a)
		f.p.Set(s, tagptr.Arena)
	} else {
		f.p.Set(NewStringBytes(v), tagptr.Heap)
	}
	f.log("create", "%d bytes, arena=%v", len(v), a != nil)
}

// mutableSlow builds a mutable payload for an unset field, holding a copy
// of the default contents.
//
//go:noinline
func (f *Field) mutableSlow(def *Default, a *Arena) *String {
	s := NewStringBytes(def.content.Bytes())
	if a != nil {
		a.KeepAlive(s)
	}
	f.p.Set(s, tagptr.Heap)
	return s
}

// promote replaces an arena-resident payload with a heap-allocated copy, so
// the caller can mutate the result without arena bookkeeping.
func (f *Field) promote(a *Arena) *String {
	debug.Assert(a != nil, "arena-resident payload, nil arena")

	s := f.p.As(tagptr.Arena).cloneForHeap()
	if a != nil {
		a.KeepAlive(s)
	}
	f.p.Set(s, tagptr.Heap)
	f.log("promote", "%d bytes to heap", s.Len())
	return s
}

// log traces a field transition in debug builds.
func (f *Field) log(op, format string, args ...any) {
	if debug.Enabled {
		debug.Log([]any{"%p=%v", f, f.p}, op, format, args...)
	}
}
