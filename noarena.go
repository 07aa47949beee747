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
	"github.com/arenastr/arenastr/internal/debug"
	"github.com/arenastr/arenastr/internal/tagptr"
	"github.com/arenastr/arenastr/internal/xunsafe"
)

// The NoArena operations below mirror the general ones for holders that are
// known at the call site to live outside any arena. A field that has only
// ever been mutated by NoArena operations is always Unset or Heap, never
// Arena, so these skip the representation dispatch and any arena
// bookkeeping. Mixing them with the general operations is fine as long as
// the general ones were always called with a nil arena; the two families
// are observably identical in that case.

// SetNoArena replaces the contents with a copy of v.
func (f *Field) SetNoArena(def *Default, v string) {
	f.SetBytesNoArena(def, xunsafe.StringToSlice[[]byte](v))
}

// SetBytesNoArena is [Field.SetNoArena] for byte slice contents.
func (f *Field) SetBytesNoArena(def *Default, v []byte) {
	if f.IsDefault(def) {
		f.createNoArena(v)
		return
	}
	f.heapPayload().assign(v, nil)
}

// GetNoArena returns the current contents. Unset fields return the default
// contents.
func (f *Field) GetNoArena() string {
	return f.heapPayload().String()
}

// MutableNoArena returns a payload the caller may mutate directly, creating
// one with a copy of the default contents if the field is unset.
func (f *Field) MutableNoArena(def *Default) *String {
	if f.IsDefault(def) {
		return f.createNoArena(def.content.Bytes())
	}
	return f.heapPayload()
}

// ReleaseNoArena detaches and returns the payload, leaving the field unset.
// Unset fields return nil.
func (f *Field) ReleaseNoArena(def *Default) *String {
	if f.IsDefault(def) {
		return nil
	}
	return f.ReleaseNonDefaultNoArena(def)
}

// ReleaseNonDefaultNoArena is [Field.ReleaseNoArena] for callers that
// already know the field is set.
func (f *Field) ReleaseNonDefaultNoArena(def *Default) *String {
	debug.Assert(!f.IsDefault(def), "released an unset field")

	out := f.p.As(tagptr.Heap)
	f.p = def.sentinel
	return out
}

// SetAllocatedNoArena adopts v as the field's payload, dropping the
// previous one. A nil v resets the field to unset.
func (f *Field) SetAllocatedNoArena(def *Default, v *String) {
	if v == nil {
		f.p = def.sentinel
		return
	}
	f.p.Set(v, tagptr.Heap)
}

// DestroyNoArena drops the payload and resets the field to unset.
func (f *Field) DestroyNoArena(def *Default) {
	f.p = def.sentinel
}

// ClearToEmptyNoArena empties the contents, keeping the payload and its
// capacity. Unset fields stay unset.
func (f *Field) ClearToEmptyNoArena(def *Default) {
	if f.IsDefault(def) {
		return
	}
	f.heapPayload().Clear()
}

// ClearNonDefaultToEmptyNoArena is [Field.ClearToEmptyNoArena] for callers
// that already know the field is set.
func (f *Field) ClearNonDefaultToEmptyNoArena() {
	f.heapPayload().Clear()
}

// ClearToDefaultNoArena restores the default contents in place, reusing the
// payload's buffer when they fit. Unset fields stay unset.
func (f *Field) ClearToDefaultNoArena(def *Default) {
	if f.IsDefault(def) {
		return
	}
	f.heapPayload().assign(def.content.Bytes(), nil)
}

// AssignWithDefault copies other's contents into f, unless the two already
// share a payload. An unset other contributes the default contents, leaving
// f set. Both holders must be arena-free.
func (f *Field) AssignWithDefault(def *Default, other *Field) {
	// Aliased payloads make the copy a self-assignment; skip it.
	if f.payload() == other.payload() {
		return
	}
	f.SetBytesNoArena(def, other.heapPayload().Bytes())
}

// heapPayload returns the payload, asserting the Heap representation that
// the NoArena operations rely on.
func (f *Field) heapPayload() *String {
	debug.Assert(!f.p.IsNil(), "use of an uninitialized Field")
	return f.p.As(tagptr.Heap)
}

// createNoArena builds the payload for the field's first value.
//
//go:noinline
func (f *Field) createNoArena(v []byte) *String {
	s := NewStringBytes(v)
	f.p.Set(s, tagptr.Heap)
	return s
}
