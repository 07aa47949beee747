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

// Package tagptr provides a pointer that carries a one-bit representation
// tag in its low bit.
//
// The pointee's alignment must be at least 2, so the low bit of a valid
// pointer is always zero and can be repurposed for the tag. A tagged value
// still points into the pointee's allocation (at offset 0 or 1), so storing
// a [Ptr] in GC-scanned memory keeps the pointee alive just like an ordinary
// pointer would.
package tagptr

import (
	"unsafe"

	"github.com/arenastr/arenastr/internal/debug"
)

// Rep identifies which representation a tagged pointer refers to.
type Rep uintptr

const (
	// Heap marks a pointee whose storage is managed by the Go heap.
	Heap Rep = 0
	// Arena marks a pointee whose storage lives on an arena.
	Arena Rep = 1
)

const tagMask = 1

// Ptr is a pointer to T plus a [Rep] tag packed into one word.
//
// Ptr wraps the word in a struct, since Go does not allow methods on a
// named pointer type. The wrapper adds no size, is comparable word-for-word
// with ==, and the GC still traces the pointer inside it.
//
// The zero Ptr is nil with the Heap tag. A nil Ptr is distinct from any
// tagged pointer to a real value, including shared sentinels.
type Ptr[T any] struct {
	p unsafe.Pointer
}

// Make builds a tagged pointer out of q and rep.
func Make[T any](q *T, rep Rep) Ptr[T] {
	debug.Assert(uintptr(unsafe.Pointer(q))&tagMask == 0, "misaligned pointee: %p", q)
	return Ptr[T]{unsafe.Add(unsafe.Pointer(q), rep)}
}

// Set replaces this pointer with a tagged pointer to q.
func (p *Ptr[T]) Set(q *T, rep Rep) {
	*p = Make(q, rep)
}

// Get returns the stored pointer with the tag bit masked off, regardless of
// which representation it is.
func (p Ptr[T]) Get() *T {
	return (*T)(unsafe.Pointer(uintptr(p.p) &^ tagMask))
}

// Rep returns the stored representation tag.
func (p Ptr[T]) Rep() Rep {
	return Rep(uintptr(p.p) & tagMask)
}

// Is reports whether the stored tag is rep. It never inspects the pointee.
func (p Ptr[T]) Is(rep Rep) bool {
	return p.Rep() == rep
}

// As is like [Ptr.Get], but asserts in debug mode that the stored tag is
// rep.
func (p Ptr[T]) As(rep Rep) *T {
	debug.Assert(p.Is(rep), "representation mismatch: got %d, want %d", p.Rep(), rep)
	return p.Get()
}

// IsNil reports whether the masked pointer is nil. Pointing at a shared
// sentinel is not nil.
func (p Ptr[T]) IsNil() bool {
	return uintptr(p.p)&^tagMask == 0
}
