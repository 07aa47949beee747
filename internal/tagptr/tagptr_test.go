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

package tagptr_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/arenastr/arenastr/internal/tagptr"
	"github.com/arenastr/arenastr/internal/xunsafe"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	v := new(uint64)

	p := tagptr.Make(v, tagptr.Heap)
	assert.Same(t, v, p.Get())
	assert.Equal(t, tagptr.Heap, p.Rep())
	assert.True(t, p.Is(tagptr.Heap))
	assert.False(t, p.Is(tagptr.Arena))
	assert.Same(t, v, p.As(tagptr.Heap))

	p = tagptr.Make(v, tagptr.Arena)
	assert.Same(t, v, p.Get())
	assert.Equal(t, tagptr.Arena, p.Rep())
	assert.True(t, p.Is(tagptr.Arena))
	assert.False(t, p.Is(tagptr.Heap))
}

func TestSet(t *testing.T) {
	t.Parallel()

	a, b := new(uint64), new(uint64)

	var p tagptr.Ptr[uint64]
	p.Set(a, tagptr.Arena)
	assert.Same(t, a, p.Get())
	assert.Equal(t, tagptr.Arena, p.Rep())

	p.Set(b, tagptr.Heap)
	assert.Same(t, b, p.Get())
	assert.Equal(t, tagptr.Heap, p.Rep())
}

func TestNil(t *testing.T) {
	t.Parallel()

	var zero tagptr.Ptr[uint64]
	assert.True(t, zero.IsNil())
	assert.Nil(t, zero.Get())
	assert.Equal(t, tagptr.Heap, zero.Rep())

	// A pointer to a shared sentinel is not nil.
	sentinel := new(uint64)
	p := tagptr.Make(sentinel, tagptr.Heap)
	assert.False(t, p.IsNil())

	p = tagptr.Make[uint64](nil, tagptr.Arena)
	assert.True(t, p.IsNil())
	assert.Equal(t, tagptr.Arena, p.Rep())
}

func TestOneWord(t *testing.T) {
	t.Parallel()

	xunsafe.AssertInlinedAny[tagptr.Ptr[uint64]](t)
	assert.Equal(t, unsafe.Sizeof(uintptr(0)), unsafe.Sizeof(tagptr.Ptr[uint64]{}))
}

func TestComparable(t *testing.T) {
	t.Parallel()

	// Sentinel identity checks compare whole words with ==, tag included.
	v := new(uint64)
	assert.True(t, tagptr.Make(v, tagptr.Heap) == tagptr.Make(v, tagptr.Heap))
	assert.False(t, tagptr.Make(v, tagptr.Heap) == tagptr.Make(v, tagptr.Arena))
	assert.False(t, tagptr.Make(v, tagptr.Heap) == tagptr.Make(new(uint64), tagptr.Heap))

	var zero tagptr.Ptr[uint64]
	assert.True(t, zero == tagptr.Ptr[uint64]{})
}
