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

import "github.com/arenastr/arenastr/internal/tagptr"

// Hooks for the external test package.

const InlineCap = inlineCap

// KeptCount reports how many values a has been asked to keep alive.
func KeptCount(a *Arena) int {
	return a.impl.Kept()
}

// IsHeapRep reports whether f currently points at a heap-allocated payload.
func IsHeapRep(f *Field) bool {
	return f.p.Is(tagptr.Heap)
}

// IsArenaRep reports whether f currently points at an arena-resident payload.
func IsArenaRep(f *Field) bool {
	return f.p.Is(tagptr.Arena)
}

// PayloadPtr returns f's payload without rep checks, for identity assertions.
func PayloadPtr(f *Field) *String {
	return f.p.Get()
}
