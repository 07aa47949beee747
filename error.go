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
)

// errWire is an error returned by the wire adjunct.
//
// It unwraps to the protowire error underneath, so truncation is still
// detectable as io.ErrUnexpectedEOF via [errors.Is].
type errWire struct {
	cause error
}

// Unwrap implements error unwrapping viz [errors.Unwrap].
func (e *errWire) Unwrap() error {
	return e.cause
}

// Error implements [error].
func (e *errWire) Error() string {
	return fmt.Sprintf("arenastr: malformed length-delimited field: %v", e.cause)
}
