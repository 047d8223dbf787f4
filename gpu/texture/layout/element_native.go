// Copyright (C) 2026 The Skyline Authors.
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

//go:build (amd64 || arm64) && !purego

package layout

import "unsafe"

// These targets support unaligned loads and stores natively, so elements are
// moved directly through pointer casts.

// load reads one element from b at byte offset off. The caller guarantees
// that off plus the element size does not exceed len(b).
func load[E element](b []byte, off uint64) E {
	return *(*E)(unsafe.Pointer(&b[off]))
}

// store writes one element to b at byte offset off. The caller guarantees
// that off plus the element size does not exceed len(b).
func store[E element](b []byte, off uint64, e E) {
	*(*E)(unsafe.Pointer(&b[off])) = e
}
