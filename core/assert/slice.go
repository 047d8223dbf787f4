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

package assert

import (
	"bytes"
	"reflect"
)

// OnSlice is the result of calling ThatSlice on an Assertion.
// It provides assertion tests that are specific to slice types.
type OnSlice struct {
	*Assertion
	slice interface{}
}

// ThatSlice returns an OnSlice for assertions on slice type objects.
// Calling this with a non slice type will result in panics.
func (a *Assertion) ThatSlice(slice interface{}) OnSlice {
	return OnSlice{Assertion: a, slice: slice}
}

// IsEmpty asserts that the slice was of length 0.
func (o OnSlice) IsEmpty() bool {
	value := reflect.ValueOf(o.slice)
	return o.Compare(value.Len(), "==", "empty").Test(value.Len() == 0)
}

// IsLength asserts that the slice has exactly the specified number of
// elements.
func (o OnSlice) IsLength(length int) bool {
	value := reflect.ValueOf(o.slice)
	return o.Compare(value.Len(), "length ==", length).Test(value.Len() == length)
}

// Equals asserts the slice matches expected.
// Byte slices are compared directly; other slice types fall back to a deep
// comparison. Only the index of the first mismatch is reported, as the
// surfaces under test run to megabytes.
func (o OnSlice) Equals(expected interface{}) bool {
	if g, ok := o.slice.([]byte); ok {
		if e, ok := expected.([]byte); ok {
			if len(g) != len(e) {
				return o.Compare(len(g), "length ==", len(e)).Test(false)
			}
			if i := firstMismatch(g, e); i >= 0 {
				return o.Printf("byte %d\t", i).Compare(g[i], "==", e[i]).Test(false)
			}
			return true
		}
	}
	return o.Compare(o.slice, "deep ==", expected).Test(reflect.DeepEqual(o.slice, expected))
}

func firstMismatch(g, e []byte) int {
	if bytes.Equal(g, e) {
		return -1
	}
	for i := range g {
		if g[i] != e[i] {
			return i
		}
	}
	return -1
}
