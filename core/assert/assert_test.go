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

package assert_test

import (
	"testing"

	"github.com/MarkTseng/skyline/core/assert"
)

// recorder is an Output that remembers whether any assertion failed.
type recorder struct {
	errors int
	fatals int
	logs   int
}

func (r *recorder) Fatal(...interface{}) { r.fatals++ }
func (r *recorder) Error(...interface{}) { r.errors++ }
func (r *recorder) Log(...interface{})   { r.logs++ }

func TestPassingAssertionsAreSilent(t *testing.T) {
	r := &recorder{}
	assert := assert.To(r)
	assert.For("value").That(42).Equals(42)
	assert.For("integer").ThatInteger(512).IsAtLeast(512)
	assert.For("slice").ThatSlice([]byte{1, 2, 3}).Equals([]byte{1, 2, 3})
	assert.For("error").ThatError(nil).Succeeded()
	if r.errors != 0 || r.fatals != 0 {
		t.Errorf("passing assertions produced output: %+v", *r)
	}
}

func TestFailingAssertionsReport(t *testing.T) {
	r := &recorder{}
	assert := assert.To(r)
	assert.For("value").That(42).Equals(43)
	assert.For("slice").ThatSlice([]byte{1, 2, 3}).Equals([]byte{1, 9, 3})
	assert.For("length").ThatSlice([]byte{1}).Equals([]byte{1, 2})
	if r.errors != 3 {
		t.Errorf("got %d errors, expected 3", r.errors)
	}
}
