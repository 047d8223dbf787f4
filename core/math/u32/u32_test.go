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

package u32_test

import (
	"testing"

	"github.com/MarkTseng/skyline/core/assert"
	"github.com/MarkTseng/skyline/core/math/u32"
)

func TestHelpers(t *testing.T) {
	assert := assert.To(t)
	assert.For("DivideCeil").That(u32.DivideCeil(100, 64)).Equals(uint32(2))
	assert.For("AlignUp").That(u32.AlignUp(100, 64)).Equals(uint32(128))
	assert.For("AlignDown").That(u32.AlignDown(100, 64)).Equals(uint32(64))
	assert.For("IsAligned").That(u32.IsAligned(128, 64)).Equals(true)
	assert.For("NextPow2").That(u32.NextPow2(33)).Equals(uint32(64))
	assert.For("NextPow2 zero").That(u32.NextPow2(0)).Equals(uint32(1))
	assert.For("Min").That(u32.Min(3, 5)).Equals(uint32(3))
	assert.For("Max").That(u32.Max(3, 5)).Equals(uint32(5))
}
