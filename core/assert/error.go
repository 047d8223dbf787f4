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

import "errors"

// OnError is the result of calling ThatError on an Assertion.
// It provides assertion tests that are specific to error types.
type OnError struct {
	*Assertion
	err error
}

// ThatError returns an OnError for error based assertions.
func (a *Assertion) ThatError(err error) OnError {
	return OnError{Assertion: a, err: err}
}

// Succeeded asserts that the error was nil.
func (o OnError) Succeeded() bool {
	return o.Compare(o.err, "==", "nil").Test(o.err == nil)
}

// Failed asserts that the error was not nil.
func (o OnError) Failed() bool {
	return o.Compare(o.err, "!=", "nil").Test(o.err != nil)
}

// Equals asserts that the error matches the expected error, by identity or
// through its Is chain.
func (o OnError) Equals(expect error) bool {
	return o.Compare(o.err, "is", expect).Test(errors.Is(o.err, expect))
}
