//
//  Copyright 2024 The butl authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//  	http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package env_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/build2/butl/env"
)

func TestUcaseLcase(t *testing.T) {
	assert.Equal(t, env.Ucase("Hello, World! 123"), "HELLO, WORLD! 123")
	assert.Equal(t, env.Lcase("Hello, World! 123"), "hello, world! 123")
}

func TestIcasecmp(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abc", "ABC", 0},
		{"abc", "abd", -1},
		{"abd", "abc", 1},
		{"abc", "abcd", -1},
		{"abcd", "abc", 1},
		{"", "", 0},
	}

	for _, tc := range tests {
		got := env.Icasecmp(tc.a, tc.b)
		switch {
		case tc.want == 0:
			assert.Equal(t, got, 0)
		case tc.want < 0:
			assert.Assert(t, got < 0)
		default:
			assert.Assert(t, got > 0)
		}
	}
}
