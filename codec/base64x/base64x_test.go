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

package base64x_test

import (
	"bytes"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/build2/butl/codec/base64x"
)

// TestRoundTrip encodes spec.md invariant 3: base64_decode(base64_encode(b)) == b.
func TestRoundTrip(t *testing.T) {
	b := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog, "), 5)

	decoded, err := base64x.Decode(base64x.Encode(b))
	assert.NilError(t, err)
	assert.DeepEqual(t, decoded, b)
}

func TestRoundTripURL(t *testing.T) {
	b := []byte{0xff, 0xfe, 0x00, 0x01, 0x02, 0x03}

	decoded, err := base64x.DecodeURL(base64x.EncodeURL(b))
	assert.NilError(t, err)
	assert.DeepEqual(t, decoded, b)
}

func TestEncodeWrapsAt76(t *testing.T) {
	b := bytes.Repeat([]byte{'A'}, 100)
	out := base64x.Encode(b)

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.Assert(t, len(line) <= 76)
	}
}

func TestEncodeURLHasNoPaddingOrNewlines(t *testing.T) {
	out := base64x.EncodeURL([]byte("x"))
	assert.Assert(t, !strings.Contains(out, "="))
	assert.Assert(t, !strings.Contains(out, "\n"))
}

// TestDecodeNewlineTolerant encodes spec.md's requirement that decoding
// is tolerant of a newline-containing output of Encode.
func TestDecodeNewlineTolerant(t *testing.T) {
	b := []byte("hello, newline-tolerant world")
	encoded := base64x.Encode(b)
	assert.Assert(t, strings.Contains(encoded, "\n"))

	decoded, err := base64x.Decode(encoded)
	assert.NilError(t, err)
	assert.DeepEqual(t, decoded, b)
}

func TestDecodeRejectsInvalidByte(t *testing.T) {
	_, err := base64x.Decode("not!valid$$base64")
	assert.ErrorContains(t, err, "invalid argument")
}
