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

package json_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/build2/butl/json"
)

func kinds(t *testing.T, p *json.Parser, n int) []json.EventKind {
	t.Helper()

	var got []json.EventKind

	for i := 0; i < n; i++ {
		ev, err := p.Next()
		assert.NilError(t, err)
		got = append(got, ev.Kind)
	}

	return got
}

// TestParserScenarioS6Separated reproduces spec.md scenario S6: parsing
// "[1,2]\n[3]" in multi-value mode with "\n" as the required separator
// yields begin-array, number(1), number(2), end-array, begin-array,
// number(3), end-array, end-of-stream.
func TestParserScenarioS6Separated(t *testing.T) {
	p := json.NewParser([]byte("[1,2]\n[3]"), "s6", json.MultiValue("\n"))

	got := kinds(t, p, 8)
	assert.DeepEqual(t, got, []json.EventKind{
		json.BeginArray, json.Number, json.Number, json.EndArray,
		json.BeginArray, json.Number, json.EndArray,
		json.EndOfStream,
	})
}

// TestParserScenarioS6MissingSeparator checks that the same input
// without the newline is a parse error in multi-value mode.
func TestParserScenarioS6MissingSeparator(t *testing.T) {
	p := json.NewParser([]byte("[1,2][3]"), "s6", json.MultiValue("\n"))

	for i := 0; i < 4; i++ {
		_, err := p.Next()
		assert.NilError(t, err)
	}

	_, err := p.Next()
	assert.ErrorContains(t, err, "missing separator between JSON values")
}

func TestParserObjectWithNameSkip(t *testing.T) {
	p := json.NewParser([]byte(`{"a":1,"b":"x","c":[1,2]}`), "t")

	ev, err := p.NextExpect(json.BeginObject)
	assert.NilError(t, err)
	assert.Equal(t, ev.Kind, json.BeginObject)

	ev, err = p.NextExpectName("b", true)
	assert.NilError(t, err)
	assert.Equal(t, ev.Value, "b")

	ev, err = p.NextExpect(json.String)
	assert.NilError(t, err)
	assert.Equal(t, ev.Value, "x")

	ev, err = p.NextExpectName("c", false)
	assert.NilError(t, err)
	assert.Equal(t, ev.Value, "c")

	assert.NilError(t, p.NextExpectValueSkip())

	ev, err = p.NextExpect(json.EndObject)
	assert.NilError(t, err)
	assert.Equal(t, ev.Kind, json.EndObject)
}

func TestParserPeekDoesNotConsume(t *testing.T) {
	p := json.NewParser([]byte(`true`), "t")

	a, err := p.Peek()
	assert.NilError(t, err)

	b, err := p.Peek()
	assert.NilError(t, err)
	assert.DeepEqual(t, a, b)

	c, err := p.Next()
	assert.NilError(t, err)
	assert.DeepEqual(t, a, c)
}

func TestParserStringEscapesAndSurrogatePair(t *testing.T) {
	p := json.NewParser([]byte(`"a\n\tA\uD83D\uDE00"`), "t")

	ev, err := p.NextExpect(json.String)
	assert.NilError(t, err)
	assert.Equal(t, ev.Value, "a\n\tA\U0001F600")
}

func TestParserNumberConversions(t *testing.T) {
	p := json.NewParser([]byte(`-12.5`), "t")

	ev, err := p.NextExpect(json.Number)
	assert.NilError(t, err)

	f, err := ev.Float64()
	assert.NilError(t, err)
	assert.Equal(t, f, -12.5)
}

func TestParserRejectsTrailingDataSingleValue(t *testing.T) {
	p := json.NewParser([]byte(`1 2`), "t")

	_, err := p.Next()
	assert.NilError(t, err)

	_, err = p.Next()
	assert.ErrorContains(t, err, "trailing data")
}
