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

package path_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/build2/butl/path"
)

func TestIteratorForward(t *testing.T) {
	p := path.MustNew(path.POSIX, "/usr/local/bin")

	it := p.Iterator()
	assert.DeepEqual(t, it.Components(), []string{"usr", "local", "bin"})
}

func TestIteratorReverse(t *testing.T) {
	p := path.MustNew(path.POSIX, "/usr/local/bin")

	it := p.Iterator()
	rev := it.ReverseComponents()

	assert.Equal(t, rev[0], "bin")
	assert.Equal(t, rev[1], "local")
	assert.Equal(t, rev[2], "usr")
}

func TestIteratorIsLast(t *testing.T) {
	p := path.MustNew(path.POSIX, "/a/b")
	it := p.Iterator()

	assert.Assert(t, it.Next())
	assert.Equal(t, it.Part(), "a")
	assert.Assert(t, !it.IsLast())

	assert.Assert(t, it.Next())
	assert.Equal(t, it.Part(), "b")
	assert.Assert(t, it.IsLast())

	assert.Assert(t, !it.Next())
}
