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

// TestDirectoryLeafInvariant checks spec.md invariant 1: for every path p
// that is not a root, p.Directory()/p.Leaf() == p, and p.Directory() is
// a directory-path.
func TestDirectoryLeafInvariant(t *testing.T) {
	cases := []string{
		"/a/b/c",
		"/a",
		"a/b/c",
		"a",
		"/a/b/",
	}

	for _, s := range cases {
		p := path.MustNew(path.POSIX, s)
		if p.IsRoot() {
			continue
		}

		rebuilt := p.Directory().Join(p.Leaf().String())
		assert.Equal(t, rebuilt.Normalize().String(), p.Normalize().String())
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	cases := []string{
		"/a/./b/../c",
		"a//b///c",
		"../../a/b",
		".",
		"/",
		"",
	}

	for _, s := range cases {
		p := path.MustNew(path.POSIX, s)
		once := p.Normalize()
		twice := once.Normalize()
		assert.Equal(t, once.String(), twice.String())
	}
}

func TestWindowsVolumeName(t *testing.T) {
	p := path.MustNew(path.Windows, `C:\foo\bar`)
	assert.Assert(t, p.IsAbsolute())

	root := path.MustNew(path.Windows, `C:\`)
	assert.Assert(t, root.IsRoot())
}

func TestRelativeTo(t *testing.T) {
	base := path.MustNew(path.POSIX, "/a/b")
	target := path.MustNew(path.POSIX, "/a/b/c/d")

	rel, err := target.RelativeTo(base)
	assert.NilError(t, err)
	assert.Equal(t, rel.String(), "c/d")
}

func TestSubSup(t *testing.T) {
	p := path.MustNew(path.POSIX, "/a/b")
	full := path.MustNew(path.POSIX, "/a/b/c")
	suffix := path.MustNew(path.POSIX, "b/c")

	assert.Assert(t, p.Sub(full))
	assert.Assert(t, suffix.Sup(full))
}

func TestInvalidPathEmbeddedNUL(t *testing.T) {
	_, err := path.New(path.POSIX, "a\x00b")
	assert.ErrorContains(t, err, "NUL")
}
