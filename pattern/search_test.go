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

package pattern_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/valyala/fastrand"
	"gotest.tools/v3/assert"

	bpath "github.com/build2/butl/path"
	"github.com/build2/butl/pattern"
)

func mkTree(t *testing.T, files []string) string {
	t.Helper()

	dir := t.TempDir()

	for _, f := range files {
		full := filepath.Join(dir, filepath.FromSlash(f))
		assert.NilError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		assert.NilError(t, os.WriteFile(full, []byte("x"), 0o644))
	}

	return dir
}

// TestSearchRecursiveWildcard reproduces spec.md scenario S5: under
// a/b/c.txt, a/b/d.txt, a/e/c.txt, the pattern a/**/c.txt matches
// exactly a/b/c.txt and a/e/c.txt.
func TestSearchRecursiveWildcard(t *testing.T) {
	root := mkTree(t, []string{"a/b/c.txt", "a/b/d.txt", "a/e/c.txt"})

	start, err := bpath.NewDir(bpath.Current, root)
	assert.NilError(t, err)

	p, err := pattern.Parse(bpath.Current, "a/**/c.txt")
	assert.NilError(t, err)

	var got []string

	err = pattern.Search(start, p, pattern.Options{}, func(m bpath.Path) (bool, error) {
		rel, err := m.RelativeTo(start.Path())
		if err != nil {
			return false, err
		}

		got = append(got, filepath.ToSlash(rel.String()))

		return true, nil
	})
	assert.NilError(t, err)

	sort.Strings(got)
	assert.DeepEqual(t, got, []string{"a/b/c.txt", "a/e/c.txt"})
}

// TestSearchSelfMatchingWildcard confirms a/***/c.txt additionally
// matches a/c.txt when present, per spec.md's *** semantics.
func TestSearchSelfMatchingWildcard(t *testing.T) {
	root := mkTree(t, []string{"a/c.txt", "a/b/c.txt"})

	start, err := bpath.NewDir(bpath.Current, root)
	assert.NilError(t, err)

	p, err := pattern.Parse(bpath.Current, "a/***/c.txt")
	assert.NilError(t, err)

	var got []string

	err = pattern.Search(start, p, pattern.Options{}, func(m bpath.Path) (bool, error) {
		rel, err := m.RelativeTo(start.Path())
		if err != nil {
			return false, err
		}

		got = append(got, filepath.ToSlash(rel.String()))

		return true, nil
	})
	assert.NilError(t, err)

	sort.Strings(got)
	assert.DeepEqual(t, got, []string{"a/b/c.txt", "a/c.txt"})
}

func TestSearchStopsWhenCallbackReturnsFalse(t *testing.T) {
	root := mkTree(t, []string{"a/1.txt", "a/2.txt", "a/3.txt"})

	start, err := bpath.NewDir(bpath.Current, root)
	assert.NilError(t, err)

	p, err := pattern.Parse(bpath.Current, "a/*.txt")
	assert.NilError(t, err)

	count := 0

	err = pattern.Search(start, p, pattern.Options{}, func(bpath.Path) (bool, error) {
		count++
		return false, nil
	})
	assert.NilError(t, err)
	assert.Equal(t, count, 1)
}

// TestSearchOnRandomTree builds a random tree (grounded in the
// teacher's random-tree generator idiom) and checks that every match
// Search reports really exists and really matches the pattern, and
// that every *.leaf file under the tree is found by a "**/*.leaf"
// search.
func TestSearchOnRandomTree(t *testing.T) {
	root := t.TempDir()

	var leaves []string

	dirs := []string{root}

	for i := 0; i < 12; i++ {
		parent := dirs[fastrand.Uint32n(uint32(len(dirs)))]
		name := "d" + string(rune('a'+i))
		full := filepath.Join(parent, name)
		assert.NilError(t, os.Mkdir(full, 0o755))
		dirs = append(dirs, full)
	}

	for i := 0; i < 20; i++ {
		// skip dirs[0] (root itself): "**" requires at least one
		// intermediate directory level, so a leaf placed directly in
		// root would not match "**/*.leaf".
		parent := dirs[1+fastrand.Uint32n(uint32(len(dirs)-1))]
		full := filepath.Join(parent, "f"+string(rune('a'+i))+".leaf")
		assert.NilError(t, os.WriteFile(full, nil, 0o644))
		leaves = append(leaves, full)
	}

	start, err := bpath.NewDir(bpath.Current, root)
	assert.NilError(t, err)

	p, err := pattern.Parse(bpath.Current, "**/*.leaf")
	assert.NilError(t, err)

	found := make(map[string]bool)

	err = pattern.Search(start, p, pattern.Options{}, func(m bpath.Path) (bool, error) {
		found[m.String()] = true
		return true, nil
	})
	assert.NilError(t, err)

	for _, leaf := range leaves {
		assert.Assert(t, found[leaf], leaf)
	}
}
