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

package fsx_test

import (
	"os"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/build2/butl/fsx"
	"github.com/build2/butl/path"
)

func tmpDir(t *testing.T) path.Dir {
	t.Helper()

	dir := t.TempDir()
	d, err := path.NewDir(path.Current, dir)
	assert.NilError(t, err)

	return d
}

func TestCreateRemoveDirectory(t *testing.T) {
	base := tmpDir(t)
	sub := base.Join("sub")
	subDir, err := path.NewDir(path.Current, sub.String())
	assert.NilError(t, err)

	assert.NilError(t, fsx.CreateDirectory(subDir, fsx.DefaultDirPerm))
	assert.Assert(t, fsx.Exists(sub))

	err = fsx.CreateDirectory(subDir, fsx.DefaultDirPerm)
	assert.Assert(t, fsx.IsExist(err))

	assert.NilError(t, fsx.RemoveDirectory(subDir, false))
	assert.Assert(t, !fsx.Exists(sub))
}

func TestCreateDirectoryNoParent(t *testing.T) {
	base := tmpDir(t)
	missing, err := path.NewDir(path.Current, base.Join("a", "b").String())
	assert.NilError(t, err)

	err = fsx.CreateDirectory(missing, fsx.DefaultDirPerm)
	assert.Assert(t, fsx.IsNoParent(err))
}

func TestRemoveDirectoryRecursive(t *testing.T) {
	base := tmpDir(t)
	nested := base.Join("a", "b")
	nestedDir, err := path.NewDir(path.Current, nested.String())
	assert.NilError(t, err)

	assert.NilError(t, fsx.CreateDirectoryAll(nestedDir, fsx.DefaultDirPerm))

	f, err := fsx.CreateFile(nested.Join("file.txt"), fsx.DefaultFilePerm)
	assert.NilError(t, err)
	assert.NilError(t, f.Close())

	aDir, err := path.NewDir(path.Current, base.Join("a").String())
	assert.NilError(t, err)

	assert.NilError(t, fsx.RemoveDirectory(aDir, true))
	assert.Assert(t, !fsx.Exists(base.Join("a")))
}

func TestRenameAndStat(t *testing.T) {
	base := tmpDir(t)
	src := base.Join("src.txt")
	dst := base.Join("dst.txt")

	f, err := fsx.CreateFile(src, fsx.DefaultFilePerm)
	assert.NilError(t, err)
	assert.NilError(t, f.Close())

	assert.NilError(t, fsx.Rename(src, dst))

	fi, err := fsx.Stat(dst)
	assert.NilError(t, err)
	assert.Assert(t, !fi.IsDir())
}

func TestSymlinkAndDangling(t *testing.T) {
	base := tmpDir(t)
	target := base.Join("target.txt")
	f, err := fsx.CreateFile(target, fsx.DefaultFilePerm)
	assert.NilError(t, err)
	assert.NilError(t, f.Close())

	link := base.Join("link.txt")
	assert.NilError(t, fsx.Symlink(target.String(), link, false))

	dangling, err := fsx.IsDangling(link)
	assert.NilError(t, err)
	assert.Assert(t, !dangling)

	assert.NilError(t, fsx.RemoveFile(target))

	dangling, err = fsx.IsDangling(link)
	assert.NilError(t, err)
	assert.Assert(t, dangling)
}

func TestDirectoryIteratorDanglingModes(t *testing.T) {
	base := tmpDir(t)
	target := base.Join("present.txt")
	f, err := fsx.CreateFile(target, fsx.DefaultFilePerm)
	assert.NilError(t, err)
	assert.NilError(t, f.Close())

	assert.NilError(t, os.Symlink(base.Join("missing.txt").String(), base.Join("dangling.txt").String()))

	it, err := fsx.NewIterator(base, fsx.IgnoreDangling)
	assert.NilError(t, err)
	defer it.Close()

	var seen []string
	for {
		e, err := it.Next()
		assert.NilError(t, err)

		if e == nil {
			break
		}

		seen = append(seen, e.Leaf.Leaf().String())
	}

	assert.Equal(t, len(seen), 1)
	assert.Equal(t, seen[0], "present.txt")
}

func TestDirectoryIteratorDetectDangling(t *testing.T) {
	base := tmpDir(t)
	assert.NilError(t, os.Symlink(base.Join("missing.txt").String(), base.Join("dangling.txt").String()))

	it, err := fsx.NewIterator(base, fsx.DetectDangling)
	assert.NilError(t, err)
	defer it.Close()

	_, err = it.Next()
	assert.Assert(t, err != nil)
}
