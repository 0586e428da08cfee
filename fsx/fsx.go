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

package fsx

import (
	"io/fs"
	"os"

	bpath "github.com/build2/butl/path"
)

// DefaultDirPerm and DefaultFilePerm mirror the teacher's
// avfs.DefaultDirPerm / avfs.DefaultFilePerm constants.
const (
	DefaultDirPerm  = fs.FileMode(0o755)
	DefaultFilePerm = fs.FileMode(0o644)
)

// CreateDirectory creates dir. It reports IsExist(err) if dir is already
// present and IsNoParent(err) if dir's parent does not exist, per
// spec.md §4.C.
func CreateDirectory(dir bpath.Dir, perm fs.FileMode) error {
	err := os.Mkdir(dir.String(), perm)
	return ThrowOS("mkdir", dir.String(), err)
}

// CreateDirectoryAll creates dir and any missing parents (like mkdir -p);
// it is not an error if dir already exists.
func CreateDirectoryAll(dir bpath.Dir, perm fs.FileMode) error {
	err := os.MkdirAll(dir.String(), perm)
	return ThrowOS("mkdir -p", dir.String(), err)
}

// RemoveDirectory removes dir. If recursive is true, it removes dir and
// everything under it in post-order (children before parents), matching
// spec.md §4.C's "recursive variant iterates in post-order".
func RemoveDirectory(dir bpath.Dir, recursive bool) error {
	if !recursive {
		err := os.Remove(dir.String())
		return ThrowOS("rmdir", dir.String(), err)
	}

	err := removeAllPostOrder(dir.String())

	return ThrowOS("rmdir -r", dir.String(), err)
}

// removeAllPostOrder is functionally equivalent to os.RemoveAll but
// walks in explicit post-order to honor spec.md's stated iteration
// order, rather than relying on os.RemoveAll's unspecified traversal.
func removeAllPostOrder(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}

		for _, e := range entries {
			if err := removeAllPostOrder(path + string(os.PathSeparator) + e.Name()); err != nil {
				return err
			}
		}
	}

	return os.Remove(path)
}

// CreateFile creates (or truncates) the named file.
func CreateFile(p bpath.Path, perm fs.FileMode) (*os.File, error) {
	f, err := os.OpenFile(p.String(), os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return nil, ThrowOS("create", p.String(), err)
	}

	return f, nil
}

// RemoveFile removes the named file.
func RemoveFile(p bpath.Path) error {
	return ThrowOS("rm", p.String(), os.Remove(p.String()))
}

// Rename renames oldpath to newpath. It is atomic when both paths are on
// the same filesystem, per spec.md §4.C.
func Rename(oldpath, newpath bpath.Path) error {
	err := os.Rename(oldpath.String(), newpath.String())
	return ThrowOS("rename", oldpath.String()+" -> "+newpath.String(), err)
}

// Stat returns the nominal view of p: following symlinks.
func Stat(p bpath.Path) (fs.FileInfo, error) {
	fi, err := os.Stat(p.String())
	if err != nil {
		return nil, ThrowOS("stat", p.String(), err)
	}

	return fi, nil
}

// LStat returns the link view of p: not following a trailing symlink.
func LStat(p bpath.Path) (fs.FileInfo, error) {
	fi, err := os.Lstat(p.String())
	if err != nil {
		return nil, ThrowOS("lstat", p.String(), err)
	}

	return fi, nil
}

// Exists reports whether p names an existing entry (following symlinks).
func Exists(p bpath.Path) bool {
	_, err := os.Stat(p.String())
	return err == nil
}
