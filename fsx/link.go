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
	"errors"
	"io"
	"os"

	"github.com/moby/sys/symlink"

	bpath "github.com/build2/butl/path"
)

// Symlink creates newname as a symbolic link to oldname. dir indicates
// the link's flavor but is not consulted on any platform: on POSIX
// symlinks carry no flavor, and on Windows os.Symlink creates a
// directory symbolic link when oldname exists as a directory. No
// junction is created.
func Symlink(oldname string, newname bpath.Path, dir bool) error {
	err := createSymlink(oldname, newname.String(), dir)
	return ThrowOS("symlink", newname.String(), err)
}

// Hardlink creates newname as a hard link to oldname.
func Hardlink(oldname bpath.Path, newname bpath.Path) error {
	err := os.Link(oldname.String(), newname.String())
	return ThrowOS("link", newname.String(), err)
}

// AnyLink creates newname referring to the same content as oldname,
// trying a hard link first, then a symbolic link, then falling back to a
// byte-for-byte copy, per spec.md §4.C.
func AnyLink(oldname bpath.Path, newname bpath.Path) error {
	if err := os.Link(oldname.String(), newname.String()); err == nil {
		return nil
	}

	if err := createSymlink(oldname.String(), newname.String(), false); err == nil {
		return nil
	}

	return copyFile(oldname.String(), newname.String())
}

func copyFile(oldname, newname string) error {
	src, err := os.Open(oldname)
	if err != nil {
		return ThrowOS("copy", oldname, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return ThrowOS("copy", oldname, err)
	}

	dst, err := os.OpenFile(newname, os.O_RDWR|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return ThrowOS("copy", newname, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return ThrowOS("copy", newname, err)
	}

	return nil
}

// Readlink returns the target of the symbolic link named by p.
func Readlink(p bpath.Path) (string, error) {
	target, err := os.Readlink(p.String())
	if err != nil {
		return "", ThrowOS("readlink", p.String(), err)
	}

	return target, nil
}

// IsDangling reports whether p names a symbolic link whose target does
// not (transitively) resolve to an existing entry, resolving the link
// chain with github.com/moby/sys/symlink's EvalSymlinks (an unscoped
// resolver: the chain may lead anywhere on the filesystem).
func IsDangling(p bpath.Path) (bool, error) {
	fi, err := os.Lstat(p.String())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, ThrowOS("lstat", p.String(), err)
	}

	if fi.Mode()&os.ModeSymlink == 0 {
		return false, nil
	}

	resolved, err := symlink.EvalSymlinks(p.String())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}

		return false, ThrowOS("eval-symlinks", p.String(), err)
	}

	_, err = os.Stat(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}

	return false, ThrowOS("stat", resolved, err)
}
