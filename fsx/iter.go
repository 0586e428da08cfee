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
	"io/fs"
	"os"

	bpath "github.com/build2/butl/path"
)

// DanglingMode controls how a directory Iterator surfaces an
// inaccessible or dangling symlink entry, per spec.md §4.C.
type DanglingMode int

const (
	// NoFollow does not resolve symlinks at all; link and nominal stat
	// are the same (the link itself).
	NoFollow DanglingMode = iota
	// DetectDangling resolves symlinks and stops iteration with an error
	// on the first dangling one.
	DetectDangling
	// IgnoreDangling resolves symlinks and silently skips dangling ones.
	IgnoreDangling
)

// Entry is spec.md §3's dir-entry: a base directory, a leaf path, and
// cached stat info with a nominal (follows symlinks) and a link (does
// not follow) view.
type Entry struct {
	Base    bpath.Dir
	Leaf    bpath.Path
	Nominal fs.FileInfo // nil if the entry is a dangling symlink
	Link    fs.FileInfo
}

// Iterator lazily iterates the entries of a directory. It is restartable
// only by re-opening the directory via NewIterator (spec.md §3).
type Iterator struct {
	base bpath.Dir
	mode DanglingMode
	f    *os.File
	err  error
}

// NewIterator opens dir for iteration under the given DanglingMode.
func NewIterator(dir bpath.Dir, mode DanglingMode) (*Iterator, error) {
	f, err := os.Open(dir.String())
	if err != nil {
		return nil, ThrowOS("opendir", dir.String(), err)
	}

	return &Iterator{base: dir, mode: mode, f: f}, nil
}

// Close releases the underlying directory handle.
func (it *Iterator) Close() error {
	return it.f.Close()
}

// Next returns the next Entry, or (nil, nil) at end of directory. Under
// DetectDangling, a dangling symlink entry is returned as an error rather
// than an Entry; under IgnoreDangling it is silently skipped.
func (it *Iterator) Next() (*Entry, error) {
	for {
		names, err := it.f.Readdirnames(1)
		if len(names) == 0 {
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, ThrowOS("readdir", it.base.String(), err)
			}

			return nil, nil
		}

		name := names[0]
		leaf := it.base.Join(name)

		link, err := os.Lstat(leaf.String())
		if err != nil {
			return nil, ThrowOS("lstat", leaf.String(), err)
		}

		if it.mode == NoFollow || link.Mode()&os.ModeSymlink == 0 {
			return &Entry{Base: it.base, Leaf: leaf, Nominal: link, Link: link}, nil
		}

		nominal, statErr := os.Stat(leaf.String())
		if statErr == nil {
			return &Entry{Base: it.base, Leaf: leaf, Nominal: nominal, Link: link}, nil
		}

		if !os.IsNotExist(statErr) {
			return nil, ThrowOS("stat", leaf.String(), statErr)
		}

		// dangling symlink
		switch it.mode {
		case DetectDangling:
			return nil, &OSError{Op: "stat", Path: leaf.String(), Err: statErr}
		case IgnoreDangling:
			continue
		default:
			return &Entry{Base: it.base, Leaf: leaf, Nominal: nil, Link: link}, nil
		}
	}
}
