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

package path

import "strings"

// Dir is a Path with the invariant that it lexically denotes a
// directory (spec.md §3): its string is either empty, a root, or ends in
// exactly one separator.
type Dir struct {
	s string
	p Platform
}

// NewDir constructs a Dir, appending a single trailing separator unless
// s is already empty or a root.
func NewDir(p Platform, s string) (Dir, error) {
	if err := validate(p, s); err != nil {
		return Dir{}, err
	}

	return Dir{s: normalizeDirSuffix(p, s), p: p}, nil
}

func normalizeDirSuffix(p Platform, s string) string {
	if s == "" || isRootString(p, s) {
		return s
	}

	// collapse any run of trailing separators to exactly one
	trimmed := s
	for len(trimmed) > 0 && p.IsPathSeparator(trimmed[len(trimmed)-1]) {
		trimmed = trimmed[:len(trimmed)-1]
	}

	if trimmed == "" {
		// s was entirely separators but not recognized as a root string
		// (e.g. a relative path of just "/" on an unusual platform);
		// keep a single separator.
		return string(p.separator)
	}

	return trimmed + string(p.separator)
}

// Platform returns the platform the Dir was constructed with.
func (d Dir) Platform() Platform { return d.p }

// String returns the raw directory-path string.
func (d Dir) String() string { return d.s }

// Empty reports whether d is the empty path.
func (d Dir) Empty() bool { return d.s == "" }

// IsRoot reports whether d denotes a filesystem root.
func (d Dir) IsRoot() bool { return isRootString(d.p, d.s) }

// IsAbsolute reports whether d is absolute.
func (d Dir) IsAbsolute() bool { return isAbs(d.p, d.s) }

// Path returns d as a Path (e.g. to use Path-only operations like
// Extension); the trailing separator is preserved in the string but does
// not affect Base/Dir semantics since those already strip it.
func (d Dir) Path() Path { return Path{s: d.s, p: d.p} }

// Normalize collapses "." and ".." lexically; idempotent.
func (d Dir) Normalize() Dir {
	return Dir{s: normalizeDirSuffix(d.p, clean(d.p, d.s)), p: d.p}
}

// Join appends a relative Path (or raw component) under d, returning the
// resulting Path (not necessarily a directory).
func (d Dir) Join(elems ...string) Path {
	// d.s keeps its trailing separator (join cleans the doubled one), so
	// a root Dir is not reduced to an empty leading element.
	all := append([]string{d.s}, elems...)

	return Path{s: join(d.p, all), p: d.p}
}

// Leaf returns the name of the directory itself (its last component).
func (d Dir) Leaf() Path {
	trimmed := strings.TrimSuffix(d.s, string(d.p.separator))

	return Path{s: base(d.p, trimmed), p: d.p}
}

// Directory returns the parent of d.
func (d Dir) Directory() Dir {
	trimmed := strings.TrimSuffix(d.s, string(d.p.separator))
	parent := dir(d.p, trimmed)

	return Dir{s: normalizeDirSuffix(d.p, parent), p: d.p}
}

// Iterator returns a left-to-right component Iterator over d.
func (d Dir) Iterator() *Iterator {
	return newIterator(d.p, strings.TrimSuffix(d.s, string(d.p.separator)))
}
