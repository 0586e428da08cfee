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

import (
	"path/filepath"
	"strings"

	"github.com/build2/butl/env"
)

// Path is a lexical, platform-aware path (spec.md §3). The empty Path is
// the identity for Join/concatenation.
type Path struct {
	s string
	p Platform
}

// New constructs a Path on Platform p, rejecting an embedded NUL byte
// and, on a platform without drive letters, a leading "X:" drive letter.
// No other root form is checked: on Windows any NUL-free string is
// accepted.
func New(p Platform, s string) (Path, error) {
	if err := validate(p, s); err != nil {
		return Path{}, err
	}

	return Path{s: s, p: p}, nil
}

// MustNew is New, panicking on error; meant for literals in tests and
// package-level initialization, not for parsing external input.
func MustNew(p Platform, s string) Path {
	pp, err := New(p, s)
	if err != nil {
		panic(err)
	}

	return pp
}

func validate(p Platform, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return &InvalidPathError{Path: s, Reason: "embedded NUL byte"}
	}

	if p.driveLetters && strings.HasPrefix(s, "/") && volumeNameLen(p, s) == 0 {
		// A bare leading '/' with no drive letter is accepted on Windows
		// (rootless-of-the-current-drive).
		return nil
	}

	if !p.driveLetters && looksLikeDriveLetter(s) {
		return &InvalidPathError{Path: s, Reason: "drive letter on a platform without drive letters"}
	}

	return nil
}

func looksLikeDriveLetter(s string) bool {
	return len(s) >= 2 && isDriveLetter(s[0]) && s[1] == ':'
}

// Platform returns the platform p was constructed with.
func (pa Path) Platform() Platform { return pa.p }

// String returns the raw path string.
func (pa Path) String() string { return pa.s }

// Empty reports whether the path is the empty (identity) path.
func (pa Path) Empty() bool { return pa.s == "" }

// IsAbsolute reports whether the path is absolute for its platform.
func (pa Path) IsAbsolute() bool { return isAbs(pa.p, pa.s) }

// IsRoot reports whether the path denotes a filesystem root: "/" on
// POSIX, or a bare drive/UNC root ("C:\", "C:/") on Windows.
func (pa Path) IsRoot() bool {
	vol := volumeName(pa.p, pa.s)
	rest := pa.s[len(vol):]

	if pa.p.driveLetters {
		return vol != "" && (rest == "" || (len(rest) == 1 && pa.p.IsPathSeparator(rest[0])))
	}

	return pa.s == "/"
}

// Leaf returns the last component of the path (its Base), as a Path.
func (pa Path) Leaf() Path {
	return Path{s: base(pa.p, pa.s), p: pa.p}
}

// Directory returns the directory part of the path (spec.md invariant 1:
// p.Directory()/p.Leaf() == p for any non-root p), as a Dir.
func (pa Path) Directory() Dir {
	// a trailing separator does not make the path its own directory
	s := pa.s
	for len(s) > 1 && pa.p.IsPathSeparator(s[len(s)-1]) && !isRootString(pa.p, s) {
		s = s[:len(s)-1]
	}

	d := dir(pa.p, s)
	if !strings.HasSuffix(d, string(pa.p.separator)) && !isRootString(pa.p, d) {
		d += string(pa.p.separator)
	}

	return Dir{s: d, p: pa.p}
}

func isRootString(p Platform, s string) bool {
	vol := volumeName(p, s)
	rest := s[len(vol):]

	if p.driveLetters {
		return vol != "" && (rest == "" || (len(rest) == 1 && p.IsPathSeparator(rest[0])))
	}

	return s == "/"
}

// Base returns the path without its Extension.
func (pa Path) Base() Path {
	e := ext(pa.s)

	return Path{s: strings.TrimSuffix(pa.s, e), p: pa.p}
}

// Extension returns the file name extension, including the leading dot,
// or "" if there is none.
func (pa Path) Extension() string {
	return ext(pa.s)
}

// Normalize collapses "." and ".." lexically and canonicalizes
// separators, without touching the filesystem. Normalize is idempotent:
// pa.Normalize().Normalize() == pa.Normalize().
func (pa Path) Normalize() Path {
	return Path{s: clean(pa.p, pa.s), p: pa.p}
}

// Complete makes a relative path absolute by joining it to the current
// directory (honoring any env.WithCurDir override active on the calling
// goroutine), then normalizes the result.
func (pa Path) Complete() (Path, error) {
	if pa.IsAbsolute() {
		return pa.Normalize(), nil
	}

	wd, err := env.CurDir()
	if err != nil {
		return Path{}, err
	}

	return Path{s: join(pa.p, []string{wd, pa.s}), p: pa.p}, nil
}

// Realize resolves the path to its canonical filesystem form (symlinks
// followed, case corrected on case-insensitive platforms), via the host
// OS resolver. It is only meaningful for pa.Platform() == Current, and
// returns an *InvalidPathError otherwise, per spec.md §4.A ("Realization
// follows the OS resolver").
func (pa Path) Realize() (Path, error) {
	if pa.p != Current {
		return Path{}, &InvalidPathError{Path: pa.s, Reason: "Realize requires the current platform"}
	}

	r, err := filepath.EvalSymlinks(pa.s)
	if err != nil {
		return Path{}, err
	}

	return Path{s: r, p: pa.p}, nil
}

// Iterator returns a left-to-right component Iterator over the path.
func (pa Path) Iterator() *Iterator {
	return newIterator(pa.p, pa.s)
}

// RelativeTo returns pa expressed relative to base, if possible.
func (pa Path) RelativeTo(base Path) (Path, error) {
	r, err := rel(pa.p, base.s, pa.s)
	if err != nil {
		return Path{}, err
	}

	return Path{s: r, p: pa.p}, nil
}

// Sub reports whether pa is a lexical prefix of other: either pa == other,
// or other's first len(pa.Iterator-components) components equal pa's.
func (pa Path) Sub(other Path) bool {
	return hasComponentPrefix(pa.p, pa.s, other.s)
}

// Sup reports whether pa is a lexical suffix of other (component-wise).
func (pa Path) Sup(other Path) bool {
	return hasComponentSuffix(pa.p, pa.s, other.s)
}

// Join joins pa with more path elements, normalizing the result.
func (pa Path) Join(elems ...string) Path {
	all := append([]string{pa.s}, elems...)

	return Path{s: join(pa.p, all), p: pa.p}
}
