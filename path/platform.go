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

// Package path implements spec.md §4.A: lexically-normalized, path-list
// separator, root recognition, and case-sensitivity rules are all carried
// on an explicit Platform value rather than inferred from the build's
// GOOS, so callers can exercise Windows path semantics on any host (the
// reference library's avfs.Utils takes its OSType as an explicit
// constructor argument for the same reason).
package path

import "runtime"

// Platform carries the trait set spec.md §3 describes for a Path: the
// separator set, the path-list separator, root recognition, and
// comparison case-sensitivity.
type Platform struct {
	name          string
	separator     byte // preferred separator
	altSeparator  byte // 0 if none
	listSeparator byte
	caseSensitive bool
	driveLetters  bool // "X:" roots
}

// POSIX is the Platform used by Unix-like systems: separator '/', no
// alternate separator, ':' path-list separator, case-sensitive
// comparison, no drive letters.
var POSIX = Platform{
	name:          "posix",
	separator:     '/',
	listSeparator: ':',
	caseSensitive: true,
}

// Windows is the Platform used by Microsoft Windows: separators '\\'
// (preferred) and '/' (accepted), ';' path-list separator, case
// insensitive comparison, "X:" drive-letter roots.
var Windows = Platform{
	name:          "windows",
	separator:     '\\',
	altSeparator:  '/',
	listSeparator: ';',
	caseSensitive: false,
	driveLetters:  true,
}

// Current is POSIX or Windows depending on runtime.GOOS, matching the
// platform the process is actually running on.
var Current = func() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}

	return POSIX
}()

// String returns the platform name ("posix" or "windows").
func (p Platform) String() string { return p.name }

// IsPathSeparator reports whether c is a directory separator for p.
func (p Platform) IsPathSeparator(c byte) bool {
	return c == p.separator || (p.altSeparator != 0 && c == p.altSeparator)
}

// CaseSensitive reports whether name comparisons are case-sensitive on p.
func (p Platform) CaseSensitive() bool { return p.caseSensitive }

// ListSeparator returns the byte that separates entries in a path list
// (e.g. PATH) on p.
func (p Platform) ListSeparator() byte { return p.listSeparator }

// Separator returns the preferred path separator for p.
func (p Platform) Separator() byte { return p.separator }
