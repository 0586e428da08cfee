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

package process

import (
	"errors"
	"os"
	"strings"

	"github.com/build2/butl/path"
)

// ErrNotFound is returned when Search cannot locate program on PATH.
var ErrNotFound = errors.New("process: program not found in PATH")

// Search resolves program to an executable path: if it already contains
// a separator it is used literally (after an existence check);
// otherwise PATH is searched, trying each of pathext's suffixes in
// order at every PATH entry (spec.md §4.E: "on Windows, the extensions
// in PATHEXT are tried"; pathext is empty on platforms without an
// extension-search convention, in which case the bare name is tried).
func Search(program string, pathVar string, pathext []string) (string, error) {
	hasSeparator := false

	for i := 0; i < len(program); i++ {
		if path.Current.IsPathSeparator(program[i]) {
			hasSeparator = true
			break
		}
	}

	if hasSeparator {
		if isExecutable(program, pathext) {
			return program, nil
		}

		return "", ErrNotFound
	}

	for _, dir := range strings.Split(pathVar, string(path.Current.ListSeparator())) {
		if dir == "" {
			dir = "."
		}

		candidate := dir + string(path.Current.Separator()) + program

		if isExecutable(candidate, pathext) {
			return candidate, nil
		}
	}

	return "", ErrNotFound
}

// isExecutable reports whether candidate, or candidate with one of
// pathext's suffixes appended, names a regular file. On platforms
// without PATHEXT (pathext is empty), the bare candidate is tried.
func isExecutable(candidate string, pathext []string) bool {
	if len(pathext) == 0 {
		return fileExists(candidate)
	}

	for _, ext := range pathext {
		if fileExists(candidate + ext) {
			return true
		}
	}

	return false
}

func fileExists(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && !fi.IsDir()
}

// IsBatchFile reports whether name has a Windows batch-file extension
// (".bat" or ".cmd"), ignoring case. Start does not consult it: a batch
// file is started like any other executable, with no shell invocation
// added by this package.
func IsBatchFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".bat") || strings.HasSuffix(lower, ".cmd")
}
