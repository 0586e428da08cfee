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

package env

import "strings"

// windowsSuccessSuffixes are the platform "success" tails some Windows
// APIs append when a system_error with a zero code is formatted into an
// ios::failure message (spec.md §4.J, §7).
var windowsSuccessSuffixes = []string{
	": The operation completed successfully.",
	": no error",
}

// SanitizeMessage normalizes an exception/error message the way the
// reference library's exception stream insertion does (spec.md §7):
// strip a leading ": ", strip trailing period/space/newline runs, strip
// a trailing Windows "success" suffix, and lower-case the first letter
// if it begins a word. This lets composed messages like
// "unable to open X: <e>" read naturally regardless of how the inner
// error formatted itself.
func SanitizeMessage(msg string) string {
	msg = strings.TrimPrefix(msg, ": ")

	for _, suf := range windowsSuccessSuffixes {
		msg = strings.TrimSuffix(msg, suf)
	}

	msg = strings.TrimRight(msg, ".\r\n \t")

	if msg == "" {
		return msg
	}

	r := []rune(msg)
	if isWordStart(r) {
		r[0] = toLowerRune(r[0])
	}

	return string(r)
}

func isWordStart(r []rune) bool {
	if len(r) == 0 {
		return false
	}

	c := r[0]

	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func toLowerRune(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}
