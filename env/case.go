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

// Ucase returns s with its ASCII letters upper-cased, under the POSIX
// ("C") locale: only 'a'-'z' are affected, matching spec.md §4.J (the
// reference deliberately does not apply locale-sensitive Unicode case
// folding here).
func Ucase(s string) string {
	return mapASCII(s, func(c byte) byte {
		if c >= 'a' && c <= 'z' {
			return c - ('a' - 'A')
		}

		return c
	})
}

// Lcase returns s with its ASCII letters lower-cased, under the POSIX
// locale.
func Lcase(s string) string {
	return mapASCII(s, func(c byte) byte {
		if c >= 'A' && c <= 'Z' {
			return c + ('a' - 'A')
		}

		return c
	})
}

func mapASCII(s string, f func(byte) byte) string {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		b.WriteByte(f(s[i]))
	}

	return b.String()
}

// Icasecmp compares a and b ASCII-case-insensitively under the POSIX
// locale, returning a value <0, 0, >0 like strings.Compare.
func Icasecmp(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		ca, cb := foldASCII(a[i]), foldASCII(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}

			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func foldASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}
