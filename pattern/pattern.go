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

// Package pattern implements spec.md §4.F: single- and multi-component
// wildcard matching plus a filesystem search driver.
//
// A Pattern is compiled once with Parse and matched repeatedly with
// Match, mirroring github.com/moby/patternmatcher's New/Matches split
// between compiling a pattern set and testing candidates against it.
package pattern

import (
	"strings"

	bpath "github.com/build2/butl/path"
)

// InvalidPatternError reports a malformed pattern (spec.md §7's
// invalid-argument class).
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return "invalid pattern '" + e.Pattern + "': " + e.Reason
}

// Pattern is a compiled multi-component glob (spec.md §4.F's
// path_match pattern).
type Pattern struct {
	plat     bpath.Platform
	raw      string
	segments []string
	dirOnly  bool
}

// Parse compiles s for platform plat. A trailing separator marks the
// pattern as matching directories only.
func Parse(plat bpath.Platform, s string) (Pattern, error) {
	if s == "" {
		return Pattern{}, &InvalidPatternError{Pattern: s, Reason: "empty pattern"}
	}

	raw := s
	dirOnly := false

	if plat.IsPathSeparator(raw[len(raw)-1]) {
		dirOnly = true
		raw = raw[:len(raw)-1]
	}

	if raw == "" {
		return Pattern{}, &InvalidPatternError{Pattern: s, Reason: "empty pattern"}
	}

	return Pattern{plat: plat, raw: s, segments: splitSegments(plat, raw), dirOnly: dirOnly}, nil
}

// String returns the original pattern text.
func (p Pattern) String() string { return p.raw }

// Platform returns the Platform p was compiled for.
func (p Pattern) Platform() bpath.Platform { return p.plat }

// DirOnly reports whether p matches directory entries only.
func (p Pattern) DirOnly() bool { return p.dirOnly }

// Segments returns p's components, split on its platform's separators.
func (p Pattern) Segments() []string { return p.segments }

func splitSegments(plat bpath.Platform, s string) []string {
	var segs []string

	start := 0

	for i := 0; i < len(s); i++ {
		if plat.IsPathSeparator(s[i]) {
			segs = append(segs, s[start:i])
			start = i + 1
		}
	}

	segs = append(segs, s[start:])

	return segs
}

// Match reports whether name (as a platform-separated relative path)
// satisfies p under path_match semantics: `**` consumes one or more
// intermediate directory levels, `***` additionally self-matches the
// null (zero) level, and matchAbsent lets a wildcard-only component
// match a level that is simply not present in name.
func (p Pattern) Match(name string, matchAbsent bool) bool {
	nameSegs := splitSegments(p.plat, strings.TrimSuffix(name, string(p.plat.Separator())))

	return matchSegments(p.plat, p.segments, nameSegs, matchAbsent)
}

func matchSegments(plat bpath.Platform, pat, name []string, matchAbsent bool) bool {
	if len(pat) == 0 {
		return len(name) == 0
	}

	head := pat[0]

	switch head {
	case "**":
		for i := 1; i <= len(name); i++ {
			if matchSegments(plat, pat[1:], name[i:], matchAbsent) {
				return true
			}
		}

		return false
	case "***":
		for i := 0; i <= len(name); i++ {
			if matchSegments(plat, pat[1:], name[i:], matchAbsent) {
				return true
			}
		}

		return false
	default:
		if matchAbsent && isWildcardOnly(head) && matchSegments(plat, pat[1:], name, matchAbsent) {
			return true
		}

		if len(name) == 0 {
			return false
		}

		if !MatchSegment(plat, name[0], head) {
			return false
		}

		return matchSegments(plat, pat[1:], name[1:], matchAbsent)
	}
}

func isWildcardOnly(segment string) bool {
	return strings.ContainsAny(segment, "*?[")
}

// MatchSegment performs spec.md's single-component match: `*` matches
// any run (including empty), `?` matches exactly one byte, and `[...]`
// matches a class (`-` ranges, leading `!` negation, a leading `]`
// taken literally). Comparison honors plat's case sensitivity. A
// leading '.' in name is matched only by a literal '.' in segment, not
// by a leading wildcard, following ordinary shell-glob convention.
func MatchSegment(plat bpath.Platform, name, segment string) bool {
	if len(name) > 0 && name[0] == '.' && len(segment) > 0 && segment[0] != '.' {
		return false
	}

	return matchLiteral(segment, name, plat.CaseSensitive())
}

func matchLiteral(pat, name string, caseSensitive bool) bool {
	pi, ni := 0, 0
	starPat, starName := -1, 0

	for ni < len(name) {
		if pi < len(pat) {
			switch pat[pi] {
			case '*':
				starPat = pi
				starName = ni
				pi++

				continue
			case '?':
				pi++
				ni++

				continue
			case '[':
				if ok, length, err := matchClass(pat[pi:], name[ni], caseSensitive); err == nil {
					if ok {
						pi += length
						ni++

						continue
					}

					if starPat >= 0 {
						pi = starPat + 1
						starName++
						ni = starName

						continue
					}

					return false
				}
			}

			if eqByte(pat[pi], name[ni], caseSensitive) {
				pi++
				ni++

				continue
			}
		}

		if starPat >= 0 {
			pi = starPat + 1
			starName++
			ni = starName

			continue
		}

		return false
	}

	for pi < len(pat) && pat[pi] == '*' {
		pi++
	}

	return pi == len(pat)
}

// matchClass matches a "[...]" class starting at pat[0] against c,
// returning the number of bytes the class occupies in pat (including
// both brackets) so the caller can advance past it.
func matchClass(pat string, c byte, caseSensitive bool) (bool, int, error) {
	if len(pat) < 2 || pat[0] != '[' {
		return false, 0, &InvalidPatternError{Pattern: pat, Reason: "not a class"}
	}

	i := 1
	negate := false

	if i < len(pat) && pat[i] == '!' {
		negate = true
		i++
	}

	matched := false
	first := true

	for i < len(pat) && (pat[i] != ']' || first) {
		first = false

		if i+2 < len(pat) && pat[i+1] == '-' && pat[i+2] != ']' {
			if inRange(c, pat[i], pat[i+2], caseSensitive) {
				matched = true
			}

			i += 3

			continue
		}

		if eqByte(pat[i], c, caseSensitive) {
			matched = true
		}

		i++
	}

	if i >= len(pat) {
		return false, 0, &InvalidPatternError{Pattern: pat, Reason: "unterminated class"}
	}

	if negate {
		matched = !matched
	}

	return matched, i + 1, nil
}

func fold(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}

	return c
}

func eqByte(a, b byte, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}

	return fold(a) == fold(b)
}

func inRange(c, lo, hi byte, caseSensitive bool) bool {
	if caseSensitive {
		return c >= lo && c <= hi
	}

	fc := fold(c)

	return (fc >= fold(lo) && fc <= fold(hi)) || (c >= lo && c <= hi)
}
