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

package pattern_test

import (
	"testing"

	"github.com/moby/patternmatcher"
	"gotest.tools/v3/assert"

	bpath "github.com/build2/butl/path"
	"github.com/build2/butl/pattern"
)

func TestMatchSegmentStar(t *testing.T) {
	assert.Assert(t, pattern.MatchSegment(bpath.POSIX, "foo.txt", "*.txt"))
	assert.Assert(t, pattern.MatchSegment(bpath.POSIX, "foo.txt", "*"))
	assert.Assert(t, !pattern.MatchSegment(bpath.POSIX, "foo.txt", "*.md"))
}

func TestMatchSegmentQuestion(t *testing.T) {
	assert.Assert(t, pattern.MatchSegment(bpath.POSIX, "cat", "c?t"))
	assert.Assert(t, !pattern.MatchSegment(bpath.POSIX, "cart", "c?t"))
}

func TestMatchSegmentClassRangeAndNegation(t *testing.T) {
	assert.Assert(t, pattern.MatchSegment(bpath.POSIX, "b", "[a-c]"))
	assert.Assert(t, !pattern.MatchSegment(bpath.POSIX, "d", "[a-c]"))
	assert.Assert(t, pattern.MatchSegment(bpath.POSIX, "d", "[!a-c]"))
}

func TestMatchSegmentLeadingDotRequiresExplicitDot(t *testing.T) {
	assert.Assert(t, !pattern.MatchSegment(bpath.POSIX, ".hidden", "*"))
	assert.Assert(t, pattern.MatchSegment(bpath.POSIX, ".hidden", ".*"))
}

func TestMatchSegmentCaseSensitivity(t *testing.T) {
	assert.Assert(t, !pattern.MatchSegment(bpath.POSIX, "FILE.TXT", "*.txt"))
	assert.Assert(t, pattern.MatchSegment(bpath.Windows, "FILE.TXT", "*.txt"))
}

func TestPatternParseTrailingSeparatorMeansDirOnly(t *testing.T) {
	p, err := pattern.Parse(bpath.POSIX, "a/b/")
	assert.NilError(t, err)
	assert.Assert(t, p.DirOnly())
}

func TestPatternMatchLiteral(t *testing.T) {
	p, err := pattern.Parse(bpath.POSIX, "a/b/c.txt")
	assert.NilError(t, err)
	assert.Assert(t, p.Match("a/b/c.txt", false))
	assert.Assert(t, !p.Match("a/b/d.txt", false))
}

func TestPatternMatchRecursiveRequiresOneLevel(t *testing.T) {
	p, err := pattern.Parse(bpath.POSIX, "a/**/c.txt")
	assert.NilError(t, err)
	assert.Assert(t, p.Match("a/b/c.txt", false))
	assert.Assert(t, p.Match("a/x/y/c.txt", false))
	assert.Assert(t, !p.Match("a/c.txt", false))
}

func TestPatternMatchSelfMatchingRecursive(t *testing.T) {
	p, err := pattern.Parse(bpath.POSIX, "a/***/b")
	assert.NilError(t, err)
	assert.Assert(t, p.Match("a/b", false))
	assert.Assert(t, p.Match("a/x/b", false))
}

func TestPatternMatchAbsent(t *testing.T) {
	p, err := pattern.Parse(bpath.POSIX, "a/*/b")
	assert.NilError(t, err)
	assert.Assert(t, !p.Match("a/b", false))
	assert.Assert(t, p.Match("a/b", true))
}

// TestMatchSegmentAgainstPatternMatcher cross-checks plain literal and
// single-star segments against github.com/moby/patternmatcher, which
// implements the same core glob primitives for .dockerignore-style
// matching, to exercise the dependency on the subset of grammar the two
// engines share.
func TestMatchSegmentAgainstPatternMatcher(t *testing.T) {
	cases := []struct {
		name, glob string
	}{
		{"foo.txt", "*.txt"},
		{"foo.txt", "*.md"},
		{"bar", "bar"},
	}

	for _, c := range cases {
		pm, err := patternmatcher.New([]string{c.glob})
		assert.NilError(t, err)

		want, err := pm.Matches(c.name)
		assert.NilError(t, err)

		got := pattern.MatchSegment(bpath.POSIX, c.name, c.glob)
		assert.Equal(t, got, want)
	}
}
