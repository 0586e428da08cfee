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

package version_test

import (
	"fmt"
	"testing"

	"golang.org/x/mod/semver"
	"gotest.tools/v3/assert"

	"github.com/build2/butl/version"
)

// TestParseScenarioS2 reproduces spec.md scenario S2:
// parse("1.2.3-a.4.567.abc+1") yields (epoch=1, major=1, minor=2,
// patch=3, alpha=4, snapshot_sn=567, snapshot_id="abc", revision=1)
// and formats back to the original string.
func TestParseScenarioS2(t *testing.T) {
	v, err := version.Parse("1.2.3-a.4.567.abc+1", version.AllowAll)
	assert.NilError(t, err)

	assert.Equal(t, v.Epoch, uint16(1))
	assert.Equal(t, v.Major, uint64(1))
	assert.Equal(t, v.Minor, uint64(2))
	assert.Equal(t, v.Patch, uint64(3))
	assert.Assert(t, v.HasPreRelease)
	assert.Equal(t, v.PreReleaseLetter, byte('a'))
	assert.Equal(t, v.PreReleaseNum, uint64(4))
	assert.Assert(t, v.HasSnapshot)
	assert.Equal(t, v.SnapshotSN, uint64(567))
	assert.Equal(t, v.SnapshotID, "abc")
	assert.Equal(t, v.Revision, uint16(1))

	assert.Equal(t, v.String(), "1.2.3-a.4.567.abc+1")
}

func constraintsEqual(t *testing.T, a, b version.Constraint) {
	t.Helper()

	assert.Equal(t, a.MinOpen, b.MinOpen)
	assert.Equal(t, a.MaxOpen, b.MaxOpen)
	assert.Equal(t, (a.Min == nil), (b.Min == nil))
	assert.Equal(t, (a.Max == nil), (b.Max == nil))

	if a.Min != nil {
		assert.Equal(t, a.Min.String(), b.Min.String())
	}

	if a.Max != nil {
		assert.Equal(t, a.Max.String(), b.Max.String())
	}
}

// TestTildeConstraintEquivalence checks spec.md scenario S2's
// "~1.2.3 is equivalent to [1.2.3 1.3.0-)".
func TestTildeConstraintEquivalence(t *testing.T) {
	tilde, err := version.ParseConstraint("~1.2.3", nil)
	assert.NilError(t, err)

	rng, err := version.ParseConstraint("[1.2.3 1.3.0-)", nil)
	assert.NilError(t, err)

	constraintsEqual(t, tilde, rng)
}

// TestCaretZeroMajorFallsBackToTilde checks spec.md scenario S2's
// "^0.2.3 is equivalent to [0.2.3 0.3.0-)".
func TestCaretZeroMajorFallsBackToTilde(t *testing.T) {
	caret, err := version.ParseConstraint("^0.2.3", nil)
	assert.NilError(t, err)

	rng, err := version.ParseConstraint("[0.2.3 0.3.0-)", nil)
	assert.NilError(t, err)

	constraintsEqual(t, caret, rng)
}

func TestCaretNonZeroMajorNextMajor(t *testing.T) {
	caret, err := version.ParseConstraint("^1.2.3", nil)
	assert.NilError(t, err)

	rng, err := version.ParseConstraint("[1.2.3 2.0.0-)", nil)
	assert.NilError(t, err)

	constraintsEqual(t, caret, rng)
}

func TestConstraintSatisfies(t *testing.T) {
	c, err := version.ParseConstraint("~1.2.3", nil)
	assert.NilError(t, err)

	inside, err := version.Parse("1.2.9", version.AllowAll)
	assert.NilError(t, err)
	assert.Assert(t, c.Satisfies(inside))

	onNextMinorPreRelease, err := version.Parse("1.3.0-a.1", version.AllowAll)
	assert.NilError(t, err)
	assert.Assert(t, !c.Satisfies(onNextMinorPreRelease))

	before, err := version.Parse("1.2.0-a.1", version.AllowAll)
	assert.NilError(t, err)
	assert.Assert(t, !c.Satisfies(before))
}

func TestDependentSubstitution(t *testing.T) {
	dep, err := version.Parse("2.3.4", version.AllowAll)
	assert.NilError(t, err)

	c, err := version.ParseConstraint("~$", &dep)
	assert.NilError(t, err)

	direct, err := version.ParseConstraint("~2.3.4", nil)
	assert.NilError(t, err)

	constraintsEqual(t, c, direct)
}

func TestSnapshotSortsBelowItsPreRelease(t *testing.T) {
	snapshot, err := version.Parse("1.2.3-a.4.567.abc", version.AllowAll)
	assert.NilError(t, err)

	preRelease, err := version.Parse("1.2.3-a.4", version.AllowAll)
	assert.NilError(t, err)

	assert.Assert(t, snapshot.Compare(preRelease) < 0)
}

func TestStubSortsBelowEverything(t *testing.T) {
	stub, err := version.Parse("0", version.AllowAll)
	assert.NilError(t, err)

	v, err := version.Parse("0.0.1-a.1", version.AllowAll)
	assert.NilError(t, err)

	assert.Assert(t, stub.Compare(v) < 0)
}

// TestCompareAgainstSemverOracle cross-checks ordering of plain
// release versions (no epoch, pre-release, snapshot, or revision —
// the subset golang.org/x/mod/semver can itself represent) against
// that package's Compare, since x/mod/semver cannot encode an epoch,
// snapshot, or revision and so cannot serve as the implementation,
// only as an oracle for this restricted comparison.
func TestCompareAgainstSemverOracle(t *testing.T) {
	cases := []struct{ a, b string }{
		{"1.2.3", "1.2.4"},
		{"1.2.3", "1.3.0"},
		{"2.0.0", "1.99.99"},
		{"1.0.0", "1.0.0"},
	}

	for _, c := range cases {
		va, err := version.Parse(c.a, version.AllowAll)
		assert.NilError(t, err)

		vb, err := version.Parse(c.b, version.AllowAll)
		assert.NilError(t, err)

		got := va.Compare(vb)

		want := semver.Compare(fmt.Sprintf("v%s", c.a), fmt.Sprintf("v%s", c.b))

		assert.Equal(t, sign(got), sign(want), fmt.Sprintf("%s vs %s", c.a, c.b))
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
