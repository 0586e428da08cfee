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

// Package version implements spec.md §4.I: the standard version
// grammar and its dependency-constraint language.
package version

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AllowedFlags controls which non-release version forms Parse accepts.
type AllowedFlags uint8

const (
	// AllowEarliest accepts the trailing bare "-" earliest-pre-release
	// marker.
	AllowEarliest AllowedFlags = 1 << iota
	// AllowStub accepts the literal "0" (optionally "0+revision")
	// placeholder version.
	AllowStub

	AllowAll = AllowEarliest | AllowStub
)

// SnapshotIDMaxLen is the maximum length of a Version's SnapshotID.
const SnapshotIDMaxLen = 16

// Version is a parsed standard version, spec.md §4.I's grammar:
//
//	version  := [epoch ~ ]? major . minor . patch [- (a|b) . N [. snapshot]? ]? [+ revision]?
//	snapshot := N [.id]? | 'z'
//
// Epoch defaults to 1 when absent from the source text; a Version
// parsed from a string with no explicit epoch round-trips without one.
type Version struct {
	Epoch uint16
	Major uint64
	Minor uint64
	Patch uint64

	// HasPreRelease and Earliest are mutually exclusive: Earliest is
	// the bare trailing "-" marker (the version's earliest possible
	// pre-release), HasPreRelease marks an explicit "-a.N" or "-b.N".
	Earliest         bool
	HasPreRelease    bool
	PreReleaseLetter byte // 'a' or 'b'
	PreReleaseNum    uint64

	HasSnapshot    bool
	SnapshotLatest bool // the 'z' snapshot form
	SnapshotSN     uint64
	SnapshotID     string

	Revision uint16

	// Stub is the literal "0" placeholder version (optionally
	// "0+revision"); every other field except Epoch and Revision is
	// meaningless when Stub is set.
	Stub bool
}

// InvalidVersionError reports a malformed version string.
type InvalidVersionError struct {
	Input  string
	Reason string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

func invalid(input, reason string) error {
	return &InvalidVersionError{Input: input, Reason: reason}
}

// Parse parses s under the standard version grammar. allowed controls
// whether the earliest-marker and stub forms are accepted.
func Parse(s string, allowed AllowedFlags) (Version, error) {
	orig := s
	v := Version{Epoch: 1}

	if idx := strings.IndexByte(s, '~'); idx >= 0 {
		epoch, err := strconv.ParseUint(s[:idx], 10, 16)
		if err != nil {
			return Version{}, invalid(orig, "invalid epoch")
		}

		v.Epoch = uint16(epoch)
		s = s[idx+1:]
	}

	if idx := strings.IndexByte(s, '+'); idx >= 0 {
		rev, err := strconv.ParseUint(s[idx+1:], 10, 16)
		if err != nil {
			return Version{}, invalid(orig, "invalid revision")
		}

		v.Revision = uint16(rev)
		s = s[:idx]
	}

	if s == "0" {
		if allowed&AllowStub == 0 {
			return Version{}, invalid(orig, "stub version not allowed here")
		}

		v.Stub = true

		return v, nil
	}

	core := s
	suffix := ""
	hasSuffix := false

	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		core = s[:idx]
		suffix = s[idx+1:]
		hasSuffix = true
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, invalid(orig, "expected major.minor.patch")
	}

	var err error

	if v.Major, err = strconv.ParseUint(parts[0], 10, 64); err != nil {
		return Version{}, invalid(orig, "invalid major component")
	}

	if v.Minor, err = strconv.ParseUint(parts[1], 10, 64); err != nil {
		return Version{}, invalid(orig, "invalid minor component")
	}

	if v.Patch, err = strconv.ParseUint(parts[2], 10, 64); err != nil {
		return Version{}, invalid(orig, "invalid patch component")
	}

	if hasSuffix {
		if suffix == "" {
			if allowed&AllowEarliest == 0 {
				return Version{}, invalid(orig, "earliest-marker version not allowed here")
			}

			v.Earliest = true

			return v, nil
		}

		if err := v.parsePreRelease(orig, suffix); err != nil {
			return Version{}, err
		}
	}

	return v, nil
}

func (v *Version) parsePreRelease(orig, suffix string) error {
	parts := strings.Split(suffix, ".")
	if len(parts) < 2 {
		return invalid(orig, "expected (a|b).N pre-release")
	}

	if parts[0] != "a" && parts[0] != "b" {
		return invalid(orig, "pre-release letter must be 'a' or 'b'")
	}

	v.HasPreRelease = true
	v.PreReleaseLetter = parts[0][0]

	n, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return invalid(orig, "invalid pre-release number")
	}

	v.PreReleaseNum = n

	switch len(parts) {
	case 2:
		return nil
	case 3:
		v.HasSnapshot = true

		if parts[2] == "z" {
			v.SnapshotLatest = true
			return nil
		}

		sn, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return invalid(orig, "invalid snapshot number")
		}

		v.SnapshotSN = sn

		return nil
	case 4:
		v.HasSnapshot = true

		sn, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return invalid(orig, "invalid snapshot number")
		}

		v.SnapshotSN = sn

		if len(parts[3]) == 0 || len(parts[3]) > SnapshotIDMaxLen || !isAlnum(parts[3]) {
			return invalid(orig, "invalid snapshot id")
		}

		v.SnapshotID = parts[3]

		return nil
	default:
		return invalid(orig, "malformed snapshot")
	}
}

func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]

		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}

	return true
}

// String formats v in canonical form: the epoch prefix is omitted when
// Epoch is 1, the revision suffix is omitted when Revision is 0, and
// the "latest" snapshot form renders as "z".
func (v Version) String() string {
	var b strings.Builder

	if v.Epoch != 1 {
		b.WriteString(strconv.FormatUint(uint64(v.Epoch), 10))
		b.WriteByte('~')
	}

	if v.Stub {
		b.WriteByte('0')

		if v.Revision != 0 {
			b.WriteByte('+')
			b.WriteString(strconv.FormatUint(uint64(v.Revision), 10))
		}

		return b.String()
	}

	b.WriteString(strconv.FormatUint(v.Major, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.Minor, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(v.Patch, 10))

	switch {
	case v.Earliest:
		b.WriteByte('-')
	case v.HasPreRelease:
		b.WriteByte('-')
		b.WriteByte(v.PreReleaseLetter)
		b.WriteByte('.')
		b.WriteString(strconv.FormatUint(v.PreReleaseNum, 10))

		if v.HasSnapshot {
			b.WriteByte('.')

			if v.SnapshotLatest {
				b.WriteByte('z')
			} else {
				b.WriteString(strconv.FormatUint(v.SnapshotSN, 10))

				if v.SnapshotID != "" {
					b.WriteByte('.')
					b.WriteString(v.SnapshotID)
				}
			}
		}
	}

	if v.Revision != 0 {
		b.WriteByte('+')
		b.WriteString(strconv.FormatUint(uint64(v.Revision), 10))
	}

	return b.String()
}

// Compare orders v against o: negative if v < o, zero if equal,
// positive if v > o. Ordering is epoch, then (for stub versions) only
// revision; otherwise major, minor, patch, pre-release rank (earliest
// < alpha < beta < release), pre-release number, snapshot (absent
// snapshot sorts above any present one; "latest" sorts above any
// numbered one), and finally revision.
func (v Version) Compare(o Version) int {
	if c := cmpUint64(uint64(v.Epoch), uint64(o.Epoch)); c != 0 {
		return c
	}

	if v.Stub || o.Stub {
		switch {
		case v.Stub && o.Stub:
			return cmpUint64(uint64(v.Revision), uint64(o.Revision))
		case v.Stub:
			return -1
		default:
			return 1
		}
	}

	if c := cmpUint64(v.Major, o.Major); c != 0 {
		return c
	}

	if c := cmpUint64(v.Minor, o.Minor); c != 0 {
		return c
	}

	if c := cmpUint64(v.Patch, o.Patch); c != 0 {
		return c
	}

	if c := v.preReleaseRank() - o.preReleaseRank(); c != 0 {
		if c < 0 {
			return -1
		}

		return 1
	}

	if v.HasPreRelease && o.HasPreRelease {
		if c := cmpUint64(v.PreReleaseNum, o.PreReleaseNum); c != 0 {
			return c
		}

		if c := v.compareSnapshot(o); c != 0 {
			return c
		}
	}

	return cmpUint64(uint64(v.Revision), uint64(o.Revision))
}

// preReleaseRank orders the pre-release axis at a fixed major.minor.patch:
// earliest < alpha < beta < release.
func (v Version) preReleaseRank() int {
	switch {
	case v.Earliest:
		return 0
	case v.HasPreRelease && v.PreReleaseLetter == 'a':
		return 1
	case v.HasPreRelease && v.PreReleaseLetter == 'b':
		return 2
	default:
		return 3
	}
}

// compareSnapshot orders the snapshot axis at a fixed pre-release
// letter and number: a snapshot sorts below the pre-release it leads
// up to, so the absence of a snapshot sorts above any present one.
func (v Version) compareSnapshot(o Version) int {
	switch {
	case !v.HasSnapshot && !o.HasSnapshot:
		return 0
	case v.HasSnapshot && !o.HasSnapshot:
		return -1
	case !v.HasSnapshot && o.HasSnapshot:
		return 1
	}

	if c := cmpUint64(v.snapshotOrder(), o.snapshotOrder()); c != 0 {
		return c
	}

	return strings.Compare(v.SnapshotID, o.SnapshotID)
}

func (v Version) snapshotOrder() uint64 {
	if v.SnapshotLatest {
		return math.MaxUint64
	}

	return v.SnapshotSN
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
