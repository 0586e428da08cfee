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

package pattern

import (
	"strings"

	"github.com/build2/butl/fsx"
	bpath "github.com/build2/butl/path"
)

// DanglingDecision is returned by an Options.Dangling callback for a
// dangling symlink entry encountered during Search.
type DanglingDecision int

const (
	// DanglingStop aborts Search, surfacing the dangling entry as an
	// error.
	DanglingStop DanglingDecision = iota
	// DanglingIgnore silently skips the entry.
	DanglingIgnore
	// DanglingReport treats the dangling link itself as a match.
	DanglingReport
)

// Options controls Search's traversal, spec.md §4.F's path_search.
type Options struct {
	// MatchAbsent lets a wildcard-only component match a level that is
	// not present in a candidate path.
	MatchAbsent bool
	// FollowSymlinks resolves symlinked directories while descending;
	// when false, the last component's symlinks are left unresolved.
	FollowSymlinks bool
	// Dangling decides the fate of a dangling symlink entry. A nil
	// Dangling is equivalent to always returning DanglingStop.
	Dangling func(bpath.Path) DanglingDecision
}

// DanglingError reports a dangling symlink encountered during Search
// under DanglingStop.
type DanglingError struct {
	Path bpath.Path
}

func (e *DanglingError) Error() string {
	return "dangling symlink: " + e.Path.String()
}

// Search drives p against the filesystem tree rooted at start,
// invoking cb once per distinct matching path. cb returns false to
// stop the search early.
func Search(start bpath.Dir, p Pattern, opts Options, cb func(bpath.Path) (bool, error)) error {
	seen := make(map[string]bool)

	_, err := searchSegments(start, p.segments, p.plat, p.dirOnly, opts, cb, seen)

	return err
}

func dangling(opts Options, path bpath.Path) DanglingDecision {
	if opts.Dangling == nil {
		return DanglingStop
	}

	return opts.Dangling(path)
}

func isDotName(name string) bool { return strings.HasPrefix(name, ".") }

// searchSegments matches the remaining pattern segments against dir,
// invoking cb for terminal matches. It returns (continue, error): false
// for continue means the caller asked to stop via cb.
func searchSegments(dir bpath.Dir, segs []string, plat bpath.Platform, dirOnly bool, opts Options, cb func(bpath.Path) (bool, error), seen map[string]bool) (bool, error) {
	if len(segs) == 0 {
		return emit(dir.Path(), dirOnly, true, cb, seen)
	}

	head := segs[0]
	rest := segs[1:]

	switch head {
	case "**":
		return searchRecursive(dir, rest, plat, dirOnly, opts, cb, seen)
	case "***":
		cont, err := searchSegments(dir, rest, plat, dirOnly, opts, cb, seen)
		if err != nil || !cont {
			return cont, err
		}

		return searchRecursive(dir, rest, plat, dirOnly, opts, cb, seen)
	default:
		return searchComponent(dir, head, rest, plat, dirOnly, opts, cb, seen)
	}
}

// searchRecursive enumerates every directory below dir (one or more
// levels; dir itself is not tried) and tries the remaining segments at
// each.
func searchRecursive(dir bpath.Dir, rest []string, plat bpath.Platform, dirOnly bool, opts Options, cb func(bpath.Path) (bool, error), seen map[string]bool) (bool, error) {
	mode := fsx.NoFollow
	if opts.FollowSymlinks {
		mode = fsx.DetectDangling
	}

	it, err := fsx.NewIterator(dir, mode)
	if err != nil {
		return true, err
	}
	defer it.Close()

	for {
		e, err := it.Next()
		if err != nil {
			if oe, ok := err.(*fsx.OSError); ok && mode == fsx.DetectDangling {
				danglingPath, perr := bpath.New(plat, oe.Path)
				if perr != nil {
					return true, err
				}

				switch dangling(opts, danglingPath) {
				case DanglingIgnore:
					continue
				case DanglingReport:
					// treated as a non-directory entry; nothing further
					// to recurse into.
					continue
				default:
					return true, &DanglingError{Path: danglingPath}
				}
			}

			return true, err
		}

		if e == nil {
			return true, nil
		}

		if isDotName(e.Leaf.Leaf().String()) {
			continue
		}

		if e.Nominal == nil {
			continue
		}

		if !e.Nominal.IsDir() {
			continue
		}

		sub, err := bpath.NewDir(plat, e.Leaf.String())
		if err != nil {
			return true, err
		}

		cont, err := searchSegments(sub, rest, plat, dirOnly, opts, cb, seen)
		if err != nil || !cont {
			return cont, err
		}

		cont, err = searchRecursive(sub, rest, plat, dirOnly, opts, cb, seen)
		if err != nil || !cont {
			return cont, err
		}
	}
}

// searchComponent handles one literal or wildcard pattern component.
func searchComponent(dir bpath.Dir, head string, rest []string, plat bpath.Platform, dirOnly bool, opts Options, cb func(bpath.Path) (bool, error), seen map[string]bool) (bool, error) {
	if !isWildcardOnly(head) {
		leaf := dir.Join(head)

		info, err := fsx.LStat(leaf)
		if err != nil {
			if fsx.IsNotExist(err) {
				if opts.MatchAbsent {
					return searchSegments(dir, rest, plat, dirOnly, opts, cb, seen)
				}

				return true, nil
			}

			return true, err
		}

		return descendInto(leaf, info, rest, plat, dirOnly, opts, cb, seen)
	}

	mode := fsx.NoFollow
	if opts.FollowSymlinks {
		mode = fsx.DetectDangling
	}

	it, err := fsx.NewIterator(dir, mode)
	if err != nil {
		return true, err
	}
	defer it.Close()

	for {
		e, err := it.Next()
		if err != nil {
			if oe, ok := err.(*fsx.OSError); ok && mode == fsx.DetectDangling {
				danglingPath, perr := bpath.New(plat, oe.Path)
				if perr != nil {
					return true, err
				}

				switch dangling(opts, danglingPath) {
				case DanglingIgnore:
					continue
				case DanglingReport:
					if len(rest) == 0 && MatchSegment(plat, danglingPath.Leaf().String(), head) {
						cont, err := emit(danglingPath, dirOnly, false, cb, seen)
						if err != nil || !cont {
							return cont, err
						}
					}

					continue
				default:
					return true, &DanglingError{Path: danglingPath}
				}
			}

			return true, err
		}

		if e == nil {
			return true, nil
		}

		name := e.Leaf.Leaf().String()

		if isDotName(name) && !isDotName(head) {
			continue
		}

		if !MatchSegment(plat, name, head) {
			continue
		}

		info := e.Nominal
		if info == nil {
			info = e.Link
		}

		cont, err := descendInto(e.Leaf, info, rest, plat, dirOnly, opts, cb, seen)
		if err != nil || !cont {
			return cont, err
		}
	}
}

func descendInto(leaf bpath.Path, info interface{ IsDir() bool }, rest []string, plat bpath.Platform, dirOnly bool, opts Options, cb func(bpath.Path) (bool, error), seen map[string]bool) (bool, error) {
	if len(rest) == 0 {
		return emit(leaf, dirOnly, info.IsDir(), cb, seen)
	}

	if !info.IsDir() {
		return true, nil
	}

	sub, err := bpath.NewDir(plat, leaf.String())
	if err != nil {
		return true, err
	}

	return searchSegments(sub, rest, plat, dirOnly, opts, cb, seen)
}

func emit(p bpath.Path, dirOnly, isDir bool, cb func(bpath.Path) (bool, error), seen map[string]bool) (bool, error) {
	if dirOnly && !isDir {
		return true, nil
	}

	key := p.String()
	if seen[key] {
		return true, nil
	}

	seen[key] = true

	return cb(p)
}
