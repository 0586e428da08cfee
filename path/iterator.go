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

// Iterator iterates through the components of a path, left to right, or
// in reverse. It is adapted from the teacher's avfs.PathIterator[T]
// (pathiterator.go), with the VFS type parameter dropped: T there exists
// only to read PathSeparator()/OSType() off a filesystem value, which
// butl.path already has as an explicit Platform.
//
// Sample usage:
//
//	it := p.Iterator()
//	for it.Next() {
//	    fmt.Println(it.Part())
//	}
type Iterator struct {
	platform Platform
	path     string
	start    int
	end      int
	volLen   int
}

func newIterator(p Platform, s string) *Iterator {
	it := &Iterator{platform: p, path: s, volLen: volumeNameLen(p, s)}
	it.Reset()

	return it
}

// Reset rewinds the Iterator to before the first component.
func (it *Iterator) Reset() {
	it.start = it.volLen
	it.end = it.volLen

	// skip a single leading separator (root marker), it is not a component
	if it.end < len(it.path) && it.platform.IsPathSeparator(it.path[it.end]) {
		it.end++
		it.start = it.end
	} else {
		it.start = it.volLen
	}

	it.end = it.start
}

// Next advances to the next component, returning false when exhausted.
func (it *Iterator) Next() bool {
	it.start = it.end
	for it.start < len(it.path) && it.platform.IsPathSeparator(it.path[it.start]) {
		it.start++
	}

	if it.start >= len(it.path) {
		return false
	}

	i := it.start
	for i < len(it.path) && !it.platform.IsPathSeparator(it.path[i]) {
		i++
	}

	it.end = i

	if it.start == it.end {
		return false
	}

	return true
}

// Part returns the current component.
func (it *Iterator) Part() string {
	return it.path[it.start:it.end]
}

// IsLast reports whether the current component is the last one.
func (it *Iterator) IsLast() bool {
	i := it.end
	for i < len(it.path) && it.platform.IsPathSeparator(it.path[i]) {
		i++
	}

	return i >= len(it.path)
}

// Separator returns the separator following the current component, or 0
// if the component is at the end of the path (so reconstruction from a
// sub-range is exact).
func (it *Iterator) Separator() byte {
	if it.end < len(it.path) {
		return it.path[it.end]
	}

	return 0
}

// Left returns the portion of the path strictly before the current
// component (including any volume name and root separator).
func (it *Iterator) Left() string {
	return it.path[:it.start]
}

// LeftPart returns Left() plus the current component.
func (it *Iterator) LeftPart() string {
	return it.path[:it.end]
}

// Components collects every component of the path, from the first, by
// rewinding and repeatedly calling Next; the Iterator's position is
// restored afterwards.
func (it *Iterator) Components() []string {
	saved := *it

	defer func() { *it = saved }()

	it.Reset()

	var parts []string
	for it.Next() {
		parts = append(parts, it.Part())
	}

	return parts
}

// ReverseComponents returns every component right to left.
func (it *Iterator) ReverseComponents() []string {
	parts := it.Components()
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return parts
}

func hasComponentPrefix(p Platform, prefix, s string) bool {
	pp := newIterator(p, prefix).Components()
	ss := newIterator(p, s).Components()

	if len(pp) > len(ss) {
		return false
	}

	for i, c := range pp {
		if !sameWord(p, c, ss[i]) {
			return false
		}
	}

	return true
}

func hasComponentSuffix(p Platform, suffix, s string) bool {
	pp := newIterator(p, suffix).Components()
	ss := newIterator(p, s).Components()

	if len(pp) > len(ss) {
		return false
	}

	off := len(ss) - len(pp)
	for i, c := range pp {
		if !sameWord(p, c, ss[off+i]) {
			return false
		}
	}

	return true
}
