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

import "strings"

// This file adapts the purely-lexical string operations of the teacher's
// avfs.Utils/avfs.PathIterator (vfsutils.go, utils.go) from "OSType field
// on a filesystem-tied struct" to free functions over an explicit
// Platform value, since butl.path has no filesystem type to carry the
// trait on.

// volumeNameLen returns the length of the leading volume name in path for
// platform p: 2 for a drive letter ("C:"), or the length of a
// "\\server\share" UNC prefix; 0 if p has no drive letters or path has
// none.
func volumeNameLen(p Platform, path string) int {
	if !p.driveLetters || len(path) < 2 {
		return 0
	}

	if path[1] == ':' && isDriveLetter(path[0]) {
		return 2
	}

	// UNC: \\server\share\...
	l := len(path)
	if l >= 5 && p.IsPathSeparator(path[0]) && p.IsPathSeparator(path[1]) &&
		!p.IsPathSeparator(path[2]) && path[2] != '.' {
		for n := 3; n < l-1; n++ {
			if p.IsPathSeparator(path[n]) {
				n++

				for ; n < l; n++ {
					if p.IsPathSeparator(path[n]) {
						break
					}
				}

				return n
			}
		}
	}

	return 0
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// volumeName returns the leading volume name in path ("" on POSIX).
func volumeName(p Platform, path string) string {
	return path[:volumeNameLen(p, path)]
}

// isAbs reports whether path is absolute for platform p.
func isAbs(p Platform, path string) bool {
	if !p.driveLetters {
		return strings.HasPrefix(path, "/")
	}

	l := volumeNameLen(p, path)
	if l == 0 {
		return false
	}

	rest := path[l:]

	return rest != "" && p.IsPathSeparator(rest[0])
}

// fromSlash replaces '/' with p's preferred separator.
func fromSlash(p Platform, path string) string {
	if p.separator == '/' {
		return path
	}

	return strings.ReplaceAll(path, "/", string(p.separator))
}

// toSlash replaces p's preferred separator (and alternate, if any) with '/'.
func toSlash(p Platform, path string) string {
	if p.separator == '/' && p.altSeparator == 0 {
		return path
	}

	b := []byte(path)
	for i, c := range b {
		if p.IsPathSeparator(c) {
			b[i] = '/'
		}
	}

	return string(b)
}

// clean is filepath.Clean generalized to an explicit Platform, adapted
// from avfs.Utils.Clean (vfsutils.go): collapse adjacent separators,
// resolve "." and ".." lexically, preserve a single trailing separator
// only for a root, and canonicalize every separator to p's preferred one.
func clean(p Platform, path string) string {
	orig := path
	vol := volumeName(p, path)
	path = path[len(vol):]

	if path == "" {
		if len(vol) > 1 && orig[1] != ':' {
			return fromSlash(p, orig) // UNC root, nothing to clean
		}

		return orig + "."
	}

	rooted := p.IsPathSeparator(path[0])

	n := len(path)
	out := make([]byte, 0, n)
	r, dotdot := 0, 0

	if rooted {
		out = append(out, p.separator)
		r, dotdot = 1, 1
	}

	for r < n {
		switch {
		case p.IsPathSeparator(path[r]):
			r++
		case path[r] == '.' && (r+1 == n || p.IsPathSeparator(path[r+1])):
			r++
		case path[r] == '.' && path[r+1] == '.' && (r+2 == n || p.IsPathSeparator(path[r+2])):
			r += 2

			switch {
			case len(out) > dotdot:
				// can backtrack
				w := len(out) - 1
				for w > dotdot && !p.IsPathSeparator(out[w]) {
					w--
				}

				out = out[:w]
			case !rooted:
				if len(out) > 0 {
					out = append(out, p.separator)
				}

				out = append(out, '.', '.')
				dotdot = len(out)
			}
		default:
			if (rooted && len(out) != 1) || (!rooted && len(out) != 0) {
				out = append(out, p.separator)
			}

			for ; r < n && !p.IsPathSeparator(path[r]); r++ {
				out = append(out, path[r])
			}
		}
	}

	if len(out) == 0 {
		out = append(out, '.')
	}

	return vol + string(out)
}

// base adapts avfs.Utils.Base.
func base(p Platform, path string) string {
	if path == "" {
		return "."
	}

	for len(path) > 0 && p.IsPathSeparator(path[len(path)-1]) {
		path = path[:len(path)-1]
	}

	path = path[len(volumeName(p, path)):]

	i := len(path) - 1
	for i >= 0 && !p.IsPathSeparator(path[i]) {
		i--
	}

	if i >= 0 {
		path = path[i+1:]
	}

	if path == "" {
		return string(p.separator)
	}

	return path
}

// dir adapts avfs.Utils.Dir.
func dir(p Platform, path string) string {
	vol := volumeName(p, path)

	i := len(path) - 1
	for i >= len(vol) && !p.IsPathSeparator(path[i]) {
		i--
	}

	d := clean(p, path[len(vol):i+1])
	if d == "." && len(vol) > 2 {
		return vol
	}

	return vol + d
}

// split adapts avfs.Utils.Split.
func split(p Platform, path string) (d, file string) {
	vol := volumeName(p, path)

	i := len(path) - 1
	for i >= len(vol) && !p.IsPathSeparator(path[i]) {
		i--
	}

	return path[:i+1], path[i+1:]
}

// ext returns the file name extension used by path, including the
// leading dot, or "" if there is none.
func ext(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/' && path[i] != '\\'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}

	return ""
}

// join adapts avfs.Utils.Join.
func join(p Platform, elem []string) string {
	for i, e := range elem {
		if e != "" {
			return clean(p, strings.Join(elem[i:], string(p.separator)))
		}
	}

	return ""
}

func sameWord(p Platform, a, b string) bool {
	if p.caseSensitive {
		return a == b
	}

	return strings.EqualFold(a, b)
}

// rel adapts avfs.Utils.Rel.
func rel(p Platform, basepath, targpath string) (string, error) {
	baseVol := volumeName(p, basepath)
	targVol := volumeName(p, targpath)
	b := clean(p, basepath)
	t := clean(p, targpath)

	if sameWord(p, t, b) {
		return ".", nil
	}

	b = b[len(baseVol):]
	t = t[len(targVol):]

	if b == "." {
		b = ""
	}

	baseSlashed := len(b) > 0 && b[0] == p.separator
	targSlashed := len(t) > 0 && t[0] == p.separator

	if baseSlashed != targSlashed || !sameWord(p, baseVol, targVol) {
		return "", &RelativeError{Base: basepath, Target: targpath}
	}

	bl, tl := len(b), len(t)

	var b0, bi, t0, ti int

	for {
		for bi < bl && b[bi] != p.separator {
			bi++
		}

		for ti < tl && t[ti] != p.separator {
			ti++
		}

		if !sameWord(p, t[t0:ti], b[b0:bi]) {
			break
		}

		if bi < bl {
			bi++
		}

		if ti < tl {
			ti++
		}

		b0, t0 = bi, ti
	}

	if b[b0:bi] == ".." {
		return "", &RelativeError{Base: basepath, Target: targpath}
	}

	if b0 != bl {
		seps := strings.Count(b[b0:bl], string(p.separator))
		var bld strings.Builder

		bld.WriteString("..")

		for i := 0; i < seps; i++ {
			bld.WriteByte(p.separator)
			bld.WriteString("..")
		}

		if t0 != tl {
			bld.WriteByte(p.separator)
			bld.WriteString(t[t0:])
		}

		return bld.String(), nil
	}

	return t[t0:], nil
}
