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

// InvalidPathError is returned when constructing a Path or Dir from a
// string that is not a valid path for its Platform: an embedded NUL byte,
// or a drive letter on a platform without drive letters (spec.md §4.A,
// §7's "invalid argument" class).
//
// It implements the errdefs-style classification idiom used across this
// module (see manifest.ParseError, process.SpawnError): callers test for
// it with errors.As rather than a sentinel comparison.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}

// InvalidArgument marks InvalidPathError as belonging to spec.md §7's
// invalid-argument error class.
func (e *InvalidPathError) InvalidArgument() bool { return true }

// RelativeError is returned by Rel when targpath cannot be made relative
// to basepath (e.g. they have different volumes, or one is absolute and
// the other is not).
type RelativeError struct {
	Base, Target string
}

func (e *RelativeError) Error() string {
	return "can't make " + e.Target + " relative to " + e.Base
}

func (e *RelativeError) InvalidArgument() bool { return true }
