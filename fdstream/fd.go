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

// Package fdstream provides buffered, iostream-compatible streams over
// owned OS file descriptors: non-blocking I/O, text/binary translation,
// skip-on-close semantics, pipes, a null device, and readiness
// multiplexing (spec.md §4.D).
package fdstream

import "os"

// FD is a move-only owning wrapper around an OS file descriptor,
// spec.md's auto_fd. The zero FD is the sentinel "not open" value
// (nullfd); closing it is a no-op.
type FD struct {
	f *os.File
}

// NewFD wraps an already-open *os.File, taking ownership of it.
func NewFD(f *os.File) FD {
	return FD{f: f}
}

// Valid reports whether fd refers to an open descriptor.
func (fd FD) Valid() bool { return fd.f != nil }

// Fd returns the raw OS descriptor, or an invalid value if fd is not
// Valid.
func (fd FD) Fd() uintptr {
	if fd.f == nil {
		return ^uintptr(0)
	}

	return fd.f.Fd()
}

// File returns the underlying *os.File.
func (fd FD) File() *os.File { return fd.f }

// Close closes fd. Closing the sentinel FD is a no-op. Unlike auto_fd's
// destructor, which swallows close errors because C++ destructors must
// not throw, Close reports the error explicitly; callers that want the
// swallow-on-unwind behavior should ignore it deliberately.
func (fd FD) Close() error {
	if fd.f == nil {
		return nil
	}

	return fd.f.Close()
}
