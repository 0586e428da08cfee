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

// Package process spawns and controls child processes: stdio plumbing
// (inherit/pipe/null/fd/pipeline), working-directory and environment
// override, PATH search with Windows PATHEXT handling, batch-file
// detection, and
// wait/term/kill with a sticky reaped state (spec.md §4.E).
package process

import "github.com/build2/butl/fdstream"

// stdioKind tags how a Stdio specifier should be wired for a child.
type stdioKind int

const (
	stdioInherit stdioKind = iota
	stdioPipe
	stdioNull
	stdioFD
	stdioFrom
)

// Stdio specifies how one of a child's standard streams is connected,
// spec.md §4.E's stdio specifier (integer 0/1/2, -1, -2, an auto_fd, or
// another process). Go has no duck-typed constructor overloading, so
// each flavor is a named constructor instead.
type Stdio struct {
	kind   stdioKind
	fd     fdstream.FD
	source *Process
}

// Inherit connects the child's stream to the caller's own.
func Inherit() Stdio { return Stdio{kind: stdioInherit} }

// Pipe creates a pipe; the Process constructor stores the corresponding
// end as an fdstream.FD on the returned Process (the write end for
// stdin, the read end for stdout/stderr).
func Pipe() Stdio { return Stdio{kind: stdioPipe} }

// Null redirects the stream to the platform's null device.
func Null() Stdio { return Stdio{kind: stdioNull} }

// FromFD moves ownership of fd into the child as the corresponding
// standard stream.
func FromFD(fd fdstream.FD) Stdio { return Stdio{kind: stdioFD, fd: fd} }

// From connects the caller's stdin to p's stdout-read-end, for
// pipelining one process's output into another's input.
func From(p *Process) Stdio { return Stdio{kind: stdioFrom, source: p} }
