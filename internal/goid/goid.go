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

// Package goid obtains the calling goroutine's runtime identifier. Go
// exposes no supported API for this; env uses it as a stand-in for the
// thread-local storage its C++ original relies on for per-thread
// environment and current-directory overrides.
package goid

import (
	"runtime"
	"strconv"
	"sync"
)

// bufPool avoids a per-call allocation for the runtime.Stack scratch
// buffer; 64 bytes comfortably holds the "goroutine NNN [running]:" header.
var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 64)
		return &b
	},
}

// Get returns the calling goroutine's numeric identifier. It is stable
// for the lifetime of the goroutine and unique among currently running
// goroutines, but Go assigns no meaning to its value beyond that.
func Get() int64 {
	bp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bp)

	buf := *bp
	n := runtime.Stack(buf, false)

	// The header line is "goroutine <id> [<state>]:".
	const prefix = "goroutine "

	line := buf[:n]
	if len(line) <= len(prefix) || string(line[:len(prefix)]) != prefix {
		panic("goid: unexpected runtime.Stack header")
	}

	line = line[len(prefix):]

	idx := 0
	for idx < len(line) && line[idx] != ' ' {
		idx++
	}

	id, err := strconv.ParseInt(string(line[:idx]), 10, 64)
	if err != nil {
		panic("goid: could not parse goroutine id: " + err.Error())
	}

	return id
}
