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

package fdstream

import "time"

// SelectState is one entry of an fdselect read-set or write-set:
// spec.md's fdselect_state{fd, ready, data}. Data is caller-owned and
// untouched by Select.
type SelectState struct {
	FD    FD
	Ready bool
	Data  any
}

// Select waits until at least one of reads/writes is ready for I/O, or
// timeout elapses (a negative timeout blocks indefinitely), setting
// Ready on each ready entry in place. It returns the number of ready
// read and write descriptors. Implemented with select(2) from
// golang.org/x/sys/unix on POSIX and PeekNamedPipe polling from
// golang.org/x/sys/windows on Windows.
func Select(reads, writes []*SelectState, timeout time.Duration) (nr, nw int, err error) {
	return selectImpl(reads, writes, timeout)
}
