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

//go:build windows

package fdstream

import (
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// readNonBlocking reads from f only once PeekNamedPipe reports data
// available, emulating non-blocking semantics since Windows pipe reads
// otherwise block. Non-pipe descriptors fall through to a direct Read,
// matching selectImpl's "other descriptors silently behave as blocking".
func readNonBlocking(f *os.File, p []byte) (int, error) {
	fd := NewFD(f)
	if !pipeHasData(fd) {
		return 0, windows.WSAEWOULDBLOCK
	}

	return f.Read(p)
}

// selectImpl on Windows only supports polling pipes' read ends for
// readiness via PeekNamedPipe; any other descriptor is reported ready
// immediately and behaves as blocking, per spec.md §4.D ("On Windows
// only pipes' read ends are supported; other descriptors silently
// behave as blocking").
func selectImpl(reads, writes []*SelectState, timeout time.Duration) (nr, nw int, err error) {
	deadline := time.Now().Add(timeout)

	for {
		nr, nw = 0, 0

		for _, s := range reads {
			if pipeHasData(s.FD) {
				s.Ready = true
				nr++
			}
		}

		for _, s := range writes {
			s.Ready = true
			nw++
		}

		if nr > 0 || nw > 0 {
			return nr, nw, nil
		}

		if timeout >= 0 && time.Now().After(deadline) {
			return 0, 0, nil
		}

		time.Sleep(5 * time.Millisecond)
	}
}

func pipeHasData(fd FD) bool {
	var avail uint32

	h := windows.Handle(fd.Fd())
	if err := windows.PeekNamedPipe(h, nil, 0, nil, &avail, nil); err != nil {
		return true // not a pipe, or error: behave as blocking/ready
	}

	return avail > 0
}

func isWouldBlock(err error) bool {
	return err == windows.WSAEWOULDBLOCK
}
