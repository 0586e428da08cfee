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

//go:build !windows

package fdstream

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// readNonBlocking issues a single OS read syscall on f's descriptor
// without waiting for the runtime poller to mark it ready, putting the
// descriptor in O_NONBLOCK mode the first time it is used this way.
// It returns (0, unix.EAGAIN) rather than blocking when no data is
// currently available.
func readNonBlocking(f *os.File, p []byte) (int, error) {
	fd := int(f.Fd())

	if err := unix.SetNonblock(fd, true); err != nil {
		return 0, err
	}

	for {
		n, err := unix.Read(fd, p)
		if err == unix.EINTR {
			continue
		}

		if n < 0 {
			n = 0
		}

		return n, err
	}
}

func selectImpl(reads, writes []*SelectState, timeout time.Duration) (nr, nw int, err error) {
	for {
		var rfds, wfds unix.FdSet
		maxFd := 0

		for _, s := range reads {
			fd := int(s.FD.Fd())
			fdSetAdd(&rfds, fd)

			if fd > maxFd {
				maxFd = fd
			}
		}

		for _, s := range writes {
			fd := int(s.FD.Fd())
			fdSetAdd(&wfds, fd)

			if fd > maxFd {
				maxFd = fd
			}
		}

		var tv *unix.Timeval
		if timeout >= 0 {
			t := unix.NsecToTimeval(timeout.Nanoseconds())
			tv = &t
		}

		n, err := unix.Select(maxFd+1, &rfds, &wfds, nil, tv)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}

			return 0, 0, err
		}

		if n == 0 {
			return 0, 0, nil
		}

		for _, s := range reads {
			if fdSetIsSet(&rfds, int(s.FD.Fd())) {
				s.Ready = true
				nr++
			}
		}

		for _, s := range writes {
			if fdSetIsSet(&wfds, int(s.FD.Fd())) {
				s.Ready = true
				nw++
			}
		}

		return nr, nw, nil
	}
}

func fdSetAdd(set *unix.FdSet, fd int) {
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
}

func fdSetIsSet(set *unix.FdSet, fd int) bool {
	return set.Bits[fd/64]&(1<<(uint(fd)%64)) != 0
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}
