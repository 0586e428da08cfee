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

import (
	"bufio"
	"errors"
	"io"
)

// Mode selects text or binary translation, per spec.md's "text/binary
// mode: on platforms with CR-LF translation (Windows), select. POSIX
// treats both identically."
type Mode int

const (
	Binary Mode = iota
	Text
)

// ErrNonBlockingOpNotReadSome is returned by Read when called on a
// Reader constructed with NonBlocking: only ReadSome is legal in that
// mode (spec.md §4.D: "other operations set bad-bit").
var ErrNonBlockingOpNotReadSome = errors.New("fdstream: only ReadSome is legal on a non-blocking reader")

// Reader is an input stream built over an owned FD (spec.md's
// ifdstream). It supports skip-on-close draining, text/binary
// translation, and a non-blocking mode in which only ReadSome is legal.
type Reader struct {
	fd          FD
	br          *bufio.Reader
	mode        Mode
	skipOnClose bool
	nonBlocking bool
	pos         int64
	eof         bool
	closed      bool
}

// ReaderOption configures a Reader at construction.
type ReaderOption func(*Reader)

// SkipOnClose enables draining and discarding any remaining bytes on
// Close, for use when a peer expects its output to be fully read before
// the reading end closes.
func SkipOnClose() ReaderOption {
	return func(r *Reader) { r.skipOnClose = true }
}

// WithMode sets the stream's text/binary translation mode.
func WithMode(m Mode) ReaderOption {
	return func(r *Reader) { r.mode = m }
}

// NonBlocking puts the Reader in non-blocking mode: only ReadSome is a
// legal operation afterward.
func NonBlocking() ReaderOption {
	return func(r *Reader) { r.nonBlocking = true }
}

// NewReader returns a Reader reading from fd.
func NewReader(fd FD, opts ...ReaderOption) *Reader {
	r := &Reader{fd: fd, br: bufio.NewReader(fd.File())}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Tell returns the logical byte position: bytes delivered to the caller
// since open, which may diverge from the descriptor's seek offset under
// text-mode translation.
func (r *Reader) Tell() int64 { return r.pos }

// Read implements io.Reader. It is illegal to call on a non-blocking
// Reader; use ReadSome instead.
func (r *Reader) Read(p []byte) (int, error) {
	if r.nonBlocking {
		return 0, ErrNonBlockingOpNotReadSome
	}

	return r.read(p)
}

func (r *Reader) read(p []byte) (int, error) {
	if r.mode == Binary || !translateText {
		n, err := r.br.Read(p)
		r.pos += int64(n)

		if errors.Is(err, io.EOF) {
			r.eof = true
		}

		return n, err
	}

	return r.readText(p)
}

// readText strips a \r immediately preceding a \n, matching Windows
// CR-LF-to-LF translation; POSIX callers should construct Readers with
// Binary mode, where this path is never taken.
func (r *Reader) readText(p []byte) (int, error) {
	n := 0

	for n < len(p) {
		b, err := r.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.eof = true
			}

			if n > 0 {
				return n, nil
			}

			return 0, err
		}

		if b == '\r' {
			next, peekErr := r.br.Peek(1)
			if peekErr == nil && len(next) == 1 && next[0] == '\n' {
				continue
			}
		}

		p[n] = b
		n++
		r.pos++
	}

	return n, nil
}

// ReadSome performs a single non-blocking read attempt, returning
// (0, nil) if the descriptor would block rather than setting the
// eof-bit, per spec.md §4.D. Unlike Read, it bypasses the buffered
// reader and issues the OS read syscall directly (readNonBlocking),
// since Go's runtime-integrated os.File.Read blocks the calling
// goroutine until data arrives instead of surfacing EAGAIN.
func (r *Reader) ReadSome(p []byte) (int, error) {
	if !r.nonBlocking {
		return r.read(p)
	}

	if r.br.Buffered() > 0 {
		n, _ := r.br.Read(p)
		r.pos += int64(n)

		return n, nil
	}

	n, err := readNonBlocking(r.fd.File(), p)
	r.pos += int64(n)

	if errors.Is(err, io.EOF) || (err == nil && n == 0 && len(p) > 0) {
		r.eof = true
		return 0, nil
	}

	if err != nil && isWouldBlock(err) {
		return 0, nil
	}

	return n, err
}

// EOF reports whether the stream has reached end-of-file.
func (r *Reader) EOF() bool { return r.eof }

// Close closes the underlying FD. If skip-on-close is enabled, it first
// drains and discards all remaining bytes.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true

	if r.skipOnClose {
		var buf [4096]byte
		for {
			_, err := r.br.Read(buf[:])
			if err != nil {
				break
			}
		}
	}

	return r.fd.Close()
}
