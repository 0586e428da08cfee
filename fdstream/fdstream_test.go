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

package fdstream_test

import (
	"errors"
	"io"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/build2/butl/fdstream"
)

func TestPipeReadWrite(t *testing.T) {
	r, w, err := fdstream.OpenPipe()
	assert.NilError(t, err)

	reader := fdstream.NewReader(r)
	writer := fdstream.NewWriter(w)

	done := make(chan struct{})
	go func() {
		defer close(done)

		_, werr := writer.Write([]byte("hello"))
		assert.NilError(t, werr)
		assert.NilError(t, writer.Close())
	}()

	buf := make([]byte, 5)
	n, err := io.ReadFull(reader, buf)
	assert.NilError(t, err)
	assert.Equal(t, n, 5)
	assert.Equal(t, string(buf), "hello")

	<-done
	assert.NilError(t, reader.Close())
}

func TestWriterCheckClosedDetectsMissingClose(t *testing.T) {
	_, w, err := fdstream.OpenPipe()
	assert.NilError(t, err)

	writer := fdstream.NewWriter(w)

	_, werr := writer.Write([]byte("x"))
	assert.NilError(t, werr)

	assert.Assert(t, errors.Is(writer.CheckClosed(), fdstream.ErrNotClosed))

	assert.NilError(t, writer.Close())
	assert.NilError(t, writer.CheckClosed())
}

func TestSkipOnCloseDrains(t *testing.T) {
	r, w, err := fdstream.OpenPipe()
	assert.NilError(t, err)

	reader := fdstream.NewReader(r, fdstream.SkipOnClose())
	writer := fdstream.NewWriter(w)

	go func() {
		_, _ = writer.Write([]byte("leftover data not fully read"))
		_ = writer.Close()
	}()

	time.Sleep(10 * time.Millisecond)
	assert.NilError(t, reader.Close())
}

func TestReadLineNonBlocking(t *testing.T) {
	r, w, err := fdstream.OpenPipe()
	assert.NilError(t, err)

	reader := fdstream.NewReader(r, fdstream.NonBlocking())
	writer := fdstream.NewWriter(w)

	go func() {
		_, _ = writer.Write([]byte("first line\n"))
		_ = writer.Close()
	}()

	var line string

	for {
		done, rerr := fdstream.ReadLineNonBlocking(reader, &line)
		assert.NilError(t, rerr)

		if done {
			break
		}

		time.Sleep(time.Millisecond)
	}

	assert.Equal(t, line, "first line")
}

func TestSelectReadReady(t *testing.T) {
	r, w, err := fdstream.OpenPipe()
	assert.NilError(t, err)

	writer := fdstream.NewWriter(w)
	_, werr := writer.Write([]byte("x"))
	assert.NilError(t, werr)
	assert.NilError(t, writer.Close())

	reads := []*fdstream.SelectState{{FD: r}}
	nr, nw, err := fdstream.Select(reads, nil, time.Second)
	assert.NilError(t, err)
	assert.Equal(t, nr, 1)
	assert.Equal(t, nw, 0)
	assert.Assert(t, reads[0].Ready)
}
