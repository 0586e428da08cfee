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
	"os"

	"github.com/moby/sys/sequential"

	bpath "github.com/build2/butl/path"
)

// Open opens p for a Reader, via github.com/moby/sys/sequential so that
// Windows hints FILE_FLAG_SEQUENTIAL_SCAN (the streams this package
// builds are read start-to-end, never randomly seeked); on POSIX this
// is equivalent to os.Open.
func Open(p bpath.Path) (FD, error) {
	f, err := sequential.Open(p.String())
	if err != nil {
		return FD{}, err
	}

	return NewFD(f), nil
}

// Create creates or truncates p for a Writer, via
// github.com/moby/sys/sequential for the same sequential-access hint as
// Open.
func Create(p bpath.Path) (FD, error) {
	f, err := sequential.Create(p.String())
	if err != nil {
		return FD{}, err
	}

	return NewFD(f), nil
}

// CreateAppend opens p for appending, creating it if absent.
func CreateAppend(p bpath.Path) (FD, error) {
	f, err := sequential.OpenFile(p.String(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return FD{}, err
	}

	return NewFD(f), nil
}
