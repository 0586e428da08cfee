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

import "os"

// OpenPipe returns a read/write FD pair (spec.md's fdopen_pipe). Both
// ends are close-on-exec by construction (os.Pipe's descriptors are not
// inherited by child processes started via os/exec unless explicitly
// passed through ExtraFiles/Stdin/Stdout/Stderr), matching spec.md's
// "cannot leak into future children unless explicitly handed to a
// process constructor that inherits them".
func OpenPipe() (r, w FD, err error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return FD{}, FD{}, err
	}

	return NewFD(pr), NewFD(pw), nil
}

// Null returns an FD opened on the platform's null device, suitable for
// use as a discarded or empty stdio stream.
func Null(flag int) (FD, error) {
	f, err := os.OpenFile(os.DevNull, flag, 0)
	if err != nil {
		return FD{}, err
	}

	return NewFD(f), nil
}
