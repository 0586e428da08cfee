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

// ReadLineNonBlocking accumulates into *line from a non-blocking Reader.
// It returns true once a full line (newline consumed, not appended) is
// available or EOF is reached (distinguish via r.EOF()), and false when
// it needs more data and should be called again once r is readable
// (spec.md §4.D's getline_non_blocking).
func ReadLineNonBlocking(r *Reader, line *string) (bool, error) {
	var b [1]byte

	for {
		n, err := r.ReadSome(b[:])
		if err != nil {
			return false, err
		}

		if n == 0 {
			if r.EOF() {
				return true, nil
			}

			return false, nil
		}

		if b[0] == '\n' {
			return true, nil
		}

		*line += string(b[0])
	}
}
