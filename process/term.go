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

package process

import (
	mobyterm "github.com/moby/term"

	"github.com/build2/butl/fdstream"
)

// IsTerminal reports whether fd refers to a terminal, used by callers
// deciding between Inherit (pass the caller's tty through so the child
// can do its own terminal I/O) and Pipe (capture output instead) when
// wiring a Process's stdio.
func IsTerminal(fd fdstream.FD) bool {
	return mobyterm.IsTerminal(fd.Fd())
}
