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

package env

import (
	"os"

	"github.com/build2/butl/internal/goid"
)

// cwdFrame mirrors the override stack in env.go but for the current
// working directory (spec.md §5's thread_current_directory).
type cwdFrame struct {
	dir  string
	prev *cwdFrame
}

var cwdFrames = map[int64]*cwdFrame{}

// WithCurDir pushes dir as the calling goroutine's current-directory
// override and returns a function that pops it. process.Env and
// path.Complete honor this override in preference to os.Getwd.
func WithCurDir(dir string) func() {
	gid := goid.Get()

	mu.Lock()
	cwdFrames[gid] = &cwdFrame{dir: dir, prev: cwdFrames[gid]}
	mu.Unlock()

	return func() {
		mu.Lock()
		if f := cwdFrames[gid]; f != nil {
			cwdFrames[gid] = f.prev
		}
		mu.Unlock()
	}
}

// CurDir returns the calling goroutine's current-directory override if
// one is active, otherwise the process working directory from os.Getwd.
func CurDir() (string, error) {
	gid := goid.Get()

	mu.Lock()
	f := cwdFrames[gid]
	mu.Unlock()

	if f != nil {
		return f.dir, nil
	}

	return os.Getwd()
}
