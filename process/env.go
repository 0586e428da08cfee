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
	"os"
	"strings"

	"github.com/build2/butl/env"
	"github.com/build2/butl/path"
)

// Env carries a spawn-time environment override alongside an optional
// CWD and an optional program path, spec.md §4.E's process_env. Entries
// of the form "NAME=VALUE" set a variable; a bare "NAME" unsets it.
// Overrides compose on top of the process environment.
type Env struct {
	Vars    []string
	Dir     *path.Dir
	Program string
}

// Apply resolves Env against the current process environment, returning
// the full "NAME=VALUE" slice to hand to the child (os/exec.Cmd.Env)
// and the working directory string: Dir when set, otherwise env.CurDir
// (the calling goroutine's env.WithCurDir override, else the process
// working directory); empty, meaning inherit, only if that lookup fails.
func (e Env) Apply() (vars []string, dir string) {
	base := os.Environ()
	merged := make(map[string]string, len(base))
	order := make([]string, 0, len(base))

	for _, kv := range base {
		k, v, _ := strings.Cut(kv, "=")
		if _, ok := merged[k]; !ok {
			order = append(order, k)
		}

		merged[k] = v
	}

	for _, entry := range e.Vars {
		k, v, hasValue := strings.Cut(entry, "=")
		if hasValue {
			if _, ok := merged[k]; !ok {
				order = append(order, k)
			}

			merged[k] = v
		} else {
			delete(merged, k)
		}
	}

	vars = make([]string, 0, len(order))
	for _, k := range order {
		if v, ok := merged[k]; ok {
			vars = append(vars, k+"="+v)
		}
	}

	if e.Dir != nil {
		dir = e.Dir.String()
	} else if wd, err := env.CurDir(); err == nil {
		dir = wd
	}

	return vars, dir
}
