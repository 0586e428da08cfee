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

// Package env provides Getenv/Setenv/Unsetenv with a goroutine-local
// override consulted before the real process environment, plus a scoped
// current-working-directory override. This is the Go translation of
// spec.md §4.J's thread_env / auto_thread_env and §5's
// thread_current_directory: the reference library keys overrides off the
// calling C++ thread; butl keys them off the calling goroutine (see
// internal/goid), since Go exposes no native thread-local storage.
//
// Overrides never mutate the real process environment or the process
// current directory: an Override pushed with WithOverride, or a
// directory pushed with WithCurDir, is visible only to Getenv/LookupEnv/
// CurDir calls made by the same goroutine while the scope is active;
// goroutines it spawns do not see it. Setenv and Unsetenv, by contrast,
// change the real process environment.
package env

import (
	"os"
	"sync"

	"github.com/build2/butl/internal/goid"
)

// Override is a composable set of NAME=VALUE / NAME overrides, the Go
// shape of the reference's NULL-terminated override array (spec.md §4.E,
// §6): a set entry records a value, an unset entry records absence.
type Override struct {
	vars map[string]*string // nil value = unset
}

// NewOverride builds an Override from an array of the reference's
// "NAME=VALUE" (set) / "NAME" (unset) strings. Later entries win over
// earlier ones for the same name, per spec.md §6.
func NewOverride(entries ...string) *Override {
	ov := &Override{vars: make(map[string]*string, len(entries))}

	for _, e := range entries {
		name, value, hasEq := splitNameValue(e)
		if hasEq {
			v := value
			ov.vars[name] = &v
		} else {
			ov.vars[name] = nil
		}
	}

	return ov
}

func splitNameValue(entry string) (name, value string, hasEq bool) {
	for i := 0; i < len(entry); i++ {
		if entry[i] == '=' {
			return entry[:i], entry[i+1:], true
		}
	}

	return entry, "", false
}

// Set records NAME=VALUE in the override.
func (ov *Override) Set(name, value string) *Override {
	if ov.vars == nil {
		ov.vars = map[string]*string{}
	}

	ov.vars[name] = &value

	return ov
}

// Unset records that NAME should read as absent through this override.
func (ov *Override) Unset(name string) *Override {
	if ov.vars == nil {
		ov.vars = map[string]*string{}
	}

	ov.vars[name] = nil

	return ov
}

// lookup returns (value, set, found): found is false if name has no entry
// in this override at all (caller should fall through to the next layer).
func (ov *Override) lookup(name string) (value string, set, found bool) {
	if ov == nil {
		return "", false, false
	}

	v, ok := ov.vars[name]
	if !ok {
		return "", false, false
	}

	if v == nil {
		return "", false, true
	}

	return *v, true, true
}

// stack is the chain of overrides active for one goroutine, innermost
// last-pushed first.
type stack struct {
	ov   *Override
	prev *stack
}

var (
	mu     sync.Mutex
	stacks = map[int64]*stack{}
)

// WithOverride pushes ov as the innermost override for the calling
// goroutine and returns a function that pops it. Callers must defer the
// returned function; this is the Go equivalent of auto_thread_env's
// destructor-driven scope exit.
func WithOverride(ov *Override) func() {
	gid := goid.Get()

	mu.Lock()
	stacks[gid] = &stack{ov: ov, prev: stacks[gid]}
	mu.Unlock()

	return func() {
		mu.Lock()
		if s := stacks[gid]; s != nil {
			stacks[gid] = s.prev
		}
		mu.Unlock()
	}
}

// Getenv consults, in order, the calling goroutine's override stack
// (innermost first) and then the real process environment. It never
// caches: every call re-reads both layers, per spec.md §9's "Global
// mutable state... Never cache."
func Getenv(name string) string {
	v, _ := lookupEnv(name)
	return v
}

// LookupEnv is Getenv plus a found flag, distinguishing a variable set
// to the empty string from one that is absent; a variable unset by an
// override reads as absent.
func LookupEnv(name string) (string, bool) {
	return lookupEnv(name)
}

func lookupEnv(name string) (string, bool) {
	gid := goid.Get()

	mu.Lock()
	s := stacks[gid]
	mu.Unlock()

	for ; s != nil; s = s.prev {
		if value, set, found := s.ov.lookup(name); found {
			return value, set
		}
	}

	return os.LookupEnv(name)
}

// Setenv sets NAME=VALUE in the real process environment.
//
// Per spec.md §5, mutating the real environment is process-global and
// not goroutine-safe; it should only be done before other goroutines
// that read the environment are started. Use WithOverride for a
// goroutine-safe way to alter environment seen by a spawned child.
func Setenv(name, value string) error {
	return os.Setenv(name, value)
}

// Unsetenv unsets NAME in the real process environment. Same caveats as
// Setenv apply.
func Unsetenv(name string) error {
	return os.Unsetenv(name)
}
