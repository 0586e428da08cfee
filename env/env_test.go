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

package env_test

import (
	"os"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/build2/butl/env"
)

// TestOverrideShadowsProcessEnv checks that a WithOverride scope is
// consulted before the real process environment and that popping it
// restores the real value.
func TestOverrideShadowsProcessEnv(t *testing.T) {
	const name = "BUTL_TEST_ENV_VAR"

	t.Setenv(name, "real")

	assert.Equal(t, env.Getenv(name), "real")

	pop := env.WithOverride(env.NewOverride().Set(name, "overridden"))
	assert.Equal(t, env.Getenv(name), "overridden")

	pop()
	assert.Equal(t, env.Getenv(name), "real")
}

// TestOverrideUnset checks that a bare "NAME" override entry makes the
// variable read as absent without touching the real environment.
func TestOverrideUnset(t *testing.T) {
	const name = "BUTL_TEST_ENV_VAR_UNSET"

	t.Setenv(name, "real")

	pop := env.WithOverride(env.NewOverride(name))
	defer pop()

	v, found := env.LookupEnv(name)
	assert.Equal(t, v, "")
	assert.Equal(t, found, false)

	// the real environment is untouched
	assert.Equal(t, os.Getenv(name), "real")
}

// TestOverrideComposition checks that later entries in a single
// NewOverride call win over earlier ones for the same name, per
// spec.md §6.
func TestOverrideComposition(t *testing.T) {
	ov := env.NewOverride("A=1", "A=2", "B")
	pop := env.WithOverride(ov)
	defer pop()

	assert.Equal(t, env.Getenv("A"), "2")

	_, found := env.LookupEnv("B")
	assert.Equal(t, found, false)
}

// TestOverrideNesting checks that an inner scope's override wins over an
// outer scope's, and that popping the inner scope exposes the outer one
// again.
func TestOverrideNesting(t *testing.T) {
	const name = "BUTL_TEST_ENV_NEST"

	t.Setenv(name, "real")

	popOuter := env.WithOverride(env.NewOverride().Set(name, "outer"))
	defer popOuter()

	popInner := env.WithOverride(env.NewOverride().Set(name, "inner"))

	assert.Equal(t, env.Getenv(name), "inner")

	popInner()

	assert.Equal(t, env.Getenv(name), "outer")
}

func TestWithCurDir(t *testing.T) {
	pop := env.WithCurDir("/override/dir")
	defer pop()

	dir, err := env.CurDir()
	assert.NilError(t, err)
	assert.Equal(t, dir, "/override/dir")
}
