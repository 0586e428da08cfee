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

//go:build windows

package process

import (
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/windows"
)

// newSysProcAttr creates the child in its own console process group, so
// a later CTRL_BREAK_EVENT targets only it (and its own descendants)
// rather than this process's group too.
func newSysProcAttr() *windows.SysProcAttr {
	return &windows.SysProcAttr{CreationFlags: windows.CREATE_NEW_PROCESS_GROUP}
}

func applySysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = newSysProcAttr()
}

// pathext returns the PATHEXT entries Search tries in order, falling
// back to the usual Windows default if the environment variable is unset.
func pathext() []string {
	v := os.Getenv("PATHEXT")
	if v == "" {
		v = ".COM;.EXE;.BAT;.CMD"
	}

	return strings.Split(v, ";")
}
