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

import "golang.org/x/sys/windows"

// signalTerm sends CTRL_BREAK_EVENT to the child's console process
// group. The group is established in Start via
// CREATE_NEW_PROCESS_GROUP (see process_windows.go); our Open Question
// decision (DESIGN.md) is that Term always targets the whole group,
// matching the reference library rather than a single-process signal
// Windows has no equivalent for.
func (p *Process) signalTerm() error {
	return windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(p.cmd.Process.Pid))
}

func (p *Process) signalKill() error {
	return p.cmd.Process.Kill()
}
