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

// Term requests graceful termination (SIGTERM on POSIX, CTRL_BREAK to
// the console process group on Windows). It may be called multiple
// times; subsequent calls to Term/Kill/Wait remain legal, per spec.md
// §4.E's idempotent state machine.
func (p *Process) Term() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state >= termRequested {
		return nil
	}

	p.state = termRequested

	return p.signalTerm()
}

// Kill requests immediate termination (SIGKILL on POSIX,
// TerminateProcess on Windows). It may be called multiple times.
func (p *Process) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state >= killRequested {
		return nil
	}

	p.state = killRequested

	return p.signalKill()
}
