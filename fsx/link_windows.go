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

package fsx

import "os"

// createSymlink on Windows: dir is unused; os.Symlink creates a
// directory symbolic link when the target exists as a directory and a
// file symbolic link otherwise. It does not create a junction.
func createSymlink(oldname, newname string, dir bool) error {
	return os.Symlink(oldname, newname)
}
