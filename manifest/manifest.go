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

// Package manifest implements spec.md §4.G: the name/value manifest
// format's streaming parser and wrapping serializer.
package manifest

import "fmt"

// Pair is one name/value record (spec.md §4.G). The format-version
// pair and the end-of-manifest marker both carry an empty Name; they
// are distinguished by Value, which is empty only for the end marker
// (see End).
type Pair struct {
	Name  string
	Value string
}

// End reports whether p is the sentinel pair Next returns to mark the
// end of a manifest.
func (p Pair) End() bool { return p.Name == "" && p.Value == "" }

// ParseError carries the source name, 1-based line and column, and a
// description, per spec.md §7's parsing-error class.
type ParseError struct {
	Source      string
	Line        int
	Column      int
	Description string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Description)
}
